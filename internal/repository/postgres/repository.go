package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
)

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.PollRepository = (*PollRepository)(nil)
	_ repository.VoteRepository = (*VoteRepository)(nil)
)

// =========================================================================
// USERS
// =========================================================================

type UserRepository struct {
	p *Postgres
}

func (p *Postgres) Users() *UserRepository {
	return &UserRepository{p: p}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	row := userRow{Username: user.Username}
	if err := r.p.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return model.User{}, apperror.DuplicateUser(user.Username)
		}
		return model.User{}, r.p.logError("user_repo_create_failed", err, "username", user.Username)
	}
	return row.toModel(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (model.User, bool, error) {
	var row userRow
	err := r.p.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, false, nil
		}
		return model.User{}, false, r.p.logError("user_repo_find_by_id_failed", err, "user_id", id)
	}
	return row.toModel(), true, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (model.User, bool, error) {
	var row userRow
	err := r.p.DB.WithContext(ctx).Where("username = ?", username).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.User{}, false, nil
		}
		return model.User{}, false, r.p.logError("user_repo_find_by_username_failed", err, "username", username)
	}
	return row.toModel(), true, nil
}

// =========================================================================
// POLLS
// =========================================================================

type PollRepository struct {
	p *Postgres
}

func (p *Postgres) Polls() *PollRepository {
	return &PollRepository{p: p}
}

func (r *PollRepository) Create(ctx context.Context, poll model.Poll) (model.Poll, error) {
	row := pollRowFromModel(poll)
	if err := r.p.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Poll{}, r.p.logError("poll_repo_create_failed", err, "created_by_user_id", poll.CreatedByUserID)
	}
	return row.toModel(), nil
}

func (r *PollRepository) FindByID(ctx context.Context, id int64) (model.Poll, bool, error) {
	var row pollRow
	err := r.p.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Poll{}, false, nil
		}
		return model.Poll{}, false, r.p.logError("poll_repo_find_by_id_failed", err, "poll_id", id)
	}
	return row.toModel(), true, nil
}

func (r *PollRepository) FindAll(ctx context.Context) ([]model.Poll, error) {
	var rows []pollRow
	if err := r.p.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.p.logError("poll_repo_find_all_failed", err)
	}
	return pollsFromRows(rows), nil
}

func (r *PollRepository) FindAllByUserID(ctx context.Context, userID int64) ([]model.Poll, error) {
	var rows []pollRow
	err := r.p.DB.WithContext(ctx).
		Where("created_by_user_id = ?", userID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.p.logError("poll_repo_find_by_user_failed", err, "user_id", userID)
	}
	return pollsFromRows(rows), nil
}

func pollsFromRows(rows []pollRow) []model.Poll {
	polls := make([]model.Poll, 0, len(rows))
	for _, row := range rows {
		polls = append(polls, row.toModel())
	}
	return polls
}

// =========================================================================
// VOTES
// =========================================================================

type VoteRepository struct {
	p *Postgres
}

func (p *Postgres) Votes() *VoteRepository {
	return &VoteRepository{p: p}
}

func (r *VoteRepository) Create(ctx context.Context, vote model.Vote) (model.Vote, error) {
	row := voteRow{PollID: vote.PollID, UserID: vote.UserID, OptionIndex: vote.OptionIndex}
	if err := r.p.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Vote{}, apperror.DuplicateVote(vote.PollID, vote.UserID)
		}
		return model.Vote{}, r.p.logError("vote_repo_create_failed", err,
			"poll_id", vote.PollID,
			"user_id", vote.UserID,
		)
	}
	return row.toModel(), nil
}

func (r *VoteRepository) FindByID(ctx context.Context, id int64) (model.Vote, bool, error) {
	var row voteRow
	err := r.p.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Vote{}, false, nil
		}
		return model.Vote{}, false, r.p.logError("vote_repo_find_by_id_failed", err, "vote_id", id)
	}
	return row.toModel(), true, nil
}

func (r *VoteRepository) FindAll(ctx context.Context) ([]model.Vote, error) {
	var rows []voteRow
	if err := r.p.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.p.logError("vote_repo_find_all_failed", err)
	}
	return votesFromRows(rows), nil
}

func (r *VoteRepository) FindByPollAndUser(ctx context.Context, pollID, userID int64) (model.Vote, bool, error) {
	var row voteRow
	err := r.p.DB.WithContext(ctx).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Vote{}, false, nil
		}
		return model.Vote{}, false, r.p.logError("vote_repo_find_by_poll_user_failed", err,
			"poll_id", pollID,
			"user_id", userID,
		)
	}
	return row.toModel(), true, nil
}

func (r *VoteRepository) FindByPollID(ctx context.Context, pollID int64) ([]model.Vote, error) {
	var rows []voteRow
	err := r.p.DB.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.p.logError("vote_repo_find_by_poll_failed", err, "poll_id", pollID)
	}
	return votesFromRows(rows), nil
}

func votesFromRows(rows []voteRow) []model.Vote {
	votes := make([]model.Vote, 0, len(rows))
	for _, row := range rows {
		votes = append(votes, row.toModel())
	}
	return votes
}
