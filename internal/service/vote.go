package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
	"github.com/sakif/quickpoll/internal/validate"
)

// VoteService records votes. It reads polls to check the option index and
// writes votes; the two stores are never locked together.
type VoteService struct {
	polls  repository.PollRepository
	votes  repository.VoteRepository
	logger *slog.Logger
}

func NewVoteService(polls repository.PollRepository, votes repository.VoteRepository, logger *slog.Logger) *VoteService {
	return &VoteService{
		polls:  polls,
		votes:  votes,
		logger: logger,
	}
}

// Create records userID's vote for option optionIndex of poll pollID.
//
// Failure order: malformed pollId, userId, optionIndex; unknown poll; index
// out of range; user already voted on this poll.
//
// The duplicate check is NOT done here. A lookup followed by an insert would
// let two concurrent requests both see "no vote yet". The repository's Create
// checks and inserts atomically, and its ErrDuplicateVote is passed through.
// Reading the poll first and inserting later is safe because polls never
// change after creation.
func (s *VoteService) Create(ctx context.Context, pollID, userID int64, optionIndex int) (model.Vote, error) {
	attrs := []any{
		slog.Int64("poll_id", pollID),
		slog.Int64("user_id", userID),
		slog.Int("option_index", optionIndex),
	}

	if err := validateVoteIDs(pollID, userID); err != nil {
		logFailure(s.logger, "vote rejected", err, attrs...)
		return model.Vote{}, err
	}
	if !validate.ValidNonNegativeInt(int64(optionIndex)) {
		err := apperror.InvalidInput("optionIndex", "optionIndex must be a non-negative integer")
		logFailure(s.logger, "vote rejected", err, attrs...)
		return model.Vote{}, err
	}

	poll, found, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		logFailure(s.logger, "failed to get poll for vote", err, attrs...)
		return model.Vote{}, fmt.Errorf("getting poll %d: %w", pollID, err)
	}
	if !found {
		err := apperror.PollNotFound(pollID)
		logFailure(s.logger, "vote rejected", err, attrs...)
		return model.Vote{}, err
	}
	if optionIndex >= len(poll.Options) {
		err := apperror.OptionOutOfRange(optionIndex, len(poll.Options))
		logFailure(s.logger, "vote rejected", err, attrs...)
		return model.Vote{}, err
	}

	vote, err := s.votes.Create(ctx, model.Vote{
		PollID:      pollID,
		UserID:      userID,
		OptionIndex: optionIndex,
	})
	if err != nil {
		logFailure(s.logger, "failed to record vote", err, attrs...)
		if errors.Is(err, apperror.ErrDuplicateVote) {
			return model.Vote{}, err
		}
		return model.Vote{}, fmt.Errorf("recording vote: %w", err)
	}

	s.logger.Info("vote recorded", append(attrs, slog.Int64("id", vote.ID))...)
	return vote, nil
}

// GetUserVote reports whether userID has voted on pollID, and how.
// Not having voted is a normal answer, not an error.
func (s *VoteService) GetUserVote(ctx context.Context, pollID, userID int64) (model.UserVote, error) {
	if err := validateVoteIDs(pollID, userID); err != nil {
		return model.UserVote{}, err
	}

	vote, found, err := s.votes.FindByPollAndUser(ctx, pollID, userID)
	if err != nil {
		logFailure(s.logger, "failed to get user vote", err,
			slog.Int64("poll_id", pollID),
			slog.Int64("user_id", userID),
		)
		return model.UserVote{}, fmt.Errorf("getting vote of user %d on poll %d: %w", userID, pollID, err)
	}
	if !found {
		return model.UserVote{HasVoted: false}, nil
	}
	return model.UserVote{HasVoted: true, Vote: &vote}, nil
}

// GetPollVotes returns the votes on pollID in the order they were cast.
func (s *VoteService) GetPollVotes(ctx context.Context, pollID int64) ([]model.Vote, error) {
	if !validate.ValidPositiveInt(pollID) {
		return nil, apperror.InvalidInput("pollId", "poll id must be a positive integer")
	}

	votes, err := s.votes.FindByPollID(ctx, pollID)
	if err != nil {
		logFailure(s.logger, "failed to list votes", err, slog.Int64("poll_id", pollID))
		return nil, fmt.Errorf("listing votes of poll %d: %w", pollID, err)
	}
	if votes == nil {
		votes = []model.Vote{}
	}
	return votes, nil
}

func validateVoteIDs(pollID, userID int64) error {
	if !validate.ValidPositiveInt(pollID) {
		return apperror.InvalidInput("pollId", "poll id must be a positive integer")
	}
	if !validate.ValidPositiveInt(userID) {
		return apperror.InvalidInput("userId", "user id must be a positive integer")
	}
	return nil
}
