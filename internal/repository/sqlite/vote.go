package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
)

var _ repository.VoteRepository = (*VoteDB)(nil)

// VoteDB is the votes view of a DB.
type VoteDB struct {
	db *DB
}

func (db *DB) Votes() *VoteDB {
	return &VoteDB{db: db}
}

// Create inserts vote. The UNIQUE (poll_id, user_id) constraint rejects a
// second vote by the same user on the same poll; that rejection comes back
// as apperror.ErrDuplicateVote.
func (v *VoteDB) Create(ctx context.Context, vote model.Vote) (model.Vote, error) {
	res, err := v.db.conn.ExecContext(ctx,
		`INSERT INTO votes (poll_id, user_id, option_index) VALUES (?, ?, ?)`,
		vote.PollID,
		vote.UserID,
		vote.OptionIndex,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Vote{}, apperror.DuplicateVote(vote.PollID, vote.UserID)
		}
		return model.Vote{}, fmt.Errorf("sqlite: inserting vote (poll=%d, user=%d): %w", vote.PollID, vote.UserID, err)
	}

	vote.ID, err = res.LastInsertId()
	if err != nil {
		return model.Vote{}, fmt.Errorf("sqlite: reading vote id: %w", err)
	}
	return vote, nil
}

func (v *VoteDB) FindByID(ctx context.Context, id int64) (model.Vote, bool, error) {
	vote, err := scanVote(v.db.conn.QueryRowContext(ctx,
		`SELECT id, poll_id, user_id, option_index FROM votes WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vote{}, false, nil
	}
	if err != nil {
		return model.Vote{}, false, fmt.Errorf("sqlite: getting vote %d: %w", id, err)
	}
	return vote, true, nil
}

func (v *VoteDB) FindAll(ctx context.Context) ([]model.Vote, error) {
	rows, err := v.db.conn.QueryContext(ctx,
		`SELECT id, poll_id, user_id, option_index FROM votes ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing votes: %w", err)
	}
	return collectVotes(rows)
}

func (v *VoteDB) FindByPollAndUser(ctx context.Context, pollID, userID int64) (model.Vote, bool, error) {
	vote, err := scanVote(v.db.conn.QueryRowContext(ctx,
		`SELECT id, poll_id, user_id, option_index FROM votes
		 WHERE poll_id = ? AND user_id = ?`,
		pollID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Vote{}, false, nil
	}
	if err != nil {
		return model.Vote{}, false, fmt.Errorf("sqlite: getting vote (poll=%d, user=%d): %w", pollID, userID, err)
	}
	return vote, true, nil
}

func (v *VoteDB) FindByPollID(ctx context.Context, pollID int64) ([]model.Vote, error) {
	rows, err := v.db.conn.QueryContext(ctx,
		`SELECT id, poll_id, user_id, option_index FROM votes
		 WHERE poll_id = ? ORDER BY id`,
		pollID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing votes of poll %d: %w", pollID, err)
	}
	return collectVotes(rows)
}

func scanVote(s scanner) (model.Vote, error) {
	var vote model.Vote
	err := s.Scan(&vote.ID, &vote.PollID, &vote.UserID, &vote.OptionIndex)
	return vote, err
}

func collectVotes(rows *sql.Rows) ([]model.Vote, error) {
	defer rows.Close()

	votes := make([]model.Vote, 0)
	for rows.Next() {
		vote, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning vote row: %w", err)
		}
		votes = append(votes, vote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating votes: %w", err)
	}
	return votes, nil
}
