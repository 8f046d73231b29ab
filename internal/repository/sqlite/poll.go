package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
)

var _ repository.PollRepository = (*PollDB)(nil)

// PollDB is the polls view of a DB.
type PollDB struct {
	db *DB
}

func (db *DB) Polls() *PollDB {
	return &PollDB{db: db}
}

// Create inserts poll and returns it with its new id.
//
// OPTIONS AS JSON:
// The label list is encoded as a JSON array into a single TEXT column. The
// order of the array is the order of the options, which is what every vote's
// optionIndex refers to, so it must round-trip exactly.
func (p *PollDB) Create(ctx context.Context, poll model.Poll) (model.Poll, error) {
	options, err := json.Marshal(poll.Options)
	if err != nil {
		return model.Poll{}, fmt.Errorf("sqlite: encoding poll options: %w", err)
	}

	res, err := p.db.conn.ExecContext(ctx,
		`INSERT INTO polls (title, options, created_by_user_id) VALUES (?, ?, ?)`,
		poll.Title,
		string(options),
		poll.CreatedByUserID,
	)
	if err != nil {
		return model.Poll{}, fmt.Errorf("sqlite: inserting poll: %w", err)
	}

	poll = poll.Clone()
	poll.ID, err = res.LastInsertId()
	if err != nil {
		return model.Poll{}, fmt.Errorf("sqlite: reading poll id: %w", err)
	}
	return poll, nil
}

func (p *PollDB) FindByID(ctx context.Context, id int64) (model.Poll, bool, error) {
	row := p.db.conn.QueryRowContext(ctx,
		`SELECT id, title, options, created_by_user_id FROM polls WHERE id = ?`, id,
	)
	poll, err := scanPoll(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Poll{}, false, nil
	}
	if err != nil {
		return model.Poll{}, false, fmt.Errorf("sqlite: getting poll %d: %w", id, err)
	}
	return poll, true, nil
}

func (p *PollDB) FindAll(ctx context.Context) ([]model.Poll, error) {
	rows, err := p.db.conn.QueryContext(ctx,
		`SELECT id, title, options, created_by_user_id FROM polls ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing polls: %w", err)
	}
	return collectPolls(rows)
}

func (p *PollDB) FindAllByUserID(ctx context.Context, userID int64) ([]model.Poll, error) {
	rows, err := p.db.conn.QueryContext(ctx,
		`SELECT id, title, options, created_by_user_id FROM polls
		 WHERE created_by_user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing polls of user %d: %w", userID, err)
	}
	return collectPolls(rows)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPoll(s scanner) (model.Poll, error) {
	var (
		poll    model.Poll
		options string
	)
	if err := s.Scan(&poll.ID, &poll.Title, &options, &poll.CreatedByUserID); err != nil {
		return model.Poll{}, err
	}
	if err := json.Unmarshal([]byte(options), &poll.Options); err != nil {
		return model.Poll{}, fmt.Errorf("decoding options of poll %d: %w", poll.ID, err)
	}
	return poll, nil
}

func collectPolls(rows *sql.Rows) ([]model.Poll, error) {
	defer rows.Close()

	polls := make([]model.Poll, 0)
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning poll row: %w", err)
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating polls: %w", err)
	}
	return polls, nil
}
