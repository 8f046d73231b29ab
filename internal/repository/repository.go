// Package repository declares the storage ports the services depend on.
//
// Three independent stores, one per entity. Implementations live in the
// memory, sqlite and postgres sub-packages and must all honour the same
// contract:
//
//   - Create assigns the next id for that store (1, 2, 3, ... never reused)
//     and returns the stored entity.
//   - UserRepository.Create fails with apperror.ErrDuplicateUser and
//     VoteRepository.Create with apperror.ErrDuplicateVote when the unique key
//     is taken. The check and the insert are one atomic step.
//   - Find* methods return (entity, false, nil) when nothing matches.
//   - List methods return entities in insertion order, and an empty (non-nil)
//     slice when nothing matches.
package repository

import (
	"context"

	"github.com/sakif/quickpoll/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, bool, error)
	FindByUsername(ctx context.Context, username string) (model.User, bool, error)
}

type PollRepository interface {
	Create(ctx context.Context, poll model.Poll) (model.Poll, error)
	FindByID(ctx context.Context, id int64) (model.Poll, bool, error)
	FindAll(ctx context.Context) ([]model.Poll, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]model.Poll, error)
}

type VoteRepository interface {
	Create(ctx context.Context, vote model.Vote) (model.Vote, error)
	FindByID(ctx context.Context, id int64) (model.Vote, bool, error)
	FindAll(ctx context.Context) ([]model.Vote, error)
	FindByPollAndUser(ctx context.Context, pollID, userID int64) (model.Vote, bool, error)
	FindByPollID(ctx context.Context, pollID int64) ([]model.Vote, error)
}

// Store bundles one implementation of each repository together with the
// resource that backs them.
type Store struct {
	Users UserRepository
	Polls PollRepository
	Votes VoteRepository

	// Close releases the backing resource. Nil for stores that hold nothing.
	Close func() error
}
