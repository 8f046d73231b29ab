// Package memory implements the repository interfaces with in-process maps.
//
// LOCKING DISCIPLINE:
// Every store owns one sync.RWMutex and its own id counter. Writes (Create)
// take the write lock for the whole check-then-insert sequence, so two
// concurrent creates for the same unique key can never both pass the check.
// Reads take the read lock and run in parallel with each other.
//
// There is deliberately no lock shared between stores: a vote on poll 1 and
// a poll creation never wait on each other.
//
// COPY ON THE WAY IN AND OUT:
// Stored entities are immutable. Poll.Options is a slice, so it is cloned on
// insert and on every read; otherwise a caller could mutate the stored poll
// through the slice it got back.
package memory

import "github.com/sakif/quickpoll/internal/repository"

// NewStore returns a fresh, empty set of in-memory repositories.
func NewStore() *repository.Store {
	return &repository.Store{
		Users: NewUserStore(),
		Polls: NewPollStore(),
		Votes: NewVoteStore(),
	}
}
