// Package business is the single entry point adapters call into. Each method
// is one use case; it delegates to the domain services and passes their
// results and errors back unchanged.
//
// Adapters (the HTTP handlers today) convert their own wire formats into the
// typed inputs below. Nothing in this package parses strings.
package business

import (
	"log/slog"

	"github.com/sakif/quickpoll/internal/repository"
	"github.com/sakif/quickpoll/internal/service"
)

// New builds both facades over one store.
func New(store *repository.Store, logger *slog.Logger) (*Polls, *Users) {
	polls := NewPolls(
		service.NewPollService(store.Polls, logger),
		service.NewVoteService(store.Polls, store.Votes, logger),
		service.NewResultsService(store.Polls, store.Votes, logger),
	)
	users := NewUsers(service.NewUserService(store.Users, logger))
	return polls, users
}
