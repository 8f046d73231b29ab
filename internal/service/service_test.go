package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
	"github.com/sakif/quickpoll/internal/repository/memory"
)

// =========================================================================
// TEST DEPENDENCIES
// =========================================================================
//
// Most tests run against the real in-memory repositories: they are fast and
// honour the same contract as the SQL backends. The failing* fakes below
// stand in when a test needs the storage layer itself to break.

var errStorage = errors.New("storage unavailable")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// services bundles one of each service over a shared store.
type services struct {
	store   *repository.Store
	users   *UserService
	polls   *PollService
	votes   *VoteService
	results *ResultsService
}

func newServices(t *testing.T) services {
	t.Helper()
	return newServicesWith(memory.NewStore())
}

func newServicesWith(store *repository.Store) services {
	logger := testLogger()
	return services{
		store:   store,
		users:   NewUserService(store.Users, logger),
		polls:   NewPollService(store.Polls, logger),
		votes:   NewVoteService(store.Polls, store.Votes, logger),
		results: NewResultsService(store.Polls, store.Votes, logger),
	}
}

// createTestPoll creates a poll through the service and fails the test if it
// errors.
func createTestPoll(t *testing.T, s services, title string, options ...string) model.Poll {
	t.Helper()
	poll, err := s.polls.Create(context.Background(), title, options, 1)
	if err != nil {
		t.Fatalf("failed to create test poll: %v", err)
	}
	return poll
}

// assertKind fails the test unless err carries the given kind.
func assertKind(t *testing.T, err, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v, want %v", err, kind)
	}
}

// assertField fails the test unless err is an AppError naming field.
func assertField(t *testing.T, err error, field string) {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error %v is not an AppError", err)
	}
	if appErr.Field != field {
		t.Errorf("Field = %q, want %q", appErr.Field, field)
	}
}

// =========================================================================
// FAILING REPOSITORIES
// =========================================================================

type failingUsers struct{}

func (failingUsers) Create(context.Context, model.User) (model.User, error) {
	return model.User{}, errStorage
}
func (failingUsers) FindByID(context.Context, int64) (model.User, bool, error) {
	return model.User{}, false, errStorage
}
func (failingUsers) FindByUsername(context.Context, string) (model.User, bool, error) {
	return model.User{}, false, errStorage
}

type failingPolls struct{}

func (failingPolls) Create(context.Context, model.Poll) (model.Poll, error) {
	return model.Poll{}, errStorage
}
func (failingPolls) FindByID(context.Context, int64) (model.Poll, bool, error) {
	return model.Poll{}, false, errStorage
}
func (failingPolls) FindAll(context.Context) ([]model.Poll, error) { return nil, errStorage }
func (failingPolls) FindAllByUserID(context.Context, int64) ([]model.Poll, error) {
	return nil, errStorage
}

type failingVotes struct{}

func (failingVotes) Create(context.Context, model.Vote) (model.Vote, error) {
	return model.Vote{}, errStorage
}
func (failingVotes) FindByID(context.Context, int64) (model.Vote, bool, error) {
	return model.Vote{}, false, errStorage
}
func (failingVotes) FindAll(context.Context) ([]model.Vote, error) { return nil, errStorage }
func (failingVotes) FindByPollAndUser(context.Context, int64, int64) (model.Vote, bool, error) {
	return model.Vote{}, false, errStorage
}
func (failingVotes) FindByPollID(context.Context, int64) ([]model.Vote, error) {
	return nil, errStorage
}

var (
	_ repository.UserRepository = failingUsers{}
	_ repository.PollRepository = failingPolls{}
	_ repository.VoteRepository = failingVotes{}
)
