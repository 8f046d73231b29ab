package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
	"github.com/sakif/quickpoll/internal/validate"
)

// UserService owns the login rules. There are no passwords: a username is
// the whole identity, and the first login with a new name creates the user.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// LoginOrCreate returns the user with the given username, creating it on the
// first login. Calling it again with the same name returns the same user.
//
// CONCURRENT FIRST LOGINS:
// Two requests for a brand-new name can both miss the lookup. Only one create
// wins; the other gets ErrDuplicateUser from the repository, and we answer it
// with the winner's record. Either way every caller sees the same user id.
func (s *UserService) LoginOrCreate(ctx context.Context, username string) (model.User, error) {
	if !validate.ValidUsername(username) {
		return model.User{}, apperror.InvalidUsername(fmt.Sprintf(
			"username must be %d-%d letters or digits", validate.MinUsernameLength, validate.MaxUsernameLength))
	}

	user, found, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		logFailure(s.logger, "failed to look up user", err, slog.String("username", username))
		return model.User{}, fmt.Errorf("finding user %q: %w", username, err)
	}
	if found {
		return user, nil
	}

	user, err = s.users.Create(ctx, model.User{Username: username})
	if errors.Is(err, apperror.ErrDuplicateUser) {
		user, found, err = s.users.FindByUsername(ctx, username)
		if err == nil && !found {
			err = fmt.Errorf("user %q vanished after duplicate create", username)
		}
		if err != nil {
			logFailure(s.logger, "failed to re-read user after race", err, slog.String("username", username))
			return model.User{}, fmt.Errorf("finding user %q: %w", username, err)
		}
		return user, nil
	}
	if err != nil {
		logFailure(s.logger, "failed to create user", err, slog.String("username", username))
		return model.User{}, fmt.Errorf("creating user %q: %w", username, err)
	}

	s.logger.Info("user created",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id int64) (model.User, error) {
	if !validate.ValidPositiveInt(id) {
		return model.User{}, apperror.InvalidInput("id", "user id must be a positive integer")
	}

	user, found, err := s.users.FindByID(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get user", err, slog.Int64("id", id))
		return model.User{}, fmt.Errorf("getting user %d: %w", id, err)
	}
	if !found {
		return model.User{}, apperror.NotFound("user", strconv.FormatInt(id, 10))
	}
	return user, nil
}
