package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/quickpoll/internal/apperror"
	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/repository"
	"github.com/sakif/quickpoll/internal/validate"
)

type PollService struct {
	polls  repository.PollRepository
	logger *slog.Logger
}

func NewPollService(polls repository.PollRepository, logger *slog.Logger) *PollService {
	return &PollService{
		polls:  polls,
		logger: logger,
	}
}

// Create validates and stores a new poll.
//
// Checks run in this order and the first failure wins:
// title, number of options, each option label, creator id.
// Nothing is written unless every check passes.
//
// The creator id is only checked for shape. Whether that user exists is not
// verified here.
func (s *PollService) Create(ctx context.Context, title string, options []string, createdByUserID int64) (model.Poll, error) {
	if err := validatePoll(title, options, createdByUserID); err != nil {
		logFailure(s.logger, "poll rejected", err, slog.String("title", title))
		return model.Poll{}, err
	}

	poll, err := s.polls.Create(ctx, model.Poll{
		Title:           title,
		Options:         append([]string(nil), options...),
		CreatedByUserID: createdByUserID,
	})
	if err != nil {
		logFailure(s.logger, "failed to create poll", err, slog.String("title", title))
		return model.Poll{}, fmt.Errorf("creating poll: %w", err)
	}

	s.logger.Info("poll created",
		slog.Int64("id", poll.ID),
		slog.String("title", poll.Title),
		slog.Int("options", len(poll.Options)),
		slog.Int64("created_by", poll.CreatedByUserID),
	)
	return poll, nil
}

func validatePoll(title string, options []string, createdByUserID int64) error {
	if !validate.ValidLabel(title) {
		return apperror.InvalidPollInput(apperror.ReasonTitle,
			"title must be non-empty and contain only letters, digits and spaces")
	}
	if !validate.ValidOptionCount(len(options)) {
		return apperror.InvalidPollInput(apperror.ReasonOptionsCount, fmt.Sprintf(
			"a poll needs %d to %d options, got %d", validate.MinOptions, validate.MaxOptions, len(options)))
	}
	for i, option := range options {
		if !validate.ValidLabel(option) {
			return apperror.InvalidPollInput(apperror.ReasonOptionLabel, fmt.Sprintf(
				"option %d must be non-empty and contain only letters, digits and spaces", i))
		}
	}
	if !validate.ValidPositiveInt(createdByUserID) {
		return apperror.InvalidPollInput(apperror.ReasonCreatorID,
			"createdByUserId must be a positive integer")
	}
	return nil
}

// GetByID returns the poll with the given id.
func (s *PollService) GetByID(ctx context.Context, id int64) (model.Poll, error) {
	if !validate.ValidPositiveInt(id) {
		return model.Poll{}, apperror.InvalidInput("id", "poll id must be a positive integer")
	}

	poll, found, err := s.polls.FindByID(ctx, id)
	if err != nil {
		logFailure(s.logger, "failed to get poll", err, slog.Int64("id", id))
		return model.Poll{}, fmt.Errorf("getting poll %d: %w", id, err)
	}
	if !found {
		return model.Poll{}, apperror.PollNotFound(id)
	}
	return poll, nil
}

// GetAll returns every poll in creation order.
func (s *PollService) GetAll(ctx context.Context) ([]model.Poll, error) {
	polls, err := s.polls.FindAll(ctx)
	if err != nil {
		logFailure(s.logger, "failed to list polls", err)
		return nil, fmt.Errorf("listing polls: %w", err)
	}
	return polls, nil
}

// GetByUserID returns the polls created by userID in creation order. A user
// with no polls (or an id nobody has) gets an empty slice, not an error.
func (s *PollService) GetByUserID(ctx context.Context, userID int64) ([]model.Poll, error) {
	if !validate.ValidPositiveInt(userID) {
		return nil, apperror.InvalidInput("userId", "user id must be a positive integer")
	}

	polls, err := s.polls.FindAllByUserID(ctx, userID)
	if err != nil {
		logFailure(s.logger, "failed to list polls of user", err, slog.Int64("user_id", userID))
		return nil, fmt.Errorf("listing polls of user %d: %w", userID, err)
	}
	if polls == nil {
		polls = []model.Poll{}
	}
	return polls, nil
}
