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

// ResultsService tallies votes. Nothing is cached: every call counts the
// votes as they are at that moment.
type ResultsService struct {
	polls  repository.PollRepository
	votes  repository.VoteRepository
	logger *slog.Logger
}

func NewResultsService(polls repository.PollRepository, votes repository.VoteRepository, logger *slog.Logger) *ResultsService {
	return &ResultsService{
		polls:  polls,
		votes:  votes,
		logger: logger,
	}
}

// GetResults returns one count per option of pollID plus the total number of
// votes. A vote whose index falls outside the options is left out of the
// counts but still part of Total.
func (s *ResultsService) GetResults(ctx context.Context, pollID int64) (model.Results, error) {
	if !validate.ValidPositiveInt(pollID) {
		return model.Results{}, apperror.InvalidInput("pollId", "poll id must be a positive integer")
	}

	poll, found, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		logFailure(s.logger, "failed to get poll for results", err, slog.Int64("poll_id", pollID))
		return model.Results{}, fmt.Errorf("getting poll %d: %w", pollID, err)
	}
	if !found {
		return model.Results{}, apperror.PollNotFound(pollID)
	}

	votes, err := s.votes.FindByPollID(ctx, pollID)
	if err != nil {
		logFailure(s.logger, "failed to list votes for results", err, slog.Int64("poll_id", pollID))
		return model.Results{}, fmt.Errorf("listing votes of poll %d: %w", pollID, err)
	}

	return tally(poll, votes), nil
}

func tally(poll model.Poll, votes []model.Vote) model.Results {
	counts := make([]int, len(poll.Options))
	for _, v := range votes {
		if v.OptionIndex >= 0 && v.OptionIndex < len(counts) {
			counts[v.OptionIndex]++
		}
	}
	return model.Results{
		PollID: poll.ID,
		Counts: counts,
		Total:  len(votes),
	}
}
