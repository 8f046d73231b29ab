package business

import (
	"context"

	"github.com/sakif/quickpoll/internal/model"
	"github.com/sakif/quickpoll/internal/service"
)

// CreatePollInput is a poll as submitted, before validation.
type CreatePollInput struct {
	Title           string
	Options         []string
	CreatedByUserID int64
}

// VoteInput is a vote as submitted, before validation.
type VoteInput struct {
	PollID      int64
	UserID      int64
	OptionIndex int
}

type Polls struct {
	polls   *service.PollService
	votes   *service.VoteService
	results *service.ResultsService
}

func NewPolls(polls *service.PollService, votes *service.VoteService, results *service.ResultsService) *Polls {
	return &Polls{
		polls:   polls,
		votes:   votes,
		results: results,
	}
}

func (p *Polls) CreatePoll(ctx context.Context, in CreatePollInput) (model.Poll, error) {
	return p.polls.Create(ctx, in.Title, in.Options, in.CreatedByUserID)
}

func (p *Polls) Vote(ctx context.Context, in VoteInput) (model.Vote, error) {
	return p.votes.Create(ctx, in.PollID, in.UserID, in.OptionIndex)
}

func (p *Polls) GetResults(ctx context.Context, pollID int64) (model.Results, error) {
	return p.results.GetResults(ctx, pollID)
}

func (p *Polls) GetPoll(ctx context.Context, pollID int64) (model.Poll, error) {
	return p.polls.GetByID(ctx, pollID)
}

func (p *Polls) GetAllPolls(ctx context.Context) ([]model.Poll, error) {
	return p.polls.GetAll(ctx)
}

func (p *Polls) GetPollsByUser(ctx context.Context, userID int64) ([]model.Poll, error) {
	return p.polls.GetByUserID(ctx, userID)
}

func (p *Polls) GetUserVote(ctx context.Context, pollID, userID int64) (model.UserVote, error) {
	return p.votes.GetUserVote(ctx, pollID, userID)
}

func (p *Polls) GetPollVotes(ctx context.Context, pollID int64) ([]model.Vote, error) {
	return p.votes.GetPollVotes(ctx, pollID)
}
