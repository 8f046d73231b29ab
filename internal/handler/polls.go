package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/quickpoll/internal/business"
	"github.com/sakif/quickpoll/internal/model"
)

// PollUseCases is what the poll routes need from the business layer.
// *business.Polls satisfies it; tests can substitute their own.
type PollUseCases interface {
	CreatePoll(ctx context.Context, in business.CreatePollInput) (model.Poll, error)
	Vote(ctx context.Context, in business.VoteInput) (model.Vote, error)
	GetResults(ctx context.Context, pollID int64) (model.Results, error)
	GetPoll(ctx context.Context, pollID int64) (model.Poll, error)
	GetAllPolls(ctx context.Context) ([]model.Poll, error)
	GetPollsByUser(ctx context.Context, userID int64) ([]model.Poll, error)
	GetUserVote(ctx context.Context, pollID, userID int64) (model.UserVote, error)
	GetPollVotes(ctx context.Context, pollID int64) ([]model.Vote, error)
}

var _ PollUseCases = (*business.Polls)(nil)

type PollHandler struct {
	polls  PollUseCases
	logger *slog.Logger
}

func NewPollHandler(polls PollUseCases, logger *slog.Logger) *PollHandler {
	return &PollHandler{polls: polls, logger: logger}
}

// Routes mounts the poll endpoints on r.
func (h *PollHandler) Routes(r chi.Router) {
	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Post("/{id}/votes", h.HandleVote)
	r.Get("/{id}/votes", h.HandleVotes)
	r.Get("/{id}/results", h.HandleResults)
}

// HandleList returns every poll, or only those created by one user.
//
// HTTP: GET /api/polls[?createdByUserId=N]
func (h *PollHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var (
		polls []model.Poll
		err   error
	)
	if r.URL.Query().Has("createdByUserId") {
		polls, err = h.polls.GetPollsByUser(r.Context(), parseID(r.URL.Query().Get("createdByUserId")))
	} else {
		polls, err = h.polls.GetAllPolls(r.Context())
	}
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

// createPollRequest keeps every field raw so a wrong type can be coerced
// instead of failing the whole decode.
type createPollRequest struct {
	Title           json.RawMessage `json:"title"`
	Options         json.RawMessage `json:"options"`
	CreatedByUserID json.RawMessage `json:"createdByUserId"`
}

// HandleCreate creates a poll.
//
// HTTP: POST /api/polls
// REQUEST BODY: {"title": "Lunch", "options": ["Pizza", "Salad"], "createdByUserId": 1}
func (h *PollHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("invalid poll JSON", slog.String("error", err.Error()))
		writeInvalidJSON(w)
		return
	}

	poll, err := h.polls.CreatePoll(r.Context(), business.CreatePollInput{
		Title:           jsonString(req.Title),
		Options:         jsonStrings(req.Options),
		CreatedByUserID: jsonID(req.CreatedByUserID),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, poll)
}

// HandleGet returns one poll.
//
// HTTP: GET /api/polls/{id}
func (h *PollHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	poll, err := h.polls.GetPoll(r.Context(), parseID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, poll)
}

type voteRequest struct {
	UserID      json.RawMessage `json:"userId"`
	OptionIndex json.RawMessage `json:"optionIndex"`
}

// HandleVote records a vote on the poll in the path.
//
// HTTP: POST /api/polls/{id}/votes
// REQUEST BODY: {"userId": 3, "optionIndex": 0}
func (h *PollHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("invalid vote JSON", slog.String("error", err.Error()))
		writeInvalidJSON(w)
		return
	}

	vote, err := h.polls.Vote(r.Context(), business.VoteInput{
		PollID:      parseID(chi.URLParam(r, "id")),
		UserID:      jsonID(req.UserID),
		OptionIndex: jsonIndex(req.OptionIndex),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

// HandleVotes lists a poll's votes, or with ?userId= answers whether that
// user has voted: {"hasVoted": true, "vote": {...}} or {"hasVoted": false}.
//
// HTTP: GET /api/polls/{id}/votes[?userId=N]
func (h *PollHandler) HandleVotes(w http.ResponseWriter, r *http.Request) {
	pollID := parseID(chi.URLParam(r, "id"))

	if r.URL.Query().Has("userId") {
		userVote, err := h.polls.GetUserVote(r.Context(), pollID, parseID(r.URL.Query().Get("userId")))
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, userVote)
		return
	}

	votes, err := h.polls.GetPollVotes(r.Context(), pollID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}

// HandleResults returns the current tally.
//
// HTTP: GET /api/polls/{id}/results
func (h *PollHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.polls.GetResults(r.Context(), parseID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
