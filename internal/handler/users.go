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

type UserUseCases interface {
	Login(ctx context.Context, username string) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
}

var _ UserUseCases = (*business.Users)(nil)

// UserHandler serves login and user lookups. Listing a user's polls lives
// here too because it is addressed by user id.
type UserHandler struct {
	users  UserUseCases
	polls  PollUseCases
	logger *slog.Logger
}

func NewUserHandler(users UserUseCases, polls PollUseCases, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, polls: polls, logger: logger}
}

func (h *UserHandler) Routes(r chi.Router) {
	r.Post("/login", h.HandleLogin)
	r.Get("/{id}", h.HandleGet)
	r.Get("/{id}/polls", h.HandlePolls)
}

type loginRequest struct {
	Username json.RawMessage `json:"username"`
}

// HandleLogin logs in, creating the user the first time a name is used.
//
// HTTP: POST /api/users/login
// REQUEST BODY: {"username": "alice"}
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("invalid login JSON", slog.String("error", err.Error()))
		writeInvalidJSON(w)
		return
	}

	user, err := h.users.Login(r.Context(), jsonString(req.Username))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HTTP: GET /api/users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), parseID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// HTTP: GET /api/users/{id}/polls
func (h *UserHandler) HandlePolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.GetPollsByUser(r.Context(), parseID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}
