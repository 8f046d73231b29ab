package handler

// RESPONSE HELPERS:
// Every handler answers through writeJSON or writeError, so every response
// has the same content type and every error has the same shape:
//
//	{"error": "duplicate_vote", "message": "user 3 has already voted on poll 1"}
//
// "error" is a stable machine-readable code; "message" is for people.
// "field" and "reason" are added when the core reports which input was bad.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/quickpoll/internal/apperror"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`            // Machine-readable code, e.g. "poll_not_found"
	Message string `json:"message"`          // Human-readable description
	Field   string `json:"field,omitempty"`  // Offending input, when known
	Reason  string `json:"reason,omitempty"` // Sub-reason for invalid_poll_input
}

// writeJSON sends data as JSON with the given status. Headers go out before
// the body, so nothing may be set after this call.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// statusFor maps an error to its HTTP status by class, never by message.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError translates a domain error into a status code and error body.
// Anything that is not an AppError is an internal failure: it is logged and
// the client gets a generic message with no internal detail.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, statusFor(err), ErrorResponse{
			Error:   apperror.Code(err),
			Message: appErr.Message,
			Field:   appErr.Field,
			Reason:  appErr.Reason,
		})
		return
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// writeInvalidJSON answers a body that could not be decoded at all.
func writeInvalidJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_json",
		Message: "request body must be a JSON object",
	})
}
