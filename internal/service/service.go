// Package service contains the domain rules of the poll system.
//
// THE LAYERS:
//
//	Handler (HTTP)      → parses requests, writes responses
//	Business (facade)   → one entry point per use case
//	Service (rules)     → validates, enforces invariants, orchestrates
//	Repository (data)   → stores and finds entities
//
// Each service takes repository interfaces, never a concrete backend, so the
// same rules run against the in-memory, SQLite and Postgres stores.
//
// ERROR ORDER:
// Every operation validates its inputs in a fixed order and stops at the
// first failure. Callers (and tests) can rely on which error wins when
// several inputs are bad at once.
//
// LOGGING:
// Successful writes are logged at Info. Rejections caused by the caller
// (bad input, duplicate vote, unknown poll) are expected traffic and only
// reach Debug. Repository failures are logged at Error.
package service

import (
	"errors"
	"log/slog"

	"github.com/sakif/quickpoll/internal/apperror"
)

// logFailure logs err at Error when it is an infrastructure failure and at
// Debug when it is one of our own domain errors.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...any) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		logger.Debug(msg, append(attrs, slog.String("reason", apperror.Code(err)))...)
		return
	}
	logger.Error(msg, append(attrs, slog.String("error", err.Error()))...)
}
