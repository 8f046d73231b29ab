// Package main is the entry point for the quickpoll server.
//
// The main package stays minimal: read configuration, build the logger, hand
// both to internal/server and block until shutdown. All actual logic lives in
// the internal packages.
//
// Configuration comes from the environment (and an optional .env file):
//
//	PORT          listen port (default 8080)
//	STORE         memory | sqlite | postgres (default memory)
//	DB_PATH       SQLite file (default data/polls.db)
//	DATABASE_URL  Postgres DSN, required when STORE=postgres
//	LOG_LEVEL     debug | info | warn | error (default info)
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sakif/quickpoll/internal/config"
	"github.com/sakif/quickpoll/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	srv, err := server.New(context.Background(), *cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
