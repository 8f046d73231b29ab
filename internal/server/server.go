// Package server is the composition root: it picks a storage backend, builds
// the services and handlers on top of it, mounts the routes and runs the HTTP
// server until it is told to stop.
//
// DEPENDENCY FLOW:
//
//	config.Config → repository.Store (memory | sqlite | postgres)
//	              → business.Polls / business.Users
//	              → handler.PollHandler / handler.UserHandler
//	              → chi router
//
// Nothing below this package knows which backend was chosen.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/quickpoll/internal/business"
	"github.com/sakif/quickpoll/internal/config"
	"github.com/sakif/quickpoll/internal/handler"
	"github.com/sakif/quickpoll/internal/middleware"
	"github.com/sakif/quickpoll/internal/repository"
	"github.com/sakif/quickpoll/internal/repository/memory"
	"github.com/sakif/quickpoll/internal/repository/postgres"
	sqliteRepo "github.com/sakif/quickpoll/internal/repository/sqlite"
)

type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  *repository.Store
}

// New opens the configured store and wires the routes. The caller owns the
// returned server and must call Start or Close to release the store.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, store, logger), nil
}

// NewWithStore wires the routes over an already opened store.
func NewWithStore(cfg config.Config, store *repository.Store, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()
	return s
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*repository.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		// Create the data directory on first run (like `mkdir -p`).
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
			}
		}
		store, err := sqliteRepo.NewStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, nil
	case config.StorePostgres:
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return store, nil
	case config.StoreMemory, "":
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// setupRoutes mounts middleware and routes.
//
// ROUTES:
//
//	GET  /healthz
//	POST /api/users/login
//	GET  /api/users/{id}
//	GET  /api/users/{id}/polls
//	GET  /api/polls[?createdByUserId=]
//	POST /api/polls
//	GET  /api/polls/{id}
//	POST /api/polls/{id}/votes
//	GET  /api/polls/{id}/votes[?userId=]
//	GET  /api/polls/{id}/results
//
// MIDDLEWARE ORDER:
// RequestID first so everything after it (including the logger) sees the id.
// Recoverer sits inside Logger so a recovered panic is still logged as a 500.
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)

	polls, users := business.New(s.store, s.logger)
	pollHandler := handler.NewPollHandler(polls, s.logger)
	userHandler := handler.NewUserHandler(users, polls, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/users", userHandler.Routes)
		r.Route("/polls", pollHandler.Routes)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","store":%q}`+"\n", s.config.Store)
}

// Handler exposes the router, for tests and for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the store.
func (s *Server) Close() error {
	if s.store.Close == nil {
		return nil
	}
	return s.store.Close()
}

// Start serves HTTP until SIGINT or SIGTERM, then drains in-flight requests
// (up to 30s) and closes the store.
func (s *Server) Start() error {
	defer func() {
		if err := s.Close(); err != nil {
			s.logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("store", s.config.Store),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
