// Package postgres implements the repository interfaces with gorm on
// PostgreSQL. It is the backend for deployments that run more than one
// server process against shared state.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sakif/quickpoll/internal/repository"
)

// Postgres wraps the gorm handle and the logger shared by the three
// repositories.
type Postgres struct {
	DB     *gorm.DB
	logger *slog.Logger
}

// Connect opens dsn, verifies the connection and migrates the schema.
func Connect(ctx context.Context, dsn string, log *slog.Logger) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}
	if log == nil {
		log = slog.Default()
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	p := &Postgres{DB: db, logger: log}
	if err := p.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return p, nil
}

// NewStore connects to dsn and returns the three repositories backed by it.
func NewStore(ctx context.Context, dsn string, log *slog.Logger) (*repository.Store, error) {
	p, err := Connect(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	return &repository.Store{
		Users: p.Users(),
		Polls: p.Polls(),
		Votes: p.Votes(),
		Close: p.Close,
	}, nil
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// migrate lets gorm create the tables and the unique indexes declared on the
// row models. AutoMigrate only adds, so it is safe on every start.
func (p *Postgres) migrate(ctx context.Context) error {
	if err := p.DB.WithContext(ctx).AutoMigrate(&userRow{}, &pollRow{}, &voteRow{}); err != nil {
		return fmt.Errorf("migrate postgres schema: %w", err)
	}
	return nil
}

// logError records a failed repository call and hands the error back so the
// caller can return it in one line.
func (p *Postgres) logError(event string, err error, attrs ...any) error {
	fields := append([]any{
		"event", event,
		"layer", "repository",
		"error", err.Error(),
	}, attrs...)
	p.logger.Error("postgres repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
