// Package sqlite implements the repository interfaces on top of an embedded
// SQLite database.
//
// WHY SQLITE?
// The poll service is a single process. SQLite gives it durable storage in a
// single file with no server to run, and ":memory:" gives tests a throwaway
// database that behaves exactly like the file-backed one.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 needs CGo and a C toolchain. modernc.org/sqlite is a pure
// Go translation of SQLite, so the binary cross-compiles like any other Go
// program.
//
// ONE CONNECTION:
// database/sql hands out a pool of connections. With ":memory:" every
// connection gets its own private database, so the pool is capped at one
// connection. That also serialises writers, which SQLite does anyway.
//
// UNIQUENESS LIVES IN THE SCHEMA:
// "one user per username" and "one vote per (poll, user)" are UNIQUE
// constraints. The INSERT is the check: a second insert fails inside SQLite,
// and we translate the constraint error into the matching apperror kind.
// There is no SELECT-then-INSERT window for a concurrent request to slip into.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// Importing the driver registers "sqlite" with database/sql. We also need
	// its Error type to recognise constraint violations.
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/quickpoll/internal/repository"
)

// DB wraps a sql.DB connection pool. The per-entity repositories are thin
// views over it, obtained with Users, Polls and Votes.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
//
// dbPath examples:
//   - "data/polls.db" → file-based database (persistent)
//   - ":memory:"      → in-memory database (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	// sql.Open is lazy. Ping forces the first connection so a bad path fails
	// here instead of on the first request.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in flight. In-memory
	// databases silently keep their own journal mode.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return db, nil
}

// NewStore opens dbPath and returns the three repositories backed by it.
// Store.Close closes the database.
func NewStore(dbPath string) (*repository.Store, error) {
	db, err := New(dbPath)
	if err != nil {
		return nil, err
	}
	return &repository.Store{
		Users: db.Users(),
		Polls: db.Polls(),
		Votes: db.Votes(),
		Close: db.Close,
	}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE ... IF NOT EXISTS makes it safe to run
// on every start.
//
// AUTOINCREMENT keeps SQLite from reusing the id of a deleted row, so ids are
// strictly increasing per table even if rows are ever removed by hand.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// options is a JSON array of labels. Polls are immutable and always read
	// whole, so a child table would buy nothing.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS polls (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			title              TEXT NOT NULL,
			options            TEXT NOT NULL,
			created_by_user_id INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_polls_created_by ON polls(created_by_user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating polls table: %w", err)
	}

	// The UNIQUE index doubles as the lookup index for FindByPollAndUser and,
	// through its leading column, for FindByPollID.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS votes (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			poll_id      INTEGER NOT NULL,
			user_id      INTEGER NOT NULL,
			option_index INTEGER NOT NULL,
			UNIQUE (poll_id, user_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating votes table: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is SQLite rejecting a row that
// breaks a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// Primary result code only, when extended codes are off.
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}
