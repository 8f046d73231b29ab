// Package config reads the server settings from the environment.
//
// A .env file in the working directory is loaded first when present, so
// local runs can keep their settings in one file. Variables already set in
// the environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORE.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port        int
	Store       string
	DBPath      string
	DatabaseURL string
	LogLevel    slog.Level
}

// Load reads .env (if any) and the environment. Unknown or malformed values
// are errors rather than silently replaced by defaults.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: loading %s: %w", envFile, err)
	}

	cfg := &Config{
		Port:        8080,
		Store:       StoreMemory,
		DBPath:      "data/polls.db",
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    slog.LevelInfo,
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("STORE"); v != "" {
		switch strings.ToLower(v) {
		case StoreMemory, StoreSQLite, StorePostgres:
			cfg.Store = strings.ToLower(v)
		default:
			return nil, fmt.Errorf("config: invalid STORE %q (want memory, sqlite or postgres)", v)
		}
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		// slog.Level parses "debug", "info", "warn" and "error", any case.
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("config: invalid LOG_LEVEL %q", v)
		}
	}

	if cfg.Store == StorePostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL is required when STORE=postgres")
	}

	return cfg, nil
}
