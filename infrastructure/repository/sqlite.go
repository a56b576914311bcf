// Package repository provides data access implementations.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"
)

// SQLite holds the database handle for local persistence.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

// SQLiteConfig contains configuration for the local database.
type SQLiteConfig struct {
	// Path is the database file location. ":memory:" opens a transient database.
	Path        string
	OpenTimeout time.Duration
}

// DefaultSQLiteConfig returns default configuration with the database in the
// XDG data directory.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        filepath.Join(xdg.DataHome, "axiv", "axiv.db"),
		OpenTimeout: 5 * time.Second,
	}
}

// NewSQLite opens the database and creates the schema if needed.
func NewSQLite(ctx context.Context, cfg *SQLiteConfig, logger *slog.Logger) (*SQLite, error) {
	if cfg == nil {
		cfg = DefaultSQLiteConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Path, err)
	}

	// modernc.org/sqlite handles are not safe for concurrent writes
	// over multiple connections.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.OpenTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %s: %w", cfg.Path, err)
	}

	s := &SQLite{db: db, logger: logger}
	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Opened database", "path", cfg.Path)
	return s, nil
}

// createSchema creates the tables if they do not exist.
func (s *SQLite) createSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS history (
	path        TEXT PRIMARY KEY,
	last_opened INTEGER NOT NULL,
	last_index  INTEGER NOT NULL DEFAULT 0,
	open_count  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_history_last_opened ON history(last_opened DESC);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database handle.
func (s *SQLite) DB() *sql.DB {
	return s.db
}
