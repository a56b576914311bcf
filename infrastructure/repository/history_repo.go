package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"axiv-go/domain/history"
)

// SQLiteHistoryRepository implements history.Repository on SQLite.
type SQLiteHistoryRepository struct {
	db     *SQLite
	logger *slog.Logger
}

// NewSQLiteHistoryRepository creates a new history repository.
func NewSQLiteHistoryRepository(db *SQLite, logger *slog.Logger) *SQLiteHistoryRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteHistoryRepository{db: db, logger: logger}
}

// FindByPath retrieves an entry by its path. Returns nil if not found.
func (r *SQLiteHistoryRepository) FindByPath(ctx context.Context, path string) (*history.Entry, error) {
	row := r.db.DB().QueryRowContext(ctx,
		"SELECT path, last_opened, last_index, open_count FROM history WHERE path = ?", path)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find history entry: %w", err)
	}
	return entry, nil
}

// FindRecent retrieves up to limit entries, most recently opened first.
func (r *SQLiteHistoryRepository) FindRecent(ctx context.Context, limit int) ([]*history.Entry, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		"SELECT path, last_opened, last_index, open_count FROM history ORDER BY last_opened DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []*history.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Upsert inserts the entry or replaces an existing one with the same path.
func (r *SQLiteHistoryRepository) Upsert(ctx context.Context, entry *history.Entry) error {
	_, err := r.db.DB().ExecContext(ctx, `
INSERT INTO history (path, last_opened, last_index, open_count)
VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
	last_opened = excluded.last_opened,
	last_index  = excluded.last_index,
	open_count  = excluded.open_count`,
		entry.Path, entry.LastOpened.UnixMilli(), entry.LastIndex, entry.OpenCount)
	if err != nil {
		return fmt.Errorf("upsert history entry: %w", err)
	}
	return nil
}

// UpdateLastIndex updates only the remembered position for a path.
func (r *SQLiteHistoryRepository) UpdateLastIndex(ctx context.Context, path string, index int) error {
	_, err := r.db.DB().ExecContext(ctx,
		"UPDATE history SET last_index = ? WHERE path = ?", index, path)
	if err != nil {
		return fmt.Errorf("update history index: %w", err)
	}
	return nil
}

// Delete removes an entry by its path.
func (r *SQLiteHistoryRepository) Delete(ctx context.Context, path string) error {
	_, err := r.db.DB().ExecContext(ctx, "DELETE FROM history WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	return nil
}

// Trim removes all but the keep most recently opened entries.
func (r *SQLiteHistoryRepository) Trim(ctx context.Context, keep int) error {
	_, err := r.db.DB().ExecContext(ctx, `
DELETE FROM history WHERE path NOT IN (
	SELECT path FROM history ORDER BY last_opened DESC LIMIT ?
)`, keep)
	if err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*history.Entry, error) {
	var entry history.Entry
	var lastOpened int64

	if err := row.Scan(&entry.Path, &lastOpened, &entry.LastIndex, &entry.OpenCount); err != nil {
		return nil, err
	}
	entry.LastOpened = time.UnixMilli(lastOpened)
	return &entry, nil
}
