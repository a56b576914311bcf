package history

import (
	"context"
	"errors"
	"time"
)

// ErrEntryNotFound is returned when no history entry exists for a path.
var ErrEntryNotFound = errors.New("history entry not found")

// defaultKeep is the number of entries retained when no limit is configured.
const defaultKeep = 20

// Service provides business logic for the recent-directories history.
type Service struct {
	repo Repository
	keep int
}

// NewService creates a new history service. keep bounds the number of
// retained entries; values below 1 fall back to the default.
func NewService(repo Repository, keep int) *Service {
	if keep < 1 {
		keep = defaultKeep
	}
	return &Service{repo: repo, keep: keep}
}

// RecordOpen registers that a path was opened now and trims old entries.
func (s *Service) RecordOpen(ctx context.Context, path string) error {
	entry, err := s.repo.FindByPath(ctx, path)
	if err != nil {
		return err
	}

	if entry == nil {
		entry = &Entry{Path: path}
	}
	entry.LastOpened = time.Now()
	entry.OpenCount++

	if err := s.repo.Upsert(ctx, entry); err != nil {
		return err
	}
	return s.repo.Trim(ctx, s.keep)
}

// RecordPosition remembers the viewer's position in a path.
func (s *Service) RecordPosition(ctx context.Context, path string, index int) error {
	return s.repo.UpdateLastIndex(ctx, path, index)
}

// Recent returns up to limit entries, most recently opened first.
// A limit below 1 returns the full retained list.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit < 1 || limit > s.keep {
		limit = s.keep
	}
	return s.repo.FindRecent(ctx, limit)
}

// LastIndex returns the remembered position for a path, or 0 when unknown.
func (s *Service) LastIndex(ctx context.Context, path string) (int, error) {
	entry, err := s.repo.FindByPath(ctx, path)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	return entry.LastIndex, nil
}

// Forget removes a path from the history.
func (s *Service) Forget(ctx context.Context, path string) error {
	entry, err := s.repo.FindByPath(ctx, path)
	if err != nil {
		return err
	}
	if entry == nil {
		return ErrEntryNotFound
	}
	return s.repo.Delete(ctx, path)
}
