package history

import "context"

// Repository defines the interface for history persistence operations.
type Repository interface {
	// FindByPath retrieves an entry by its path.
	// Returns nil if not found.
	FindByPath(ctx context.Context, path string) (*Entry, error)

	// FindRecent retrieves up to limit entries, most recently opened first.
	FindRecent(ctx context.Context, limit int) ([]*Entry, error)

	// Upsert inserts the entry or replaces an existing one with the same path.
	Upsert(ctx context.Context, entry *Entry) error

	// UpdateLastIndex updates only the remembered position for a path.
	UpdateLastIndex(ctx context.Context, path string, index int) error

	// Delete removes an entry by its path.
	Delete(ctx context.Context, path string) error

	// Trim removes all but the keep most recently opened entries.
	Trim(ctx context.Context, keep int) error
}
