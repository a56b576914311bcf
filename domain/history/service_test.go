package history

import (
	"context"
	"errors"
	"sort"
	"testing"
)

// memoryRepo is an in-memory Repository for testing the service.
type memoryRepo struct {
	entries map[string]*Entry
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{entries: make(map[string]*Entry)}
}

func (r *memoryRepo) FindByPath(ctx context.Context, path string) (*Entry, error) {
	e, ok := r.entries[path]
	if !ok {
		return nil, nil
	}
	return e.Clone(), nil
}

func (r *memoryRepo) FindRecent(ctx context.Context, limit int) ([]*Entry, error) {
	all := r.sorted()
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryRepo) Upsert(ctx context.Context, entry *Entry) error {
	r.entries[entry.Path] = entry.Clone()
	return nil
}

func (r *memoryRepo) UpdateLastIndex(ctx context.Context, path string, index int) error {
	if e, ok := r.entries[path]; ok {
		e.LastIndex = index
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, path string) error {
	delete(r.entries, path)
	return nil
}

func (r *memoryRepo) Trim(ctx context.Context, keep int) error {
	all := r.sorted()
	for i := keep; i < len(all); i++ {
		delete(r.entries, all[i].Path)
	}
	return nil
}

func (r *memoryRepo) sorted() []*Entry {
	all := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		all = append(all, e.Clone())
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].LastOpened.After(all[j].LastOpened)
	})
	return all
}

func TestService_RecordOpen(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 10)
	ctx := context.Background()

	if err := svc.RecordOpen(ctx, "/photos/2024"); err != nil {
		t.Fatalf("RecordOpen() error = %v", err)
	}

	entry, err := repo.FindByPath(ctx, "/photos/2024")
	if err != nil || entry == nil {
		t.Fatalf("Entry not stored: %v", err)
	}
	if entry.OpenCount != 1 {
		t.Errorf("OpenCount = %d, want 1", entry.OpenCount)
	}
	if entry.LastOpened.IsZero() {
		t.Error("LastOpened should be set")
	}

	// Opening again increments the count
	if err := svc.RecordOpen(ctx, "/photos/2024"); err != nil {
		t.Fatalf("RecordOpen() error = %v", err)
	}
	entry, _ = repo.FindByPath(ctx, "/photos/2024")
	if entry.OpenCount != 2 {
		t.Errorf("OpenCount = %d, want 2", entry.OpenCount)
	}
}

func TestService_RecordOpenTrims(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 3)
	ctx := context.Background()

	for _, p := range []string{"/a", "/b", "/c", "/d", "/e"} {
		if err := svc.RecordOpen(ctx, p); err != nil {
			t.Fatalf("RecordOpen(%s) error = %v", p, err)
		}
	}

	if len(repo.entries) != 3 {
		t.Errorf("Retained %d entries, want 3", len(repo.entries))
	}
}

func TestService_LastIndex(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 10)
	ctx := context.Background()

	// Unknown path resumes at 0
	idx, err := svc.LastIndex(ctx, "/unknown")
	if err != nil {
		t.Fatalf("LastIndex() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("LastIndex() = %d, want 0 for unknown path", idx)
	}

	if err := svc.RecordOpen(ctx, "/photos"); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordPosition(ctx, "/photos", 7); err != nil {
		t.Fatalf("RecordPosition() error = %v", err)
	}

	idx, err = svc.LastIndex(ctx, "/photos")
	if err != nil {
		t.Fatalf("LastIndex() error = %v", err)
	}
	if idx != 7 {
		t.Errorf("LastIndex() = %d, want 7", idx)
	}
}

func TestService_Forget(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 10)
	ctx := context.Background()

	if err := svc.Forget(ctx, "/nope"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Forget() unknown path = %v, want ErrEntryNotFound", err)
	}

	if err := svc.RecordOpen(ctx, "/photos"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Forget(ctx, "/photos"); err != nil {
		t.Fatalf("Forget() error = %v", err)
	}
	if entry, _ := repo.FindByPath(ctx, "/photos"); entry != nil {
		t.Error("Entry should be removed")
	}
}

func TestNewService_KeepFallback(t *testing.T) {
	svc := NewService(newMemoryRepo(), 0)
	if svc.keep != defaultKeep {
		t.Errorf("keep = %d, want %d", svc.keep, defaultKeep)
	}
}
