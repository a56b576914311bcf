package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"axiv-go/domain/history"
)

func newTestRepo(t *testing.T) *SQLiteHistoryRepository {
	t.Helper()

	db, err := NewSQLite(context.Background(), &SQLiteConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		OpenTimeout: 5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewSQLiteHistoryRepository(db, nil)
}

func TestHistoryRepository_UpsertAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Not found yet
	entry, err := repo.FindByPath(ctx, "/photos")
	if err != nil {
		t.Fatalf("FindByPath() error = %v", err)
	}
	if entry != nil {
		t.Fatal("FindByPath() should return nil for unknown path")
	}

	opened := time.Now().Truncate(time.Millisecond)
	if err := repo.Upsert(ctx, &history.Entry{
		Path:       "/photos",
		LastOpened: opened,
		LastIndex:  3,
		OpenCount:  1,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	entry, err = repo.FindByPath(ctx, "/photos")
	if err != nil {
		t.Fatalf("FindByPath() error = %v", err)
	}
	if entry == nil {
		t.Fatal("FindByPath() returned nil after Upsert")
	}
	if entry.LastIndex != 3 || entry.OpenCount != 1 {
		t.Errorf("Entry = %+v, want LastIndex=3 OpenCount=1", entry)
	}
	if !entry.LastOpened.Equal(opened) {
		t.Errorf("LastOpened = %v, want %v", entry.LastOpened, opened)
	}

	// Upsert replaces
	if err := repo.Upsert(ctx, &history.Entry{
		Path:       "/photos",
		LastOpened: opened.Add(time.Hour),
		LastIndex:  9,
		OpenCount:  2,
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	entry, _ = repo.FindByPath(ctx, "/photos")
	if entry.LastIndex != 9 || entry.OpenCount != 2 {
		t.Errorf("Entry after replace = %+v, want LastIndex=9 OpenCount=2", entry)
	}
}

func TestHistoryRepository_FindRecentOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now()
	for i, path := range []string{"/a", "/b", "/c"} {
		if err := repo.Upsert(ctx, &history.Entry{
			Path:       path,
			LastOpened: base.Add(time.Duration(i) * time.Minute),
			OpenCount:  1,
		}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := repo.FindRecent(ctx, 2)
	if err != nil {
		t.Fatalf("FindRecent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("FindRecent() returned %d entries, want 2", len(entries))
	}
	if entries[0].Path != "/c" || entries[1].Path != "/b" {
		t.Errorf("FindRecent() order = [%s, %s], want [/c, /b]", entries[0].Path, entries[1].Path)
	}
}

func TestHistoryRepository_UpdateLastIndex(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Upsert(ctx, &history.Entry{Path: "/p", LastOpened: time.Now(), OpenCount: 1}); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateLastIndex(ctx, "/p", 42); err != nil {
		t.Fatalf("UpdateLastIndex() error = %v", err)
	}

	entry, _ := repo.FindByPath(ctx, "/p")
	if entry.LastIndex != 42 {
		t.Errorf("LastIndex = %d, want 42", entry.LastIndex)
	}
}

func TestHistoryRepository_DeleteAndTrim(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Now()
	for i, path := range []string{"/a", "/b", "/c", "/d"} {
		if err := repo.Upsert(ctx, &history.Entry{
			Path:       path,
			LastOpened: base.Add(time.Duration(i) * time.Minute),
			OpenCount:  1,
		}); err != nil {
			t.Fatal(err)
		}
	}

	if err := repo.Delete(ctx, "/d"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if entry, _ := repo.FindByPath(ctx, "/d"); entry != nil {
		t.Error("Deleted entry should be gone")
	}

	if err := repo.Trim(ctx, 2); err != nil {
		t.Fatalf("Trim() error = %v", err)
	}
	entries, err := repo.FindRecent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("After Trim(2): %d entries, want 2", len(entries))
	}
	// The oldest entries were dropped
	if entries[0].Path != "/c" || entries[1].Path != "/b" {
		t.Errorf("After Trim(2): [%s, %s], want [/c, /b]", entries[0].Path, entries[1].Path)
	}
}

func TestHistoryService_OnSQLite(t *testing.T) {
	repo := newTestRepo(t)
	svc := history.NewService(repo, 3)
	ctx := context.Background()

	for _, p := range []string{"/a", "/b", "/c", "/d"} {
		if err := svc.RecordOpen(ctx, p); err != nil {
			t.Fatalf("RecordOpen(%s) error = %v", p, err)
		}
	}

	entries, err := svc.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("Recent() returned %d entries, want 3 (trimmed)", len(entries))
	}
}
