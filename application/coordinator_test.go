package application

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"axiv-go/application/viewer"
	"axiv-go/core/command"
	"axiv-go/core/event"
	"axiv-go/core/eventbus"
	"axiv-go/domain/history"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 20, 20))); err != nil {
		t.Fatal(err)
	}
}

func newTestDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		writeTestPNG(t, filepath.Join(dir, name))
	}
	return dir
}

// memoryHistoryRepo is an in-memory history.Repository for tests.
type memoryHistoryRepo struct {
	entries map[string]*history.Entry
}

func newMemoryHistoryRepo() *memoryHistoryRepo {
	return &memoryHistoryRepo{entries: map[string]*history.Entry{}}
}

func (r *memoryHistoryRepo) FindByPath(_ context.Context, path string) (*history.Entry, error) {
	e, ok := r.entries[path]
	if !ok {
		return nil, nil
	}
	return e.Clone(), nil
}

func (r *memoryHistoryRepo) FindRecent(_ context.Context, limit int) ([]*history.Entry, error) {
	var all []*history.Entry
	for _, e := range r.entries {
		all = append(all, e.Clone())
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LastOpened.After(all[j].LastOpened) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryHistoryRepo) Upsert(_ context.Context, entry *history.Entry) error {
	r.entries[entry.Path] = entry.Clone()
	return nil
}

func (r *memoryHistoryRepo) UpdateLastIndex(_ context.Context, path string, index int) error {
	if e, ok := r.entries[path]; ok {
		e.LastIndex = index
	}
	return nil
}

func (r *memoryHistoryRepo) Delete(_ context.Context, path string) error {
	delete(r.entries, path)
	return nil
}

func (r *memoryHistoryRepo) Trim(_ context.Context, keep int) error {
	recent, _ := r.FindRecent(context.Background(), keep)
	kept := map[string]bool{}
	for _, e := range recent {
		kept[e.Path] = true
	}
	for path := range r.entries {
		if !kept[path] {
			delete(r.entries, path)
		}
	}
	return nil
}

type coordinatorHarness struct {
	coord  *Coordinator
	events chan event.Event
}

func newCoordinatorHarness(t *testing.T, hist *history.Service) *coordinatorHarness {
	t.Helper()

	bus := eventbus.New(64)
	events := make(chan event.Event, 128)
	bus.Subscribe(func(e event.Event) {
		events <- e
	})

	coord := NewCoordinator(&CoordinatorConfig{
		EventBus: bus,
		History:  hist,
		Viewer:   viewer.Options{PreloadWindow: 1, PreloadWorkers: 2},
	})

	t.Cleanup(func() {
		coord.Stop()
		bus.Close()
	})

	return &coordinatorHarness{coord: coord, events: events}
}

func (h *coordinatorHarness) waitFor(t *testing.T, match func(event.Event) bool) event.Event {
	t.Helper()

	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-h.events:
			if match(e) {
				return e
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
			return nil
		}
	}
}

func TestCoordinator_OpenDirectory(t *testing.T) {
	dir := newTestDir(t, "a.png", "b.png")
	h := newCoordinatorHarness(t, nil)

	if err := h.coord.Dispatch(&command.OpenDirectory{Path: dir, ResumeIndex: -1}); err != nil {
		t.Fatalf("Dispatch(OpenDirectory) error = %v", err)
	}

	e := h.waitFor(t, func(e event.Event) bool {
		_, ok := e.(*event.DirectoryOpened)
		return ok
	})
	if e.(*event.DirectoryOpened).Count != 2 {
		t.Errorf("Count = %d, want 2", e.(*event.DirectoryOpened).Count)
	}
	if h.coord.ViewerCount() != 1 {
		t.Errorf("ViewerCount = %d, want 1", h.coord.ViewerCount())
	}
}

func TestCoordinator_OpenFile(t *testing.T) {
	dir := newTestDir(t, "only.png")
	h := newCoordinatorHarness(t, nil)

	if err := h.coord.Dispatch(&command.OpenFile{Path: filepath.Join(dir, "only.png")}); err != nil {
		t.Fatal(err)
	}

	e := h.waitFor(t, func(e event.Event) bool {
		_, ok := e.(*event.DirectoryOpened)
		return ok
	})
	if e.(*event.DirectoryOpened).Count != 1 {
		t.Errorf("Count = %d, want 1 for a single file", e.(*event.DirectoryOpened).Count)
	}
}

func TestCoordinator_RoutesNavigation(t *testing.T) {
	dir := newTestDir(t, "a.png", "b.png", "c.png")
	h := newCoordinatorHarness(t, nil)

	id, err := h.coord.OpenPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	h.waitFor(t, func(e event.Event) bool {
		pc, ok := e.(*event.PictureChanged)
		return ok && pc.Index == 0
	})

	if err := h.coord.Dispatch(command.NewNavigate(id, 1)); err != nil {
		t.Fatalf("Dispatch(Navigate) error = %v", err)
	}
	h.waitFor(t, func(e event.Event) bool {
		pc, ok := e.(*event.PictureChanged)
		return ok && pc.Index == 1
	})
}

func TestCoordinator_UnknownViewer(t *testing.T) {
	h := newCoordinatorHarness(t, nil)

	if err := h.coord.Dispatch(command.NewNavigate("no-such-viewer", 1)); err == nil {
		t.Error("Dispatch to unknown viewer should fail")
	}
}

func TestCoordinator_EmptyPath(t *testing.T) {
	h := newCoordinatorHarness(t, nil)

	if err := h.coord.Dispatch(&command.OpenDirectory{Path: ""}); err == nil {
		t.Error("Dispatch(OpenDirectory) with empty path should fail")
	}
}

func TestCoordinator_CloseViewer(t *testing.T) {
	dir := newTestDir(t, "a.png")
	h := newCoordinatorHarness(t, nil)

	id, err := h.coord.OpenPath(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := h.coord.Dispatch(command.NewCloseViewer(id)); err != nil {
		t.Fatalf("Dispatch(CloseViewer) error = %v", err)
	}
	h.waitFor(t, func(e event.Event) bool {
		_, ok := e.(*event.ViewerClosed)
		return ok
	})
	if h.coord.ViewerCount() != 0 {
		t.Errorf("ViewerCount = %d, want 0", h.coord.ViewerCount())
	}

	// Closing again fails
	if err := h.coord.Dispatch(command.NewCloseViewer(id)); err == nil {
		t.Error("closing a closed viewer should fail")
	}
}

func TestCoordinator_CloseAllViewers(t *testing.T) {
	h := newCoordinatorHarness(t, nil)

	for i := 0; i < 3; i++ {
		if _, err := h.coord.OpenPath(newTestDir(t, "a.png")); err != nil {
			t.Fatal(err)
		}
	}
	if h.coord.ViewerCount() != 3 {
		t.Fatalf("ViewerCount = %d, want 3", h.coord.ViewerCount())
	}

	if err := h.coord.Dispatch(&command.CloseAllViewers{}); err != nil {
		t.Fatal(err)
	}
	if h.coord.ViewerCount() != 0 {
		t.Errorf("ViewerCount = %d, want 0 after CloseAllViewers", h.coord.ViewerCount())
	}
}

func TestCoordinator_ResumesFromHistory(t *testing.T) {
	dir := newTestDir(t, "a.png", "b.png", "c.png")

	hist := history.NewService(newMemoryHistoryRepo(), 10)
	ctx := context.Background()
	if err := hist.RecordOpen(ctx, dir); err != nil {
		t.Fatal(err)
	}
	if err := hist.RecordPosition(ctx, dir, 2); err != nil {
		t.Fatal(err)
	}

	h := newCoordinatorHarness(t, hist)
	if _, err := h.coord.OpenPath(dir); err != nil {
		t.Fatal(err)
	}

	e := h.waitFor(t, func(e event.Event) bool {
		_, ok := e.(*event.PictureChanged)
		return ok
	})
	if e.(*event.PictureChanged).Index != 2 {
		t.Errorf("resumed Index = %d, want 2", e.(*event.PictureChanged).Index)
	}
}
