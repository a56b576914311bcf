// Package application coordinates viewers and routes commands.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"axiv-go/application/viewer"
	"axiv-go/core/command"
	"axiv-go/core/eventbus"
	"axiv-go/domain/history"
)

// CoordinatorConfig holds configuration for creating a Coordinator.
type CoordinatorConfig struct {
	EventBus eventbus.EventBus
	History  *history.Service
	Viewer   viewer.Options
	Logger   *slog.Logger
}

// Coordinator manages viewer lifecycles and routes commands to the right
// viewer actor.
type Coordinator struct {
	eventBus eventbus.EventBus
	hist     *history.Service
	opts     viewer.Options
	logger   *slog.Logger

	viewers map[string]*viewer.Viewer
	mu      sync.RWMutex
	nextID  atomic.Int64
}

// NewCoordinator creates a new Coordinator.
func NewCoordinator(cfg *CoordinatorConfig) *Coordinator {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Coordinator{
		eventBus: cfg.EventBus,
		hist:     cfg.History,
		opts:     cfg.Viewer,
		logger:   cfg.Logger,
		viewers:  map[string]*viewer.Viewer{},
	}
}

// Dispatch routes a command to the appropriate handler.
func (c *Coordinator) Dispatch(cmd command.Command) error {
	c.logger.Debug("Dispatching command", "command", cmd.CommandName())

	switch cmd := cmd.(type) {
	case *command.OpenDirectory:
		_, err := c.openViewer(cmd.Path, cmd.ResumeIndex)
		return err
	case *command.OpenFile:
		_, err := c.openViewer(cmd.Path, 0)
		return err
	case *command.CloseViewer:
		return c.closeViewer(cmd.ViewerID())
	case *command.CloseAllViewers:
		c.closeAll()
		return nil
	case command.ViewerCommand:
		return c.route(cmd)
	default:
		return fmt.Errorf("unknown command: %s", cmd.CommandName())
	}
}

// OpenPath opens a directory or file and returns the new viewer's ID.
// The starting position is restored from history when available.
func (c *Coordinator) OpenPath(path string) (string, error) {
	return c.openViewer(path, -1)
}

// Viewer returns the viewer with the given ID, or nil.
func (c *Coordinator) Viewer(id string) *viewer.Viewer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewers[id]
}

// ViewerCount returns the number of open viewers.
func (c *Coordinator) ViewerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.viewers)
}

// Stop closes all viewers and waits for them to finish, with a timeout.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	viewers := make([]*viewer.Viewer, 0, len(c.viewers))
	for _, v := range c.viewers {
		viewers = append(viewers, v)
	}
	c.viewers = map[string]*viewer.Viewer{}
	c.mu.Unlock()

	var wg sync.WaitGroup
	for _, v := range viewers {
		wg.Add(1)
		go func(v *viewer.Viewer) {
			defer wg.Done()
			v.Stop()
		}(v)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("All viewers stopped", "count", len(viewers))
	case <-time.After(10 * time.Second):
		c.logger.Warn("Timeout stopping viewers")
	}
}

func (c *Coordinator) openViewer(path string, resumeIndex int) (string, error) {
	if path == "" {
		return "", fmt.Errorf("open: empty path")
	}

	if resumeIndex < 0 && c.hist != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		idx, err := c.hist.LastIndex(ctx, path)
		cancel()
		if err != nil {
			c.logger.Debug("History lookup failed", "path", path, "error", err)
			idx = 0
		}
		resumeIndex = idx
	}

	id := fmt.Sprintf("viewer-%d", c.nextID.Add(1))
	v := viewer.New(&viewer.Config{
		ID:          id,
		Path:        path,
		ResumeIndex: resumeIndex,
		Options:     c.opts,
		EventBus:    c.eventBus,
		History:     c.hist,
		Logger:      c.logger,
	})

	c.mu.Lock()
	c.viewers[id] = v
	c.mu.Unlock()

	v.Start()
	c.logger.Info("Viewer opened", "viewer_id", id, "path", path)
	return id, nil
}

func (c *Coordinator) closeViewer(id string) error {
	c.mu.Lock()
	v, ok := c.viewers[id]
	if ok {
		delete(c.viewers, id)
	}
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("viewer %s not found", id)
	}

	v.Stop()
	return nil
}

func (c *Coordinator) closeAll() {
	c.Stop()
}

func (c *Coordinator) route(cmd command.ViewerCommand) error {
	c.mu.RLock()
	v, ok := c.viewers[cmd.ViewerID()]
	c.mu.RUnlock()

	if !ok {
		return fmt.Errorf("viewer %s not found", cmd.ViewerID())
	}
	return v.Send(cmd)
}
