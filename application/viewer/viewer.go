// Package viewer implements the Viewer actor: one open directory of images.
package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"axiv-go/core/command"
	"axiv-go/core/event"
	"axiv-go/core/eventbus"
	"axiv-go/core/state"
	"axiv-go/domain/album"
	"axiv-go/domain/history"
	"axiv-go/domain/meta"
	"axiv-go/domain/picture"
)

// Options holds the tunables shared by all viewers.
type Options struct {
	// Extensions and Sort configure directory scanning.
	Extensions []string
	Sort       album.SortOrder

	// PreloadWindow and PreloadWorkers configure predictive preloading.
	PreloadWindow  int
	PreloadWorkers int

	// SlideshowInterval is the default delay between slideshow advances.
	SlideshowInterval time.Duration

	// ViewportWidth and ViewportHeight are the initial render target size.
	ViewportWidth  int
	ViewportHeight int

	// CommandBuffer is the command queue depth.
	CommandBuffer int
}

// Config holds configuration for creating a new Viewer.
type Config struct {
	ID string
	// Path is the directory or file to open.
	Path string
	// ResumeIndex positions the viewer after scanning, -1 to start at the beginning.
	ResumeIndex int

	Options  Options
	EventBus eventbus.EventBus
	History  *history.Service
	Logger   *slog.Logger
}

// Viewer represents one open directory as an actor. It processes commands
// serially through a command queue, ensuring thread-safe state management.
type Viewer struct {
	id          string
	path        string
	resumeIndex int

	// State
	state     state.ViewerState
	scaleMode picture.ScaleMode
	viewportW int
	viewportH int
	stateMu   sync.RWMutex

	// Album, owned by the actor goroutine after Start
	alb *album.Album

	// Components
	preloader *Preloader

	// Dependencies
	opts     Options
	eventBus eventbus.EventBus
	hist     *history.Service
	logger   *slog.Logger

	// Command processing
	cmdChan chan command.Command
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// Slideshow state, touched only by the actor goroutine
	slideshowStop chan struct{}
}

// New creates a new Viewer actor.
func New(cfg *Config) *Viewer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	opts := cfg.Options
	if opts.CommandBuffer <= 0 {
		opts.CommandBuffer = 100
	}
	if opts.PreloadWorkers <= 0 {
		opts.PreloadWorkers = 2
	}
	if opts.SlideshowInterval <= 0 {
		opts.SlideshowInterval = 3 * time.Second
	}
	if opts.ViewportWidth <= 0 || opts.ViewportHeight <= 0 {
		opts.ViewportWidth, opts.ViewportHeight = 1080, 720
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Viewer{
		id:          cfg.ID,
		path:        cfg.Path,
		resumeIndex: cfg.ResumeIndex,
		state:       state.StateIdle,
		scaleMode:   picture.ScaleFit,
		viewportW:   opts.ViewportWidth,
		viewportH:   opts.ViewportHeight,
		preloader:   NewPreloader(opts.PreloadWindow, opts.PreloadWorkers, cfg.Logger),
		opts:        opts,
		eventBus:    cfg.EventBus,
		hist:        cfg.History,
		logger:      cfg.Logger.With("viewer_id", cfg.ID),
		cmdChan:     make(chan command.Command, opts.CommandBuffer),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// ID returns the viewer ID.
func (v *Viewer) ID() string {
	return v.id
}

// Path returns the path the viewer was opened on.
func (v *Viewer) Path() string {
	return v.path
}

// State returns the current viewer state.
func (v *Viewer) State() state.ViewerState {
	v.stateMu.RLock()
	defer v.stateMu.RUnlock()
	return v.state
}

// ScaleMode returns the current scale mode.
func (v *Viewer) ScaleMode() picture.ScaleMode {
	v.stateMu.RLock()
	defer v.stateMu.RUnlock()
	return v.scaleMode
}

// Start begins the viewer's command processing loop.
func (v *Viewer) Start() {
	v.wg.Add(1)
	go v.run()
	v.logger.Info("Viewer started", "path", v.path)
}

// Stop signals the viewer to stop and waits for cleanup with timeout.
func (v *Viewer) Stop() {
	v.cancel()

	done := make(chan struct{})
	go func() {
		v.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		v.logger.Warn("Viewer stop timeout")
	}
}

// Send enqueues a command for processing. It never blocks; a full queue
// returns an error.
func (v *Viewer) Send(cmd command.Command) error {
	select {
	case <-v.ctx.Done():
		return fmt.Errorf("viewer %s is stopped", v.id)
	default:
	}

	select {
	case v.cmdChan <- cmd:
		return nil
	default:
		return fmt.Errorf("viewer %s command queue full", v.id)
	}
}

// run is the actor goroutine: open the album, then process commands serially.
func (v *Viewer) run() {
	defer v.wg.Done()
	defer v.finish()

	if err := v.open(); err != nil {
		v.logger.Error("Failed to open album", "path", v.path, "error", err)
		v.publish(event.NewOperationFailed(v.id, "open", err))
		return
	}

	for {
		select {
		case <-v.ctx.Done():
			return
		case cmd := <-v.cmdChan:
			v.handleCommand(cmd)
		}
	}
}

// open scans the path, positions the index and renders the first picture.
func (v *Viewer) open() error {
	if err := v.transitionTo(state.StateScanning); err != nil {
		return err
	}

	alb, err := album.Open(v.path, album.ScanOptions{
		Extensions: v.opts.Extensions,
		Sort:       v.opts.Sort,
	})
	if err != nil {
		return err
	}
	v.alb = alb

	// Position on the first showable picture, then apply a remembered index.
	alb.Showable()
	if v.resumeIndex > 0 {
		alb.SetIndex(v.resumeIndex)
	}

	if err := v.transitionTo(state.StateBrowsing); err != nil {
		return err
	}

	v.publish(event.NewDirectoryOpened(v.id, v.path, alb.Len()))
	v.logger.Info("Album opened", "path", v.path, "count", alb.Len())

	if v.hist != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := v.hist.RecordOpen(ctx, v.path); err != nil {
				v.logger.Warn("Failed to record history", "error", err)
			}
		}()
	}

	if alb.Len() > 0 {
		v.afterMove()
	}
	return nil
}

// handleCommand processes a single command.
func (v *Viewer) handleCommand(cmd command.Command) {
	v.logger.Debug("Handling command", "command", cmd.CommandName())

	switch cmd := cmd.(type) {
	case *command.Navigate:
		v.handleNavigate(cmd.Offset)
	case *command.GoFirst:
		v.handleGoEdge(true)
	case *command.GoLast:
		v.handleGoEdge(false)
	case *command.SetScaleMode:
		v.handleSetScaleMode(cmd.Mode)
	case *command.Rescale:
		v.handleRescale(cmd.Width, cmd.Height)
	case *command.DeleteCurrent:
		v.handleDeleteCurrent()
	case *command.Reload:
		v.handleReload()
	case *command.StartSlideshow:
		v.handleStartSlideshow(cmd.IntervalMS)
	case *command.StopSlideshow:
		v.handleStopSlideshow()
	default:
		v.logger.Warn("Unknown command", "command", cmd.CommandName())
	}
}

func (v *Viewer) handleNavigate(offset int) {
	if !v.State().CanNavigate() {
		v.logger.Debug("Navigation ignored in current state", "state", v.State())
		return
	}
	if v.alb.Move(offset) == nil {
		return
	}
	v.afterMove()
}

func (v *Viewer) handleGoEdge(first bool) {
	if !v.State().CanNavigate() {
		return
	}
	var p *picture.Picture
	if first {
		p = v.alb.Begin()
	} else {
		p = v.alb.End()
	}
	if p == nil {
		return
	}
	v.afterMove()
}

func (v *Viewer) handleSetScaleMode(mode picture.ScaleMode) {
	v.stateMu.Lock()
	changed := v.scaleMode != mode
	v.scaleMode = mode
	v.stateMu.Unlock()

	if changed {
		v.renderCurrent()
	}
}

func (v *Viewer) handleRescale(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	v.stateMu.Lock()
	changed := v.viewportW != width || v.viewportH != height
	v.viewportW = width
	v.viewportH = height
	v.stateMu.Unlock()

	if changed {
		v.renderCurrent()
	}
}

func (v *Viewer) handleDeleteCurrent() {
	cur := v.alb.Current()
	if cur == nil {
		v.publish(event.NewOperationFailed(v.id, "delete", album.ErrEmptyAlbum))
		return
	}

	path := cur.Path()
	if err := cur.DeleteFile(); err != nil {
		v.logger.Error("Failed to delete picture", "path", path, "error", err)
		v.publish(event.NewOperationFailed(v.id, "delete", err))
		return
	}

	v.alb.RemoveCurrent()
	v.logger.Info("Picture deleted", "path", path, "remaining", v.alb.Len())
	v.publish(event.NewPictureDeleted(v.id, path, v.alb.Len()))

	if v.alb.Len() > 0 {
		v.afterMove()
	}
}

func (v *Viewer) handleReload() {
	oldIndex := v.alb.Index()

	if err := v.transitionTo(state.StateScanning); err != nil {
		v.publish(event.NewOperationFailed(v.id, "reload", err))
		return
	}

	alb, err := album.Open(v.path, album.ScanOptions{
		Extensions: v.opts.Extensions,
		Sort:       v.opts.Sort,
	})
	if err != nil {
		v.logger.Error("Failed to rescan album", "error", err)
		v.publish(event.NewOperationFailed(v.id, "reload", err))
		// Keep the old album and return to browsing
		_ = v.transitionTo(state.StateBrowsing)
		return
	}

	v.alb = alb
	if oldIndex < alb.Len() {
		alb.SetIndex(oldIndex)
	}

	if err := v.transitionTo(state.StateBrowsing); err != nil {
		return
	}

	v.publish(event.NewDirectoryOpened(v.id, v.path, alb.Len()))
	if alb.Len() > 0 {
		v.afterMove()
	}
}

func (v *Viewer) handleStartSlideshow(intervalMS int) {
	if !v.State().CanStartSlideshow() {
		v.publish(event.NewOperationFailed(v.id, "slideshow",
			state.NewTransitionError(v.State(), state.StateSlideshow, "slideshow not available")))
		return
	}

	interval := v.opts.SlideshowInterval
	if intervalMS > 0 {
		interval = time.Duration(intervalMS) * time.Millisecond
	}

	if err := v.transitionTo(state.StateSlideshow); err != nil {
		return
	}

	stop := make(chan struct{})
	v.slideshowStop = stop

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-v.ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				// Route through the command queue so advances stay serialized
				// with user navigation.
				_ = v.Send(command.NewNavigate(v.id, 1))
			}
		}
	}()

	v.publish(event.NewSlideshowStarted(v.id, int(interval/time.Millisecond)))
	v.logger.Info("Slideshow started", "interval", interval)
}

func (v *Viewer) handleStopSlideshow() {
	if !v.State().CanStopSlideshow() {
		return
	}

	if v.slideshowStop != nil {
		close(v.slideshowStop)
		v.slideshowStop = nil
	}

	if err := v.transitionTo(state.StateBrowsing); err != nil {
		return
	}
	v.publish(event.NewSlideshowStopped(v.id))
	v.logger.Info("Slideshow stopped")
}

// afterMove publishes the position change, renders the current picture,
// reapplies the preload window and kicks off metadata extraction.
func (v *Viewer) afterMove() {
	cur := v.alb.Current()
	if cur == nil {
		return
	}

	v.publish(event.NewPictureChanged(v.id, v.alb.Index(), v.alb.Len(), cur.Path()))
	v.renderCurrent()

	if err := v.preloader.Apply(v.alb); err != nil {
		v.logger.Debug("Preload error", "error", err)
	}

	path := cur.Path()
	go func() {
		md, err := meta.Extract(path)
		if err != nil {
			v.logger.Debug("Metadata extraction failed", "path", path, "error", err)
			return
		}
		v.publish(event.NewMetadataLoaded(v.id, path, md))
	}()

	if v.hist != nil {
		idx := v.alb.Index()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := v.hist.RecordPosition(ctx, v.path, idx); err != nil {
				v.logger.Debug("Failed to record position", "error", err)
			}
		}()
	}
}

// renderCurrent scales the current picture for the viewport and publishes it.
func (v *Viewer) renderCurrent() {
	cur := v.alb.Current()
	if cur == nil {
		return
	}

	v.stateMu.RLock()
	width, height, mode := v.viewportW, v.viewportH, v.scaleMode
	v.stateMu.RUnlock()

	if _, err := cur.ScaleTo(width, height, mode); err != nil {
		v.logger.Warn("Failed to render picture", "path", cur.Path(), "error", err)
		v.publish(event.NewPictureLoadFailed(v.id, cur.Path(), err))
		return
	}

	v.publish(event.NewPictureRendered(v.id, cur.Path(), cur.Scaled()))
}

// finish runs the closing transitions and releases the album.
func (v *Viewer) finish() {
	if v.slideshowStop != nil {
		close(v.slideshowStop)
		v.slideshowStop = nil
	}

	cur := v.State()
	if !cur.IsTerminal() {
		if cur.CanTransitionTo(state.StateClosing) {
			_ = v.transitionTo(state.StateClosing)
		}
		_ = v.transitionTo(state.StateClosed)
	}

	// Drop decoded images
	if v.alb != nil {
		for _, p := range v.alb.Pictures() {
			p.Unload()
		}
	}

	v.publish(event.NewViewerClosed(v.id, nil))
	v.logger.Info("Viewer closed")
}

// transitionTo moves the state machine and publishes the change.
func (v *Viewer) transitionTo(target state.ViewerState) error {
	v.stateMu.Lock()
	old := v.state
	if !old.CanTransitionTo(target) {
		v.stateMu.Unlock()
		return state.NewTransitionError(old, target, "")
	}
	v.state = target
	v.stateMu.Unlock()

	v.publish(event.NewViewerStateChanged(v.id, old, target))
	return nil
}

func (v *Viewer) publish(e event.Event) {
	if v.eventBus != nil {
		v.eventBus.Publish(e)
	}
}
