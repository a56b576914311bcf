// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"image"
	"log/slog"
	"sync"

	"axiv-go/application"
	"axiv-go/core/command"
	"axiv-go/core/event"
	"axiv-go/core/eventbus"
	"axiv-go/core/state"
	"axiv-go/domain/meta"
	"axiv-go/domain/picture"
)

// UIEventBridge bridges UI events to the application layer and routes events back to UI.
// It provides a clean separation between UI and business logic.
type UIEventBridge struct {
	coordinator *application.Coordinator
	eventBus    eventbus.EventBus
	logger      *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	// Subscription management
	subscriptionID string
}

// UICallbacks contains callbacks for UI updates.
type UICallbacks struct {
	// Viewer lifecycle
	OnDirectoryOpened    func(viewerID, path string, count int)
	OnViewerClosed       func(viewerID string, err error)
	OnViewerStateChanged func(viewerID string, oldState, newState state.ViewerState)
	OnOperationFailed    func(viewerID, operation string, err error)

	// Picture events
	OnPictureChanged    func(viewerID string, index, total int, path string)
	OnPictureRendered   func(viewerID, path string, img image.Image)
	OnPictureLoadFailed func(viewerID, path string, err error)
	OnPictureDeleted    func(viewerID, path string, remaining int)
	OnMetadataLoaded    func(viewerID, path string, md *meta.Metadata)

	// Slideshow events
	OnSlideshowStarted func(viewerID string, intervalMS int)
	OnSlideshowStopped func(viewerID string)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Coordinator *application.Coordinator
	EventBus    eventbus.EventBus
	Logger      *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		coordinator: cfg.Coordinator,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		callbacks:   &UICallbacks{},
	}

	// Subscribe to events
	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Command dispatching methods

// OpenDirectory opens a directory of images in a new viewer. The starting
// position is restored from history when available.
func (b *UIEventBridge) OpenDirectory(path string) (string, error) {
	return b.coordinator.OpenPath(path)
}

// OpenFile opens a single image file in a new viewer.
func (b *UIEventBridge) OpenFile(path string) error {
	return b.coordinator.Dispatch(&command.OpenFile{Path: path})
}

// CloseViewer closes a running viewer.
func (b *UIEventBridge) CloseViewer(viewerID string) error {
	return b.coordinator.Dispatch(command.NewCloseViewer(viewerID))
}

// CloseAllViewers closes all running viewers.
func (b *UIEventBridge) CloseAllViewers() error {
	return b.coordinator.Dispatch(&command.CloseAllViewers{})
}

// Navigate moves the current picture by the given offset, wrapping around.
func (b *UIEventBridge) Navigate(viewerID string, offset int) error {
	return b.coordinator.Dispatch(command.NewNavigate(viewerID, offset))
}

// GoFirst moves to the first picture.
func (b *UIEventBridge) GoFirst(viewerID string) error {
	return b.coordinator.Dispatch(command.NewGoFirst(viewerID))
}

// GoLast moves to the last picture.
func (b *UIEventBridge) GoLast(viewerID string) error {
	return b.coordinator.Dispatch(command.NewGoLast(viewerID))
}

// SetScaleMode changes how pictures are fitted to the viewport.
func (b *UIEventBridge) SetScaleMode(viewerID string, mode picture.ScaleMode) error {
	return b.coordinator.Dispatch(command.NewSetScaleMode(viewerID, mode))
}

// Rescale re-renders the current picture for a new viewport size.
func (b *UIEventBridge) Rescale(viewerID string, width, height int) error {
	return b.coordinator.Dispatch(command.NewRescale(viewerID, width, height))
}

// DeleteCurrent deletes the current picture from disk and the album.
func (b *UIEventBridge) DeleteCurrent(viewerID string) error {
	return b.coordinator.Dispatch(command.NewDeleteCurrent(viewerID))
}

// Reload rescans the viewer's directory.
func (b *UIEventBridge) Reload(viewerID string) error {
	return b.coordinator.Dispatch(command.NewReload(viewerID))
}

// StartSlideshow starts automatic advancing. intervalMS of 0 uses the default.
func (b *UIEventBridge) StartSlideshow(viewerID string, intervalMS int) error {
	return b.coordinator.Dispatch(command.NewStartSlideshow(viewerID, intervalMS))
}

// StopSlideshow stops automatic advancing.
func (b *UIEventBridge) StopSlideshow(viewerID string) error {
	return b.coordinator.Dispatch(command.NewStopSlideshow(viewerID))
}

// Query methods

// GetViewerState returns the state of a viewer.
func (b *UIEventBridge) GetViewerState(viewerID string) state.ViewerState {
	v := b.coordinator.Viewer(viewerID)
	if v == nil {
		return state.StateIdle
	}
	return v.State()
}

// GetViewerCount returns the number of open viewers.
func (b *UIEventBridge) GetViewerCount() int {
	return b.coordinator.ViewerCount()
}

// GetScaleMode returns the current scale mode of a viewer.
func (b *UIEventBridge) GetScaleMode(viewerID string) picture.ScaleMode {
	v := b.coordinator.Viewer(viewerID)
	if v == nil {
		return picture.ScaleFit
	}
	return v.ScaleMode()
}

// IsViewerActive checks if a viewer exists and is active.
func (b *UIEventBridge) IsViewerActive(viewerID string) bool {
	v := b.coordinator.Viewer(viewerID)
	return v != nil && v.State().IsActive()
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.DirectoryOpened:
		if callbacks.OnDirectoryOpened != nil {
			callbacks.OnDirectoryOpened(evt.ViewerID(), evt.Path, evt.Count)
		}

	case *event.ViewerClosed:
		if callbacks.OnViewerClosed != nil {
			callbacks.OnViewerClosed(evt.ViewerID(), evt.Error)
		}

	case *event.ViewerStateChanged:
		if callbacks.OnViewerStateChanged != nil {
			callbacks.OnViewerStateChanged(evt.ViewerID(), evt.OldState, evt.NewState)
		}

	case *event.OperationFailed:
		if callbacks.OnOperationFailed != nil {
			callbacks.OnOperationFailed(evt.ViewerID(), evt.Operation, evt.Error)
		}

	case *event.PictureChanged:
		if callbacks.OnPictureChanged != nil {
			callbacks.OnPictureChanged(evt.ViewerID(), evt.Index, evt.Total, evt.Path)
		}

	case *event.PictureRendered:
		if callbacks.OnPictureRendered != nil {
			callbacks.OnPictureRendered(evt.ViewerID(), evt.Path, evt.Image)
		}

	case *event.PictureLoadFailed:
		if callbacks.OnPictureLoadFailed != nil {
			callbacks.OnPictureLoadFailed(evt.ViewerID(), evt.Path, evt.Error)
		}

	case *event.PictureDeleted:
		if callbacks.OnPictureDeleted != nil {
			callbacks.OnPictureDeleted(evt.ViewerID(), evt.Path, evt.Remaining)
		}

	case *event.MetadataLoaded:
		if callbacks.OnMetadataLoaded != nil {
			callbacks.OnMetadataLoaded(evt.ViewerID(), evt.Path, evt.Metadata)
		}

	case *event.SlideshowStarted:
		if callbacks.OnSlideshowStarted != nil {
			callbacks.OnSlideshowStarted(evt.ViewerID(), evt.IntervalMS)
		}

	case *event.SlideshowStopped:
		if callbacks.OnSlideshowStopped != nil {
			callbacks.OnSlideshowStopped(evt.ViewerID())
		}
	}
}
