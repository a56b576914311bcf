// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

import "axiv-go/core/state"

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// ViewerEvent is an event that originates from a specific viewer.
type ViewerEvent interface {
	Event
	// ViewerID returns the source viewer ID
	ViewerID() string
}

// baseViewerEvent provides common implementation for viewer events.
type baseViewerEvent struct {
	viewerID string
}

func (e *baseViewerEvent) ViewerID() string {
	return e.viewerID
}

// DirectoryOpened is published when an album has been scanned successfully.
type DirectoryOpened struct {
	baseViewerEvent
	Path  string
	Count int
}

func NewDirectoryOpened(viewerID, path string, count int) *DirectoryOpened {
	return &DirectoryOpened{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Path:            path,
		Count:           count,
	}
}

func (e *DirectoryOpened) EventName() string {
	return "DirectoryOpened"
}

// ViewerClosed is published when a viewer stops.
type ViewerClosed struct {
	baseViewerEvent
	Error error // nil if closed normally
}

func NewViewerClosed(viewerID string, err error) *ViewerClosed {
	return &ViewerClosed{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Error:           err,
	}
}

func (e *ViewerClosed) EventName() string {
	return "ViewerClosed"
}

// ViewerStateChanged is published when a viewer's state changes.
type ViewerStateChanged struct {
	baseViewerEvent
	OldState state.ViewerState
	NewState state.ViewerState
}

func NewViewerStateChanged(viewerID string, oldState, newState state.ViewerState) *ViewerStateChanged {
	return &ViewerStateChanged{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		OldState:        oldState,
		NewState:        newState,
	}
}

func (e *ViewerStateChanged) EventName() string {
	return "ViewerStateChanged"
}

// OperationFailed is published when a viewer operation fails in a way the UI should surface.
type OperationFailed struct {
	baseViewerEvent
	Operation string
	Error     error
}

func NewOperationFailed(viewerID, operation string, err error) *OperationFailed {
	return &OperationFailed{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Operation:       operation,
		Error:           err,
	}
}

func (e *OperationFailed) EventName() string {
	return "OperationFailed"
}
