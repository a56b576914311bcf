package command

import "axiv-go/domain/picture"

// Navigate moves the current picture index by the given offset.
// The index wraps around in both directions.
type Navigate struct {
	baseViewerCommand
	Offset int
}

func NewNavigate(viewerID string, offset int) *Navigate {
	return &Navigate{
		baseViewerCommand: baseViewerCommand{viewerID: viewerID},
		Offset:            offset,
	}
}

func (c *Navigate) CommandName() string {
	return "Navigate"
}

// GoFirst moves to the first picture in the album.
type GoFirst struct {
	baseViewerCommand
}

func NewGoFirst(viewerID string) *GoFirst {
	return &GoFirst{baseViewerCommand{viewerID: viewerID}}
}

func (c *GoFirst) CommandName() string {
	return "GoFirst"
}

// GoLast moves to the last picture in the album.
type GoLast struct {
	baseViewerCommand
}

func NewGoLast(viewerID string) *GoLast {
	return &GoLast{baseViewerCommand{viewerID: viewerID}}
}

func (c *GoLast) CommandName() string {
	return "GoLast"
}

// SetScaleMode changes how the current picture is fitted to the viewport.
type SetScaleMode struct {
	baseViewerCommand
	Mode picture.ScaleMode
}

func NewSetScaleMode(viewerID string, mode picture.ScaleMode) *SetScaleMode {
	return &SetScaleMode{
		baseViewerCommand: baseViewerCommand{viewerID: viewerID},
		Mode:              mode,
	}
}

func (c *SetScaleMode) CommandName() string {
	return "SetScaleMode"
}

// Rescale re-renders the current picture for a new viewport size.
// Sent by the UI when the window is resized.
type Rescale struct {
	baseViewerCommand
	Width, Height int
}

func NewRescale(viewerID string, width, height int) *Rescale {
	return &Rescale{
		baseViewerCommand: baseViewerCommand{viewerID: viewerID},
		Width:             width,
		Height:            height,
	}
}

func (c *Rescale) CommandName() string {
	return "Rescale"
}
