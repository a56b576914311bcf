package command

// DeleteCurrent deletes the current picture file from disk and advances to the next one.
type DeleteCurrent struct {
	baseViewerCommand
}

func NewDeleteCurrent(viewerID string) *DeleteCurrent {
	return &DeleteCurrent{baseViewerCommand{viewerID: viewerID}}
}

func (c *DeleteCurrent) CommandName() string {
	return "DeleteCurrent"
}

// Reload rescans the album directory, keeping the current position where possible.
type Reload struct {
	baseViewerCommand
}

func NewReload(viewerID string) *Reload {
	return &Reload{baseViewerCommand{viewerID: viewerID}}
}

func (c *Reload) CommandName() string {
	return "Reload"
}

// StartSlideshow begins automatic forward navigation.
type StartSlideshow struct {
	baseViewerCommand
	// IntervalMS is the delay between advances in milliseconds, 0 for the configured default.
	IntervalMS int
}

func NewStartSlideshow(viewerID string, intervalMS int) *StartSlideshow {
	return &StartSlideshow{
		baseViewerCommand: baseViewerCommand{viewerID: viewerID},
		IntervalMS:        intervalMS,
	}
}

func (c *StartSlideshow) CommandName() string {
	return "StartSlideshow"
}

// StopSlideshow ends automatic navigation and returns to browsing.
type StopSlideshow struct {
	baseViewerCommand
}

func NewStopSlideshow(viewerID string) *StopSlideshow {
	return &StopSlideshow{baseViewerCommand{viewerID: viewerID}}
}

func (c *StopSlideshow) CommandName() string {
	return "StopSlideshow"
}
