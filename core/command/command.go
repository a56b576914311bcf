// Package command defines all commands that can be sent to the application.
// Commands represent user intentions and are processed by the application layer.
package command

// Command is the base interface for all commands.
// Commands are sent from the presentation layer to the application layer.
type Command interface {
	// CommandName returns the name of the command for logging/debugging
	CommandName() string
}

// ViewerCommand is a command that targets a specific viewer.
type ViewerCommand interface {
	Command
	// ViewerID returns the target viewer ID
	ViewerID() string
}

// baseViewerCommand provides common implementation for viewer commands.
type baseViewerCommand struct {
	viewerID string
}

func (c *baseViewerCommand) ViewerID() string {
	return c.viewerID
}
