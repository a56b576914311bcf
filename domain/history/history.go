// Package history defines the Entry entity for recently opened directories.
package history

import "time"

// Entry represents one recently opened directory or file.
type Entry struct {
	// Path is the absolute path that was opened (unique key).
	Path string

	// LastOpened is when the path was last opened.
	LastOpened time.Time

	// LastIndex is the picture index the viewer was at when it closed,
	// used to resume the position on the next open.
	LastIndex int

	// OpenCount tracks how often the path has been opened.
	OpenCount int
}

// Clone creates a copy of the entry.
func (e *Entry) Clone() *Entry {
	clone := *e
	return &clone
}
