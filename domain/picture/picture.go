// Package picture defines the Picture entity: a single image file that can be
// lazily loaded, unloaded and rescaled for display.
package picture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
)

// ErrNotShowable is returned when a picture has been checked and found undisplayable.
var ErrNotShowable = errors.New("picture is not showable")

// Picture represents a single image file.
//
// A Picture starts out unloaded. Loading decodes the file into memory;
// unloading drops the pixel data but keeps the showability verdict so a
// broken file is never decoded twice. The preload score drives loading:
// a score at or above 1 loads the picture, a score at or below 0 unloads it.
type Picture struct {
	path string

	mu       sync.Mutex
	score    float64
	checked  bool
	showable bool
	loaded   bool
	loadErr  error
	original image.Image
	scaled   image.Image
}

// New creates a Picture for the given file path. The file is not touched
// until Load or Showable is called.
func New(path string) *Picture {
	return &Picture{path: path}
}

// Path returns the file path of the picture.
func (p *Picture) Path() string {
	return p.path
}

// Showable reports whether the picture can be displayed.
// The first call triggers a load to find out.
func (p *Picture) Showable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.checked {
		p.loadLocked()
	}
	return p.showable
}

// IsLoaded reports whether the decoded image is currently in memory.
func (p *Picture) IsLoaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Load decodes the image file into memory. It is idempotent: loading a
// loaded picture is a no-op, and a picture that failed its first decode
// keeps returning the recorded error without touching the disk again.
func (p *Picture) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked()
}

func (p *Picture) loadLocked() error {
	if p.loaded {
		return nil
	}
	if p.checked && !p.showable {
		if p.loadErr != nil {
			return p.loadErr
		}
		return ErrNotShowable
	}

	p.checked = true
	p.showable = false

	info, err := os.Stat(p.path)
	if err != nil {
		p.loadErr = fmt.Errorf("stat %s: %w", p.path, err)
		return p.loadErr
	}
	if !info.Mode().IsRegular() {
		p.loadErr = fmt.Errorf("%s: not a regular file", p.path)
		return p.loadErr
	}

	img, err := DecodeFile(p.path)
	if err != nil {
		p.loadErr = fmt.Errorf("decode %s: %w", p.path, err)
		return p.loadErr
	}

	p.original = img
	p.showable = true
	p.loaded = true
	p.loadErr = nil
	return nil
}

// Unload drops the decoded pixel data to free memory.
// The showability verdict from the last load is kept.
func (p *Picture) Unload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded {
		p.original = nil
		p.scaled = nil
		p.loaded = false
	}
}

// Score returns the current preload score.
func (p *Picture) Score() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score
}

// ScoreAdd adds n to the preload score and returns the new score.
func (p *Picture) ScoreAdd(n float64) float64 {
	return p.ScoreSet(p.Score() + n)
}

// ScoreSet sets the preload score and returns the clamped result.
// A score at or below 0 unloads the picture; a score at or above 1 loads it.
func (p *Picture) ScoreSet(n float64) float64 {
	p.mu.Lock()

	p.score = n
	if p.score <= 0 {
		p.score = 0
		if p.loaded {
			p.original = nil
			p.scaled = nil
			p.loaded = false
		}
		score := p.score
		p.mu.Unlock()
		return score
	}

	score := p.score
	load := p.score >= 1
	p.mu.Unlock()

	if load {
		// Best effort: a failed load is recorded inside Load and
		// surfaced when the picture becomes current.
		_ = p.Load()
	}
	return score
}

// Original returns the decoded image, or nil if not loaded.
func (p *Picture) Original() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.original
}

// Scaled returns the most recently scaled image, or nil if none exists.
func (p *Picture) Scaled() image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scaled
}

// LoadError returns the error recorded by the last failed load, if any.
func (p *Picture) LoadError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// DeleteFile unloads the picture and removes the underlying file from disk.
func (p *Picture) DeleteFile() error {
	p.Unload()

	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := os.Stat(p.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", p.path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: not a regular file", p.path)
	}

	if err := os.Remove(p.path); err != nil {
		return fmt.Errorf("remove %s: %w", p.path, err)
	}

	p.showable = false
	p.checked = true
	return nil
}
