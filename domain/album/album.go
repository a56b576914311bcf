// Package album defines the Album entity: an ordered collection of pictures
// from one directory, with a current position that wraps around at both ends.
package album

import (
	"errors"

	"axiv-go/domain/picture"
)

// ErrEmptyAlbum is returned for operations that need at least one picture.
var ErrEmptyAlbum = errors.New("album contains no pictures")

// Album holds the pictures of one directory (or a single file) and the
// current navigation position.
type Album struct {
	path     string
	checked  bool
	showable bool
	pics     []*picture.Picture
	idx      int
}

// New creates an album from already scanned pictures.
// Use Open to build one directly from a filesystem path.
func New(path string, pics []*picture.Picture) *Album {
	a := &Album{
		path: path,
		pics: pics,
	}
	if len(pics) == 0 {
		a.checked = true
		a.showable = false
	}
	return a
}

// Path returns the directory or file path the album was built from.
func (a *Album) Path() string {
	return a.path
}

// Len returns the number of pictures in the album.
func (a *Album) Len() int {
	return len(a.pics)
}

// Index returns the current position.
func (a *Album) Index() int {
	return a.idx
}

// SetIndex positions the album at the given index if it is in range.
func (a *Album) SetIndex(i int) {
	if i >= 0 && i < len(a.pics) {
		a.idx = i
	}
}

// OffsetIndex returns the index at the given offset from the current
// position, wrapping around in both directions.
func (a *Album) OffsetIndex(offset int) int {
	n := len(a.pics)
	if n == 0 {
		return 0
	}

	idx := (a.idx + offset) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// Showable reports whether the album contains at least one showable picture.
// The first call scans forward and positions the index on the first showable
// picture it finds.
func (a *Album) Showable() bool {
	if a.checked {
		return a.showable
	}

	for i, p := range a.pics {
		if p.Showable() {
			a.showable = true
			a.checked = true
			a.idx = i
			return true
		}
	}

	a.showable = false
	a.checked = true
	return false
}

// Current returns the picture at the current position, or nil if the album is empty.
func (a *Album) Current() *picture.Picture {
	if len(a.pics) == 0 {
		return nil
	}
	return a.pics[a.idx]
}

// At returns the picture at the given offset from the current position,
// or nil if the album is empty.
func (a *Album) At(offset int) *picture.Picture {
	if len(a.pics) == 0 {
		return nil
	}
	return a.pics[a.OffsetIndex(offset)]
}

// Move shifts the current position by the given offset and returns the new
// current picture, or nil if the album is empty.
func (a *Album) Move(offset int) *picture.Picture {
	if len(a.pics) == 0 {
		return nil
	}
	a.idx = a.OffsetIndex(offset)
	return a.pics[a.idx]
}

// Begin moves to the first picture.
func (a *Album) Begin() *picture.Picture {
	if len(a.pics) == 0 {
		return nil
	}
	a.idx = 0
	return a.pics[a.idx]
}

// End moves to the last picture.
func (a *Album) End() *picture.Picture {
	if len(a.pics) == 0 {
		return nil
	}
	a.idx = len(a.pics) - 1
	return a.pics[a.idx]
}

// Load loads the picture at the given offset from the current position.
func (a *Album) Load(offset int) error {
	if len(a.pics) == 0 {
		return ErrEmptyAlbum
	}
	return a.pics[a.OffsetIndex(offset)].Load()
}

// Scale scales the picture at the given offset for the given viewport.
func (a *Album) Scale(offset, width, height int, mode picture.ScaleMode) (bool, error) {
	if len(a.pics) == 0 {
		return false, ErrEmptyAlbum
	}
	return a.pics[a.OffsetIndex(offset)].ScaleTo(width, height, mode)
}

// RemoveCurrent drops the current picture from the album, keeping the index
// pointed at the picture that followed it. The removed picture is returned.
func (a *Album) RemoveCurrent() *picture.Picture {
	if len(a.pics) == 0 {
		return nil
	}

	removed := a.pics[a.idx]
	a.pics = append(a.pics[:a.idx], a.pics[a.idx+1:]...)

	if len(a.pics) == 0 {
		a.idx = 0
		a.showable = false
		a.checked = true
		return removed
	}
	if a.idx >= len(a.pics) {
		a.idx = 0
	}
	return removed
}

// Pictures returns the album's pictures in order.
func (a *Album) Pictures() []*picture.Picture {
	return a.pics
}
