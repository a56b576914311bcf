package event

import (
	"image"

	"axiv-go/domain/meta"
)

// PictureChanged is published when the current picture index moves.
type PictureChanged struct {
	baseViewerEvent
	Index int
	Total int
	Path  string
}

func NewPictureChanged(viewerID string, index, total int, path string) *PictureChanged {
	return &PictureChanged{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Index:           index,
		Total:           total,
		Path:            path,
	}
}

func (e *PictureChanged) EventName() string {
	return "PictureChanged"
}

// PictureRendered is published when a scaled image is ready for display.
type PictureRendered struct {
	baseViewerEvent
	Path  string
	Image image.Image
}

func NewPictureRendered(viewerID, path string, img image.Image) *PictureRendered {
	return &PictureRendered{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Path:            path,
		Image:           img,
	}
}

func (e *PictureRendered) EventName() string {
	return "PictureRendered"
}

// PictureLoadFailed is published when a picture cannot be decoded.
type PictureLoadFailed struct {
	baseViewerEvent
	Path  string
	Error error
}

func NewPictureLoadFailed(viewerID, path string, err error) *PictureLoadFailed {
	return &PictureLoadFailed{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Path:            path,
		Error:           err,
	}
}

func (e *PictureLoadFailed) EventName() string {
	return "PictureLoadFailed"
}

// PictureDeleted is published when the current picture file was removed from disk.
type PictureDeleted struct {
	baseViewerEvent
	Path      string
	Remaining int
}

func NewPictureDeleted(viewerID, path string, remaining int) *PictureDeleted {
	return &PictureDeleted{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Path:            path,
		Remaining:       remaining,
	}
}

func (e *PictureDeleted) EventName() string {
	return "PictureDeleted"
}

// MetadataLoaded is published when EXIF metadata for the current picture is available.
type MetadataLoaded struct {
	baseViewerEvent
	Path     string
	Metadata *meta.Metadata
}

func NewMetadataLoaded(viewerID, path string, md *meta.Metadata) *MetadataLoaded {
	return &MetadataLoaded{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		Path:            path,
		Metadata:        md,
	}
}

func (e *MetadataLoaded) EventName() string {
	return "MetadataLoaded"
}

// SlideshowStarted is published when automatic navigation begins.
type SlideshowStarted struct {
	baseViewerEvent
	IntervalMS int
}

func NewSlideshowStarted(viewerID string, intervalMS int) *SlideshowStarted {
	return &SlideshowStarted{
		baseViewerEvent: baseViewerEvent{viewerID: viewerID},
		IntervalMS:      intervalMS,
	}
}

func (e *SlideshowStarted) EventName() string {
	return "SlideshowStarted"
}

// SlideshowStopped is published when automatic navigation ends.
type SlideshowStopped struct {
	baseViewerEvent
}

func NewSlideshowStopped(viewerID string) *SlideshowStopped {
	return &SlideshowStopped{baseViewerEvent{viewerID: viewerID}}
}

func (e *SlideshowStopped) EventName() string {
	return "SlideshowStopped"
}
