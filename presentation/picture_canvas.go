package presentation

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// PictureCanvas is a custom widget for displaying the current picture.
type PictureCanvas struct {
	widget.BaseWidget
	canvas    *canvas.Image
	imageMu   sync.RWMutex
	onTapped  func()
	onResized func(width, height int)
	lastSize  fyne.Size
}

// NewPictureCanvas creates a new picture canvas.
func NewPictureCanvas(size fyne.Size) *PictureCanvas {
	pc := &PictureCanvas{
		canvas: canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))),
	}
	pc.ExtendBaseWidget(pc)
	pc.canvas.Resize(size)
	// The picture is already scaled for the viewport by the viewer, show it as is
	pc.canvas.FillMode = canvas.ImageFillContain
	pc.canvas.ScaleMode = canvas.ImageScaleFastest
	return pc
}

// SetImage sets the displayed image.
func (pc *PictureCanvas) SetImage(img image.Image) {
	if img == nil {
		return
	}
	pc.imageMu.Lock()
	pc.canvas.Image = img
	pc.imageMu.Unlock()
	pc.canvas.Refresh()
	pc.Refresh()
}

// GetImage returns the current image.
func (pc *PictureCanvas) GetImage() image.Image {
	pc.imageMu.RLock()
	defer pc.imageMu.RUnlock()
	return pc.canvas.Image
}

// Clear replaces the image with an empty one.
func (pc *PictureCanvas) Clear() {
	pc.imageMu.Lock()
	pc.canvas.Image = image.NewRGBA(image.Rect(0, 0, 1, 1))
	pc.imageMu.Unlock()
	pc.canvas.Refresh()
	pc.Refresh()
}

// CreateRenderer creates the widget renderer.
func (pc *PictureCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.canvas)
}

// SetOnTapped sets the tap handler.
func (pc *PictureCanvas) SetOnTapped(fn func()) {
	pc.onTapped = fn
}

// Tapped handles tap events.
func (pc *PictureCanvas) Tapped(_ *fyne.PointEvent) {
	if pc.onTapped != nil {
		pc.onTapped()
	}
}

// SetOnResized sets the resize handler, called with the new viewport size in pixels.
func (pc *PictureCanvas) SetOnResized(fn func(width, height int)) {
	pc.onResized = fn
}

// Resize reports viewport changes so the picture can be rescaled.
func (pc *PictureCanvas) Resize(size fyne.Size) {
	pc.BaseWidget.Resize(size)

	if pc.onResized != nil && size != pc.lastSize {
		pc.lastSize = size
		pc.onResized(int(size.Width), int(size.Height))
	}
}

// MinSize returns the minimum size of the canvas.
func (pc *PictureCanvas) MinSize() fyne.Size {
	// Allow shrinking the window below the image size
	return fyne.NewSize(320, 240)
}
