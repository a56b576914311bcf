package presentation

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"axiv-go/domain/meta"
)

// InfoPanel shows file and camera metadata for the current picture.
type InfoPanel struct {
	container *fyne.Container

	nameLabel   *widget.Label
	sizeLabel   *widget.Label
	dimsLabel   *widget.Label
	formatLabel *widget.Label
	cameraLabel *widget.Label
	takenLabel  *widget.Label
	gpsLabel    *widget.Label
}

// NewInfoPanel creates a new metadata panel.
func NewInfoPanel() *InfoPanel {
	p := &InfoPanel{
		nameLabel:   widget.NewLabel(""),
		sizeLabel:   widget.NewLabel(""),
		dimsLabel:   widget.NewLabel(""),
		formatLabel: widget.NewLabel(""),
		cameraLabel: widget.NewLabel(""),
		takenLabel:  widget.NewLabel(""),
		gpsLabel:    widget.NewLabel(""),
	}
	p.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	p.nameLabel.Wrapping = fyne.TextWrapBreak

	p.container = container.NewVBox(
		p.nameLabel,
		widget.NewSeparator(),
		p.sizeLabel,
		p.dimsLabel,
		p.formatLabel,
		widget.NewSeparator(),
		p.cameraLabel,
		p.takenLabel,
		p.gpsLabel,
	)

	return p
}

// Container returns the panel's root object.
func (p *InfoPanel) Container() fyne.CanvasObject {
	return p.container
}

// Update fills the panel from extracted metadata.
func (p *InfoPanel) Update(md *meta.Metadata) {
	if md == nil {
		p.Clear()
		return
	}

	p.nameLabel.SetText(filepath.Base(md.Path))
	p.sizeLabel.SetText(fmt.Sprintf("Size: %s", formatBytes(md.FileSize)))
	if md.Width > 0 {
		p.dimsLabel.SetText(fmt.Sprintf("Dimensions: %s", md.Dimensions()))
	} else {
		p.dimsLabel.SetText("Dimensions: unknown")
	}
	if md.Format != "" {
		p.formatLabel.SetText(fmt.Sprintf("Format: %s", md.Format))
	} else {
		p.formatLabel.SetText("")
	}

	if camera := md.Camera(); camera != "" {
		p.cameraLabel.SetText(fmt.Sprintf("Camera: %s", camera))
	} else {
		p.cameraLabel.SetText("Camera: -")
	}
	if !md.TakenAt.IsZero() {
		p.takenLabel.SetText(fmt.Sprintf("Taken: %s", md.TakenAt.Format("2006-01-02 15:04:05")))
	} else {
		p.takenLabel.SetText("Taken: -")
	}
	if md.HasGPS {
		p.gpsLabel.SetText("GPS: yes")
	} else {
		p.gpsLabel.SetText("GPS: -")
	}
}

// Clear empties the panel.
func (p *InfoPanel) Clear() {
	for _, l := range []*widget.Label{
		p.nameLabel, p.sizeLabel, p.dimsLabel, p.formatLabel,
		p.cameraLabel, p.takenLabel, p.gpsLabel,
	} {
		l.SetText("")
	}
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
