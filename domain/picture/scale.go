package picture

import (
	"fmt"

	"github.com/nfnt/resize"
)

// ScaleMode controls how a picture is fitted to the viewport.
type ScaleMode int

const (
	// ScaleFit scales the image to fit inside the viewport, keeping the aspect ratio.
	ScaleFit ScaleMode = iota
	// ScaleOriginal shows the image at its original size.
	ScaleOriginal
	// ScaleStretch scales the image to fill the viewport, ignoring the aspect ratio.
	ScaleStretch
	// ScaleFitHeight scales the image to the viewport height, keeping the aspect ratio.
	ScaleFitHeight
	// ScaleFitWidth scales the image to the viewport width, keeping the aspect ratio.
	ScaleFitWidth
)

// String returns the string representation of the scale mode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleFit:
		return "Fit"
	case ScaleOriginal:
		return "Original"
	case ScaleStretch:
		return "Stretch"
	case ScaleFitHeight:
		return "FitHeight"
	case ScaleFitWidth:
		return "FitWidth"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// ScaleTo produces a scaled rendition of the picture for the given viewport
// size. It returns true if the scaled image changed, false if the existing
// rendition was already right for this viewport and mode.
func (p *Picture) ScaleTo(width, height int, mode ScaleMode) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("invalid viewport size %dx%d", width, height)
	}
	if !p.Showable() {
		if err := p.LoadError(); err != nil {
			return false, err
		}
		return false, ErrNotShowable
	}
	if err := p.Load(); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	orig := p.original
	ob := orig.Bounds()
	origW, origH := ob.Dx(), ob.Dy()

	var curW, curH int
	if p.scaled != nil {
		sb := p.scaled.Bounds()
		curW, curH = sb.Dx(), sb.Dy()
	}

	switch mode {
	case ScaleFit:
		// The binding dimension is the one that reaches the viewport edge
		// first. If the scaled image already matches it, nothing to do.
		if float64(height)/float64(width) >= float64(origH)/float64(origW) {
			if curW == width {
				return false, nil
			}
			p.scaled = resize.Resize(uint(width), 0, orig, resize.Lanczos3)
		} else {
			if curH == height {
				return false, nil
			}
			p.scaled = resize.Resize(0, uint(height), orig, resize.Lanczos3)
		}
		return true, nil

	case ScaleOriginal:
		if curW == origW && curH == origH {
			return false, nil
		}
		p.scaled = orig
		return true, nil

	case ScaleStretch:
		if curW == width && curH == height {
			return false, nil
		}
		p.scaled = resize.Resize(uint(width), uint(height), orig, resize.Lanczos3)
		return true, nil

	case ScaleFitHeight:
		if curH == height {
			return false, nil
		}
		scaled := resize.Resize(0, uint(height), orig, resize.Lanczos3)
		// Very wide images are capped at twice the viewport width.
		if scaled.Bounds().Dx() > 2*width {
			scaled = resize.Resize(uint(2*width), 0, orig, resize.Lanczos3)
		}
		p.scaled = scaled
		return true, nil

	case ScaleFitWidth:
		if curW == width {
			return false, nil
		}
		scaled := resize.Resize(uint(width), 0, orig, resize.Lanczos3)
		// Very tall images are capped at twice the viewport height.
		if scaled.Bounds().Dy() > 2*height {
			scaled = resize.Resize(0, uint(2*height), orig, resize.Lanczos3)
		}
		p.scaled = scaled
		return true, nil

	default:
		return false, fmt.Errorf("unknown scale mode %d", mode)
	}
}
