package picture

import (
	"bytes"
	"fmt"
	"image"
	"os"

	// Raster decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxSVGDimension bounds the rasterization size for SVG files without a
// usable viewBox.
const maxSVGDimension = 2048

// DecodeFile reads and decodes an image file. SVG files are rasterized at
// their intrinsic size; everything else goes through the registered raster
// decoders.
func DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes image data from memory.
func DecodeBytes(data []byte) (image.Image, error) {
	if isSVGData(data) {
		return rasterizeSVG(data)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// isSVGData performs a lightweight detection of SVG content from raw bytes.
// It checks for an "<svg" tag in the initial portion of the data.
func isSVGData(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	n := len(data)
	if n > 4096 {
		n = 4096
	}
	header := bytes.ToLower(bytes.TrimSpace(data[:n]))
	return bytes.HasPrefix(header, []byte("<svg")) ||
		bytes.Contains(header, []byte("<svg")) ||
		bytes.Contains(header, []byte("xmlns=\"http://www.w3.org/2000/svg\""))
}

// rasterizeSVG renders an SVG byte slice into an RGBA image at its intrinsic size.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = maxSVGDimension/2, maxSVGDimension/2
	}
	if w > maxSVGDimension {
		w = maxSVGDimension
	}
	if h > maxSVGDimension {
		h = maxSVGDimension
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)

	return dst, nil
}
