// Package meta extracts display metadata from image files.
//
// EXIF parsing is best effort: most PNG screenshots and downloaded images
// carry no EXIF block at all, and that is not an error.
package meta

import (
	"fmt"
	"image"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	exif "github.com/dsoprea/go-exif/v3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Metadata describes one image file for the info panel.
type Metadata struct {
	// File facts, always present.
	Path     string
	FileSize int64
	ModTime  time.Time

	// Pixel dimensions, zero when the file could not be decoded.
	Width  int
	Height int
	Format string

	// EXIF facts, zero values when absent.
	CameraMake  string
	CameraModel string
	Software    string
	TakenAt     time.Time
	HasGPS      bool
}

// exifTimeLayout is the timestamp format EXIF uses.
const exifTimeLayout = "2006:01:02 15:04:05"

// Extract reads file, dimension and EXIF metadata for the given image file.
// A missing or unparsable EXIF block leaves the EXIF fields empty.
func Extract(path string) (*Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	md := &Metadata{
		Path:     path,
		FileSize: info.Size(),
		ModTime:  info.ModTime(),
	}

	if f, err := os.Open(path); err == nil {
		if cfg, format, err := image.DecodeConfig(f); err == nil {
			md.Width = cfg.Width
			md.Height = cfg.Height
			md.Format = format
		}
		f.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return md, nil
	}
	fillEXIF(md, data)

	return md, nil
}

// fillEXIF parses the EXIF block and fills in the camera fields.
func fillEXIF(md *Metadata, data []byte) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return
	}

	for _, entry := range entries {
		switch entry.TagName {
		case "Make":
			md.CameraMake = entry.Formatted
		case "Model":
			md.CameraModel = entry.Formatted
		case "Software":
			md.Software = entry.Formatted
		case "DateTimeOriginal", "DateTime":
			if md.TakenAt.IsZero() {
				if t, err := time.ParseInLocation(exifTimeLayout, entry.Formatted, time.Local); err == nil {
					md.TakenAt = t
				}
			}
		case "GPSLatitude", "GPSLongitude":
			md.HasGPS = true
		}
	}
}

// Camera returns a single human-readable camera description, or empty if unknown.
func (m *Metadata) Camera() string {
	switch {
	case m.CameraMake != "" && m.CameraModel != "":
		return m.CameraMake + " " + m.CameraModel
	case m.CameraModel != "":
		return m.CameraModel
	case m.CameraMake != "":
		return m.CameraMake
	default:
		return ""
	}
}

// Dimensions returns "WxH" or empty when the size is unknown.
func (m *Metadata) Dimensions() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}
