package album

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"axiv-go/domain/picture"
)

// SortOrder controls how scanned pictures are ordered.
type SortOrder int

const (
	// SortByName orders pictures by file name.
	SortByName SortOrder = iota
	// SortByModTime orders pictures by modification time, oldest first.
	SortByModTime
	// SortBySize orders pictures by file size, smallest first.
	SortBySize
)

// String returns the string representation of the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortByName:
		return "Name"
	case SortByModTime:
		return "ModTime"
	case SortBySize:
		return "Size"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// ParseSortOrder converts a config string to a SortOrder, defaulting to name order.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(s) {
	case "modtime", "mtime", "date":
		return SortByModTime
	case "size":
		return SortBySize
	default:
		return SortByName
	}
}

// DefaultExtensions is the built-in extension filter.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// ScanOptions configures directory scanning.
type ScanOptions struct {
	// Extensions is the lowercase extension filter including the leading dot.
	// Empty means DefaultExtensions.
	Extensions []string
	// Sort determines the picture order.
	Sort SortOrder
}

// Open scans the given path and builds an album.
//
// A directory yields an album of its matching files, a regular file yields a
// single-picture album regardless of the extension filter, and a missing
// path yields an empty, unshowable album (mirroring how a stale recent entry
// should behave: openable but with nothing to show).
func Open(path string, opts ScanOptions) (*Album, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(path, nil), nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return New(path, []*picture.Picture{picture.New(path)}), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}

	filter := extensionSet(opts.Extensions)

	type fileEntry struct {
		name    string
		size    int64
		modTime int64
	}

	var files []fileEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !filter[ext] {
			continue
		}

		fe := fileEntry{name: entry.Name()}
		if opts.Sort == SortByModTime || opts.Sort == SortBySize {
			fi, err := entry.Info()
			if err != nil {
				continue
			}
			fe.size = fi.Size()
			fe.modTime = fi.ModTime().UnixNano()
		}
		files = append(files, fe)
	}

	switch opts.Sort {
	case SortByModTime:
		sort.Slice(files, func(i, j int) bool {
			if files[i].modTime != files[j].modTime {
				return files[i].modTime < files[j].modTime
			}
			return files[i].name < files[j].name
		})
	case SortBySize:
		sort.Slice(files, func(i, j int) bool {
			if files[i].size != files[j].size {
				return files[i].size < files[j].size
			}
			return files[i].name < files[j].name
		})
	default:
		sort.Slice(files, func(i, j int) bool {
			return files[i].name < files[j].name
		})
	}

	pics := make([]*picture.Picture, 0, len(files))
	for _, f := range files {
		pics = append(pics, picture.New(filepath.Join(path, f.name)))
	}

	return New(path, pics), nil
}

// extensionSet builds a lookup set from the extension list.
func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}
