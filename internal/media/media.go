package media

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"sublign/internal/services"
)

// Formats lists the supported container extensions. Matching is exact and
// case-sensitive, so ".MKV" is not eligible.
var Formats = []string{".mkv", ".mp4", ".wmv", ".avi", ".flv"}

// Item represents a media file on disk whose audio can be analysed.
type Item struct {
	// Path is the location the item was constructed from, unaltered.
	Path string
	// Name is the file name without its extension. Sidecar subtitles are
	// discovered by prefix match against it.
	Name string
	// Extension is the container extension including the leading dot.
	Extension string
}

// NewItem validates the container extension and derives the item identity.
func NewItem(path string) (*Item, error) {
	ext := filepath.Ext(path)
	if !SupportedFormat(ext) {
		return nil, services.Wrap(services.ErrUnsupportedFormat, "media", "new item", fmt.Sprintf("filetype %q not supported", ext), nil)
	}
	base := filepath.Base(path)
	return &Item{
		Path:      path,
		Name:      strings.TrimSuffix(base, ext),
		Extension: ext,
	}, nil
}

// SupportedFormat reports whether ext is in the closed set of supported
// container extensions.
func SupportedFormat(ext string) bool {
	return slices.Contains(Formats, ext)
}

// Subtitles returns the sidecar subtitle paths for the item: files in the same
// directory whose name starts with the media name and ends in .srt. Results
// are sorted by file name.
func (i *Item) Subtitles() ([]string, error) {
	dir := filepath.Dir(i.Path)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list subtitles for %s: %w", i.Name, err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".srt") && strings.HasPrefix(name, i.Name) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}
