package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Discover walks root and returns an Item for every supported media file
// found. Files with unsupported extensions are skipped rather than reported;
// discovery is a filter, not a gate. When root is itself a file it must be a
// supported container.
func Discover(root string) ([]*Item, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discover media: %w", err)
	}

	if !info.IsDir() {
		item, err := NewItem(root)
		if err != nil {
			return nil, err
		}
		return []*Item{item}, nil
	}

	var items []*Item
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if !SupportedFormat(filepath.Ext(path)) {
			return nil
		}
		item, err := NewItem(path)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover media: %w", err)
	}
	return items, nil
}
