package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidPath reports a root path that is neither an .mp3 file nor a directory.
var ErrInvalidPath = errors.New("path is not an .mp3 file or directory")

// IsMP3 reports whether the path has an .mp3 extension (case-insensitive).
func IsMP3(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}

// CollectMP3s resolves a root path to the list of MP3 files to process.
// A directory is walked recursively; a path with an .mp3 extension is
// returned as-is. Whether such a file is actually readable is detected
// downstream when it is opened, not here.
func CollectMP3s(root string) ([]string, error) {
	if info, err := os.Stat(root); err == nil && info.IsDir() {
		return findMP3Files(root)
	}

	if IsMP3(root) {
		return []string{root}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidPath, root)
}

// findMP3Files recursively finds all MP3 files in a directory.
func findMP3Files(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if !info.IsDir() && IsMP3(path) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", dir, err)
	}

	return files, nil
}
