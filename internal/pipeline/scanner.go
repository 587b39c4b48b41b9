package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtensions lists the input extensions a batch accepts.
var sourceExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

// IsSourceFile reports whether a file name has an eligible input extension.
func IsSourceFile(name string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(name))]
}

// Enumerate lists the convertible files in dir, sorted by name. A folder
// with no matching files yields an empty slice, not an error; an unreadable
// folder is an error.
func Enumerate(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read batch folder: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if IsSourceFile(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
