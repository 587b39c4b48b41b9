package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"photoconv/internal/settings"
)

// resolveOutputDir picks the output folder for a run: the --out flag, then
// the stored path, then fallback (the source's own folder). Adopting the
// fallback counts as a settings mutation and gets persisted.
func resolveOutputDir(flagValue string, doc *settings.Document, fallback string) (string, bool) {
	if flagValue != "" {
		return flagValue, false
	}
	if doc.OutputFolderPath != nil && *doc.OutputFolderPath != "" {
		return *doc.OutputFolderPath, false
	}
	doc.OutputFolderPath = &fallback
	return fallback, true
}

// saveSettings persists the document, logging rather than failing: a broken
// settings file must never break a conversion.
func saveSettings(doc settings.Document) {
	if err := settings.Save(settingsFile, doc); err != nil {
		fmt.Fprintf(os.Stderr, "[photoconv] warning: %v\n", err)
	}
}

// progressLine prints in-place style progress to stderr.
func progressLine(current, total int, message string) {
	fmt.Fprintf(os.Stderr, "(%d/%d) %s\n", current, total, message)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", p, err)
	}
	return abs, nil
}
