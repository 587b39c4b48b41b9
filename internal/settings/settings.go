// Package settings holds the per-format encode policy and the document
// that persists it between runs.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the settings document's on-disk name, placed next to the
// running executable.
const FileName = "image_converter_settings.json"

// ResizeMode selects whether a conversion resizes its input.
type ResizeMode string

const (
	ResizeOriginal ResizeMode = "original"
	ResizeSpecify  ResizeMode = "specify"
)

// Encode is the user-editable encode policy for one target format.
type Encode struct {
	Lossless   bool       `json:"lossless"`
	Quality    int        `json:"quality"` // 0-100, ignored by WebP when Lossless
	ResizeMode ResizeMode `json:"resize_mode"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
}

// Document aggregates both per-format policies and the last-used folders.
// Folder paths are pointers so that "never set" serializes as null.
type Document struct {
	WebP             Encode  `json:"webp_settings"`
	AVIF             Encode  `json:"avif_settings"`
	OutputFolderPath *string `json:"output_folder_path"`
	BatchFolderPath  *string `json:"batch_folder_path"`
}

// Defaults returns the compiled-in settings document.
func Defaults() Document {
	base := Encode{
		Lossless:   false,
		Quality:    90,
		ResizeMode: ResizeOriginal,
		Width:      1280,
		Height:     720,
	}
	avif := base
	avif.Quality = 70
	return Document{WebP: base, AVIF: avif}
}

// ForFormat returns the policy for "webp" or "avif".
func (d Document) ForFormat(format string) (Encode, error) {
	switch format {
	case "webp":
		return d.WebP, nil
	case "avif":
		return d.AVIF, nil
	default:
		return Encode{}, fmt.Errorf("unknown format %q", format)
	}
}

// SetForFormat replaces the policy for "webp" or "avif".
func (d *Document) SetForFormat(format string, e Encode) error {
	switch format {
	case "webp":
		d.WebP = e
	case "avif":
		d.AVIF = e
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// rawEncode mirrors Encode with pointer fields so that a loaded document
// only overrides the keys it actually carries.
type rawEncode struct {
	Lossless   *bool   `json:"lossless"`
	Quality    *int    `json:"quality"`
	ResizeMode *string `json:"resize_mode"`
	Width      *int    `json:"width"`
	Height     *int    `json:"height"`
}

type rawDocument struct {
	WebP             *rawEncode `json:"webp_settings"`
	AVIF             *rawEncode `json:"avif_settings"`
	OutputFolderPath *string    `json:"output_folder_path"`
	BatchFolderPath  *string    `json:"batch_folder_path"`
}

func (r *rawEncode) apply(e *Encode) {
	if r == nil {
		return
	}
	if r.Lossless != nil {
		e.Lossless = *r.Lossless
	}
	if r.Quality != nil {
		e.Quality = *r.Quality
	}
	if r.ResizeMode != nil {
		e.ResizeMode = ResizeMode(*r.ResizeMode)
	}
	if r.Width != nil {
		e.Width = *r.Width
	}
	if r.Height != nil {
		e.Height = *r.Height
	}
}

// Load reads the settings document at path, merging it field-by-field over
// the defaults. It never fails: a missing or corrupt file yields defaults,
// with a diagnostic on the log. A stored batch folder that no longer exists
// as a directory is treated as absent.
func Load(path string) Document {
	doc := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("settings file not found, using defaults", "path", path)
		} else {
			slog.Warn("settings file unreadable, using defaults", "path", path, "error", err)
		}
		return doc
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("settings file malformed, using defaults", "path", path, "error", err)
		return doc
	}

	raw.WebP.apply(&doc.WebP)
	raw.AVIF.apply(&doc.AVIF)
	doc.OutputFolderPath = raw.OutputFolderPath
	if raw.BatchFolderPath != nil {
		if fi, err := os.Stat(*raw.BatchFolderPath); err == nil && fi.IsDir() {
			doc.BatchFolderPath = raw.BatchFolderPath
		} else {
			slog.Info("stored batch folder no longer exists, ignoring", "path", *raw.BatchFolderPath)
		}
	}
	return doc
}

// Save writes the document as pretty-printed JSON. All four top-level keys
// are always present; absent folder paths serialize as null.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// DefaultPath returns the settings file location: next to the executable,
// falling back to the working directory when that cannot be resolved.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		wd, werr := os.Getwd()
		if werr != nil {
			return FileName
		}
		return filepath.Join(wd, FileName)
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}
