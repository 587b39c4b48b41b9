// Package report renders a batch run as a JSON document, for callers that
// want a machine-readable record of what was converted.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"photoconv/internal/pipeline"
)

// Report is the top-level document of one batch run.
type Report struct {
	Version     int         `json:"version"`
	GeneratedAt string      `json:"generated_at"`
	Format      string      `json:"format"`
	OutputDir   string      `json:"output_dir"`
	Files       []FileEntry `json:"files"`
	Totals      Totals      `json:"totals"`
}

// FileEntry records one source file's outcome. Exactly one of Output or
// Error is set.
type FileEntry struct {
	Source string `json:"source"`
	Output string `json:"output,omitempty"`
	Size   int64  `json:"size,omitempty"`
	Hash   string `json:"hash,omitempty"` // xxhash64 hex of the encoded output
	Error  string `json:"error,omitempty"`
}

// Totals aggregates the run.
type Totals struct {
	Succeeded   int   `json:"succeeded"`
	Failed      int   `json:"failed"`
	OutputBytes int64 `json:"output_bytes"`
}

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1

// FromResult builds a report from a batch tally, preserving file order.
func FromResult(format, outputDir string, res pipeline.Result) *Report {
	r := &Report{
		Version:     SupportedReportVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Format:      format,
		OutputDir:   outputDir,
		Files:       make([]FileEntry, 0, len(res.Files)),
	}
	for _, f := range res.Files {
		entry := FileEntry{Source: f.Source}
		if f.Err != nil {
			entry.Error = f.Err.Error()
			r.Totals.Failed++
		} else {
			entry.Output = f.Output
			entry.Size = f.Size
			entry.Hash = f.Hash
			r.Totals.Succeeded++
			r.Totals.OutputBytes += f.Size
		}
		r.Files = append(r.Files, entry)
	}
	return r
}

// WriteJSON serializes the report to a pretty-printed JSON file.
func WriteJSON(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
