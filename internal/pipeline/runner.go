package pipeline

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"

	"photoconv/internal/encoder"
	"photoconv/internal/hasher"
	"photoconv/internal/imageproc"
	"photoconv/internal/settings"
)

// FileResult records the outcome of one file's conversion.
type FileResult struct {
	Source string
	Output string // set on success
	Size   int64  // encoded bytes on disk
	Hash   string // xxhash64 of the encoded output
	Err    error  // set on failure
}

// FileError is one (path, message) entry of a batch tally.
type FileError struct {
	Path    string
	Message string
}

// Result is the tally of a batch run.
type Result struct {
	Files     []FileResult
	Successes int
	Failures  int
}

// PerFileErrors returns the failed files in processing order.
func (r Result) PerFileErrors() []FileError {
	var errs []FileError
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, FileError{Path: f.Source, Message: f.Err.Error()})
		}
	}
	return errs
}

// Progress is invoked after each processed file so the caller can render
// status between files.
type Progress func(current, total int, message string)

// Runner drives one encoder over a sequence of source files, strictly
// sequentially, isolating per-file failures.
type Runner struct {
	Encoder  encoder.Encoder
	Options  encoder.Options
	Settings settings.Encode
	OutDir   string
	Logger   *slog.Logger
	Progress Progress
}

// Run converts each path in order. One bad file never aborts the batch;
// its error lands in the result and the loop moves on. Cancelling ctx
// stops between files, finalizing the tally with the work done so far.
func (r *Runner) Run(ctx context.Context, paths []string) Result {
	res := Result{Files: make([]FileResult, 0, len(paths))}
	total := len(paths)

	for i, src := range paths {
		if ctx.Err() != nil {
			r.Logger.Info("batch cancelled", "processed", i, "total", total)
			break
		}

		fr := r.ConvertFile(src)
		res.Files = append(res.Files, fr)
		if fr.Err != nil {
			res.Failures++
			r.Logger.Warn("conversion failed", "source", src, "error", fr.Err)
			r.emit(i+1, total, fmt.Sprintf("failed %s: %v", filepath.Base(src), fr.Err))
			continue
		}
		res.Successes++
		r.emit(i+1, total, fmt.Sprintf("converted %s", filepath.Base(fr.Output)))
	}
	return res
}

// ConvertFile decodes, resizes, encodes and writes a single source file.
// The decoded image handle is scoped to this call — it is released before
// the next file opens.
func (r *Runner) ConvertFile(src string) FileResult {
	fr := FileResult{Source: src}

	img, err := decodeImage(src)
	if err != nil {
		fr.Err = err
		return fr
	}

	processed, err := imageproc.Apply(img, r.Settings)
	if err != nil {
		// Resize degrades to the unresized image, it never fails the file.
		r.Logger.Warn("resize failed, using original size", "source", src, "error", err)
	}

	data, err := r.Encoder.Encode(processed, r.Options)
	if err != nil {
		fr.Err = fmt.Errorf("encode %s: %w", filepath.Base(src), err)
		return fr
	}

	out := OutputPath(src, r.OutDir, "."+r.Encoder.Extension())
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fr.Err = fmt.Errorf("write %s: %w", out, err)
		return fr
	}

	fr.Output = out
	fr.Size = int64(len(data))
	fr.Hash = hasher.ContentHash(data, 16)
	return fr
}

func (r *Runner) emit(current, total int, message string) {
	if r.Progress != nil {
		r.Progress(current, total, message)
	}
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
