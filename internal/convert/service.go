// Package convert is the façade the presentation layer talks to. It owns
// prerequisite checks and hands the actual work to the pipeline.
package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"photoconv/internal/encoder"
	"photoconv/internal/pipeline"
	"photoconv/internal/settings"
)

// Service exposes single-file and batch conversion to external callers.
// It never renders UI and never blocks on user input; progress reaches the
// caller through the Progress callback between files.
type Service struct {
	registry *encoder.Registry
	logger   *slog.Logger
	progress pipeline.Progress
}

// New creates a conversion service. progress may be nil.
func New(registry *encoder.Registry, logger *slog.Logger, progress pipeline.Progress) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{registry: registry, logger: logger, progress: progress}
}

// resolveEncoder checks the codec prerequisite and resolves options.
func (s *Service) resolveEncoder(format string, enc settings.Encode) (encoder.Encoder, encoder.Options, error) {
	opts, err := encoder.BuildOptions(format, enc)
	if err != nil {
		return nil, encoder.Options{}, err
	}
	e := s.registry.Get(format)
	if e == nil {
		return nil, encoder.Options{}, fmt.Errorf("unknown format %q", format)
	}
	if !e.Available() {
		return nil, encoder.Options{}, fmt.Errorf("%w: %s", ErrCodecUnavailable, format)
	}
	return e, opts, nil
}

// ConvertOne converts a single source file and returns the output path.
// Prerequisites are verified before the filesystem is touched; the first
// error (decode, encode or write) is surfaced directly.
func (s *Service) ConvertOne(ctx context.Context, sourcePath, outputDir, format string, enc settings.Encode) (string, error) {
	if sourcePath == "" {
		return "", ErrNoSource
	}
	if outputDir == "" {
		return "", ErrNoOutputDir
	}
	e, opts, err := s.resolveEncoder(format, enc)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	runner := &pipeline.Runner{
		Encoder:  e,
		Options:  opts,
		Settings: enc,
		OutDir:   outputDir,
		Logger:   s.logger,
		Progress: s.progress,
	}
	fr := runner.ConvertFile(sourcePath)
	if fr.Err != nil {
		return "", fr.Err
	}
	s.logger.Info("converted", "source", sourcePath, "output", fr.Output, "bytes", fr.Size)
	return fr.Output, nil
}

// ConvertBatch enumerates folder and converts every eligible file. A folder
// with no eligible files is ErrNothingToConvert, distinct from both an
// unreadable folder and an all-failure batch.
func (s *Service) ConvertBatch(ctx context.Context, folder, outputDir, format string, enc settings.Encode) (pipeline.Result, error) {
	if folder == "" {
		return pipeline.Result{}, ErrNoBatchFolder
	}
	if outputDir == "" {
		return pipeline.Result{}, ErrNoOutputDir
	}
	e, opts, err := s.resolveEncoder(format, enc)
	if err != nil {
		return pipeline.Result{}, err
	}

	paths, err := pipeline.Enumerate(folder)
	if err != nil {
		return pipeline.Result{}, err
	}
	if len(paths) == 0 {
		return pipeline.Result{}, ErrNothingToConvert
	}

	logger := s.logger.With("run_id", uuid.NewString(), "format", format)
	logger.Info("batch started", "folder", folder, "files", len(paths))

	runner := &pipeline.Runner{
		Encoder:  e,
		Options:  opts,
		Settings: enc,
		OutDir:   outputDir,
		Logger:   logger,
		Progress: s.progress,
	}
	res := runner.Run(ctx, paths)

	logger.Info("batch finished", "successes", res.Successes, "failures", res.Failures)
	return res, nil
}
