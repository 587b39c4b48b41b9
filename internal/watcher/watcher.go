// Package watcher converts images as they are dropped into a folder.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"photoconv/internal/pipeline"
)

// Handler is called with the path of a newly settled image file.
type Handler func(path string)

// Watcher observes one flat folder for new convertible files. Files are
// handed to the handler after a stability delay, so partially written
// drops are not picked up mid-copy.
type Watcher struct {
	w       *fsnotify.Watcher
	dir     string
	delay   time.Duration
	handler Handler
	logger  *slog.Logger
}

// New creates a watcher for dir. delay <= 0 uses 2 seconds.
func New(dir string, delay time.Duration, handler Handler, logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	if delay <= 0 {
		delay = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{w: w, dir: dir, delay: delay, handler: handler, logger: logger}, nil
}

// Start runs the event loop until ctx is cancelled.
func (wr *Watcher) Start(ctx context.Context) error {
	wr.logger.Info("watching folder", "dir", wr.dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-wr.w.Events:
			if !ok {
				return nil
			}
			wr.handleEvent(ctx, ev)
		case err, ok := <-wr.w.Errors:
			if !ok {
				return nil
			}
			wr.logger.Warn("watcher error", "error", err)
		}
	}
}

func (wr *Watcher) Close() error { return wr.w.Close() }

func (wr *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !pipeline.IsSourceFile(ev.Name) {
		return
	}
	// Let the file settle before converting it.
	go func(path string) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wr.delay):
		}
		fi, err := os.Stat(path)
		if err != nil || fi.IsDir() {
			return
		}
		wr.handler(path)
	}(ev.Name)
}
