// Package watch reports changes to a single file using fsnotify.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the bursts of events an atomic rename produces.
const DefaultDebounce = 150 * time.Millisecond

// Config holds configuration for a FileWatcher.
type Config struct {
	// Path is the file to watch. Its parent directory is watched so that
	// the file may be created, replaced or removed while watching.
	Path     string
	Debounce time.Duration
	Logger   *slog.Logger
}

// FileWatcher calls a handler after the watched file changes.
type FileWatcher struct {
	path     string
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a FileWatcher. Call Run to start it.
func New(cfg Config) (*FileWatcher, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &FileWatcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: debounce,
		logger:   logger,
		watcher:  watcher,
	}, nil
}

// Run watches until ctx is cancelled, calling onChange once per burst of
// events touching the file. onChange runs on a timer goroutine, never
// concurrently with itself.
func (w *FileWatcher) Run(ctx context.Context, onChange func()) error {
	defer w.stop()

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Debug("watching", "path", w.path)

	var running sync.Mutex
	fire := func() {
		running.Lock()
		defer running.Unlock()
		if ctx.Err() == nil {
			onChange()
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.Matches(event) {
				continue
			}
			w.logger.Debug("file event", "op", event.Op.String(), "path", event.Name)
			w.schedule(fire)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// Matches reports whether event concerns the watched file.
func (w *FileWatcher) Matches(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *FileWatcher) schedule(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, fn)
}

func (w *FileWatcher) stop() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}
