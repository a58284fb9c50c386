package daemon

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/stylepub/internal/logfields"
)

// Watcher monitors the styleguide sources and coalesces rapid file changes
// into single triggers.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	trigger  chan struct{}
}

// NewWatcher creates a file watcher with the given debounce window.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Add registers a path for watching. Directories are watched recursively.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve watch path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("failed to stat watch path %s: %w", absPath, err)
	}
	if !info.IsDir() {
		// Watch the containing directory (more reliable than watching the file directly).
		return w.fsw.Add(filepath.Dir(absPath))
	}

	return filepath.WalkDir(absPath, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return w.fsw.Add(p)
		}
		return nil
	})
}

// Triggers returns the channel receiving debounced change notifications.
func (w *Watcher) Triggers() <-chan struct{} {
	return w.trigger
}

// Start begins processing file system events until ctx is canceled.
func (w *Watcher) Start(ctx context.Context) {
	go w.watchLoop(ctx)
}

func (w *Watcher) watchLoop(ctx context.Context) {
	var timer *time.Timer
	fire := func() {
		select {
		case w.trigger <- struct{}{}:
		default: // a trigger is already pending
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevantOp(event.Op) {
				continue
			}
			// Newly created directories must be added to the watch set.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if addErr := w.fsw.Add(event.Name); addErr != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(event.Name), logfields.Error(addErr))
					}
				}
			}
			slog.Debug("File change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

func relevantOp(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}

// Close stops the underlying file system watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
