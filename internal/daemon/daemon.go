// Package daemon runs stylepub in continuous mode: file changes and an
// optional schedule trigger verify-and-publish cycles, while the preview
// server exposes the docs, health, and metrics endpoints.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/stylepub/internal/logfields"
	"git.home.luguber.info/inful/stylepub/internal/server"
)

// CycleFunc performs one publish cycle.
type CycleFunc func(ctx context.Context) error

// Options configures the daemon.
type Options struct {
	DocsDir    string
	ReadmePath string
	Debounce   time.Duration
	Interval   time.Duration  // zero disables the periodic schedule
	Server     *server.Server // optional preview/metrics server
}

// Daemon coordinates the watcher, the scheduler, and publish cycles.
// Cycles are serialized: a trigger arriving while a cycle runs is coalesced
// into the next one.
type Daemon struct {
	opts      Options
	cycle     CycleFunc
	watcher   *Watcher
	scheduler *Scheduler

	mu sync.Mutex // guards cycle execution
}

// New creates a daemon running the given publish cycle.
func New(opts Options, cycle CycleFunc) (*Daemon, error) {
	if cycle == nil {
		return nil, fmt.Errorf("publish cycle is required")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}

	watcher, err := NewWatcher(opts.Debounce)
	if err != nil {
		return nil, err
	}

	d := &Daemon{opts: opts, cycle: cycle, watcher: watcher}

	if opts.Interval > 0 {
		d.scheduler, err = NewScheduler()
		if err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}

	return d, nil
}

// Start runs the daemon until ctx is canceled.
func (d *Daemon) Start(ctx context.Context) error {
	if err := d.watcher.Add(d.opts.DocsDir); err != nil {
		return err
	}
	if d.opts.ReadmePath != "" {
		if err := d.watcher.Add(d.opts.ReadmePath); err != nil {
			return err
		}
	}
	d.watcher.Start(ctx)

	if d.scheduler != nil {
		jobID, err := d.scheduler.SchedulePeriodicPublish(d.opts.Interval, func() {
			d.runCycle(ctx, "schedule")
		})
		if err != nil {
			return err
		}
		d.scheduler.Start()
		slog.Info("Periodic publish scheduled",
			slog.String("job_id", jobID),
			slog.Duration("interval", d.opts.Interval))
	}

	errChan := make(chan error, 1)
	if d.opts.Server != nil {
		go func() {
			errChan <- d.opts.Server.Start(ctx)
		}()
	}

	// Publish once at startup so the hosting branch reflects the current tree.
	d.runCycle(ctx, "startup")

	slog.Info("Daemon started, watching for changes", logfields.Path(d.opts.DocsDir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("preview server failed: %w", err)
			}
		case <-d.watcher.Triggers():
			d.runCycle(ctx, "watch")
		}
	}
}

func (d *Daemon) runCycle(ctx context.Context, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	slog.Info("Starting publish cycle", slog.String("reason", reason))
	if err := d.cycle(ctx); err != nil {
		// The cycle already logged the step failure; the daemon keeps running.
		slog.Warn("Publish cycle failed", slog.String("reason", reason), logfields.Error(err))
	}
}

// Stop shuts the daemon down gracefully.
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")

	var firstErr error
	if err := d.watcher.Close(); err != nil {
		firstErr = err
	}
	if d.scheduler != nil {
		if err := d.scheduler.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
