package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_RequiresCycle(t *testing.T) {
	if _, err := New(Options{DocsDir: t.TempDir()}, nil); err == nil {
		t.Fatal("expected error for nil cycle")
	}
}

func TestDaemon_RunsStartupAndWatchCycles(t *testing.T) {
	docsDir := t.TempDir()
	var cycles atomic.Int32

	d, err := New(Options{
		DocsDir:  docsDir,
		Debounce: 50 * time.Millisecond,
	}, func(ctx context.Context) error {
		cycles.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	// Startup cycle.
	waitFor(t, func() bool { return cycles.Load() >= 1 })

	// Watch-triggered cycle.
	if err := os.WriteFile(filepath.Join(docsDir, "index.html"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, func() bool { return cycles.Load() >= 2 })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
}

func TestDaemon_CycleFailureKeepsRunning(t *testing.T) {
	docsDir := t.TempDir()
	var cycles atomic.Int32

	d, err := New(Options{
		DocsDir:  docsDir,
		Debounce: 50 * time.Millisecond,
	}, func(ctx context.Context) error {
		cycles.Add(1)
		return errors.New("publish failed")
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	waitFor(t, func() bool { return cycles.Load() >= 1 })

	// Despite the failure, a file change still triggers another cycle.
	if err := os.WriteFile(filepath.Join(docsDir, "styles.css"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitFor(t, func() bool { return cycles.Load() >= 2 })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}
