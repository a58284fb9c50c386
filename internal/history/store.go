// Package history persists a journal of publish runs and their step outcomes.
package history

import (
	"context"
	"time"
)

// Result enumerates step outcomes.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Entry is one recorded step outcome.
type Entry struct {
	ID        int64
	RunID     string
	Step      string
	Result    Result
	Message   string
	CreatedAt time.Time
}

// Store defines the interface for persisting and retrieving publish history.
type Store interface {
	// RecordStep appends a step outcome for the given run.
	RecordStep(ctx context.Context, runID, step string, result Result, message string) error

	// Recent retrieves the most recent entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// ByRunID retrieves all entries for a specific run in insertion order.
	ByRunID(ctx context.Context, runID string) ([]Entry, error)

	// Close closes the store and releases resources.
	Close() error
}
