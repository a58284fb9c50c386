// Package publisher implements the two-step styleguide publish sequence:
// the documentation directory first, then — only on success — the README,
// merged into the already-published content.
package publisher

import (
	"context"
	"fmt"
)

// Request describes one publish operation handed to a Publisher.
type Request struct {
	SourceDir string   // directory the patterns are resolved against
	Patterns  []string // ordered include patterns (see internal/fileset)
	Message   string   // commit message on the hosting branch
	Append    bool     // merge with existing published content instead of replacing it
}

// Publisher is the narrow contract for the "publish directory to hosting
// branch" capability. Implementations report success or failure through the
// returned error; the sequencer never inspects anything beyond that.
type Publisher interface {
	Publish(ctx context.Context, req Request) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, req Request) error

func (f PublisherFunc) Publish(ctx context.Context, req Request) error { return f(ctx, req) }

// Step names used in logs, metrics, and the history journal.
const (
	StepDocs = "docs"
	StepDemo = "demo"
)

// StepError reports which publish step failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("publish step %s failed: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }
