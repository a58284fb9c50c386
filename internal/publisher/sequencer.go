package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/stylepub/internal/history"
	"git.home.luguber.info/inful/stylepub/internal/logfields"
	"git.home.luguber.info/inful/stylepub/internal/metrics"
)

// Fixed per-step log messages. Exactly one of these is emitted per step outcome.
const (
	msgDocsPublished = "Documentation published"
	msgDocsFailed    = "Documentation publish failed"
	msgDemoPublished = "Demo published"
	msgDemoFailed    = "Demo publish failed"
)

// Journal receives step outcomes for the publish history. A nil Journal
// disables recording.
type Journal interface {
	RecordStep(ctx context.Context, runID, step string, result history.Result, message string) error
}

// Sequencer performs the two publish operations in strict order. The demo
// step runs exactly once and only when the docs step succeeded. There are no
// retries and no rollback: a failure is logged and stops the run.
type Sequencer struct {
	pub      Publisher
	docs     Request
	demo     Request
	logger   *slog.Logger
	recorder metrics.Recorder
	journal  Journal
	newRunID func() string
}

// NewSequencer creates a sequencer for the given publisher and step requests.
func NewSequencer(pub Publisher, docs, demo Request) *Sequencer {
	return &Sequencer{
		pub:      pub,
		docs:     docs,
		demo:     demo,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		newRunID: uuid.NewString,
	}
}

// WithLogger attaches a logger (fluent helper).
func (s *Sequencer) WithLogger(l *slog.Logger) *Sequencer { s.logger = l; return s }

// WithRecorder attaches a metrics recorder (fluent helper).
func (s *Sequencer) WithRecorder(r metrics.Recorder) *Sequencer { s.recorder = r; return s }

// WithJournal attaches a history journal (fluent helper).
func (s *Sequencer) WithJournal(j Journal) *Sequencer { s.journal = j; return s }

// Run executes the publish sequence and returns the first step failure, if any.
func (s *Sequencer) Run(ctx context.Context) error {
	runID := s.newRunID()

	if err := s.runStep(ctx, runID, StepDocs, s.docs, msgDocsPublished, msgDocsFailed); err != nil {
		s.recorder.IncRunOutcome("failed")
		return err
	}

	if err := s.runStep(ctx, runID, StepDemo, s.demo, msgDemoPublished, msgDemoFailed); err != nil {
		s.recorder.IncRunOutcome("failed")
		return err
	}

	s.recorder.IncRunOutcome("success")
	return nil
}

func (s *Sequencer) runStep(ctx context.Context, runID, step string, req Request, okMsg, failMsg string) error {
	start := time.Now()
	err := s.pub.Publish(ctx, req)
	s.recorder.ObserveStepDuration(step, time.Since(start))

	if err != nil {
		s.logger.Error(failMsg,
			logfields.RunID(runID),
			logfields.Step(step),
			logfields.Error(err))
		s.recorder.IncStepResult(step, metrics.ResultFailure)
		s.record(ctx, runID, step, history.ResultFailure, err.Error())
		return &StepError{Step: step, Err: err}
	}

	s.logger.Info(okMsg,
		logfields.RunID(runID),
		logfields.Step(step))
	s.recorder.IncStepResult(step, metrics.ResultSuccess)
	s.record(ctx, runID, step, history.ResultSuccess, okMsg)
	return nil
}

// record writes a journal entry. Journal failures must not affect the run.
func (s *Sequencer) record(ctx context.Context, runID, step string, result history.Result, message string) {
	if s.journal == nil {
		return
	}
	if err := s.journal.RecordStep(ctx, runID, step, result, message); err != nil {
		s.logger.Warn("Failed to record publish history", logfields.RunID(runID), logfields.Error(err))
	}
}
