package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopRecorder_NilSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStepDuration("docs", time.Second)
	r.IncStepResult("docs", ResultSuccess)
	r.IncRunOutcome("success")
}

func TestPrometheusRecorder_NilReceiverSafe(t *testing.T) {
	var p *PrometheusRecorder
	p.ObserveStepDuration("docs", time.Second)
	p.IncStepResult("docs", ResultFailure)
	p.IncRunOutcome("failed")
}

func TestPrometheusRecorder_Counters(t *testing.T) {
	reg := prom.NewRegistry()
	p := NewPrometheusRecorder(reg)

	p.IncStepResult("docs", ResultSuccess)
	p.IncStepResult("docs", ResultSuccess)
	p.IncStepResult("demo", ResultFailure)
	p.IncRunOutcome("success")
	p.ObserveStepDuration("docs", 100*time.Millisecond)

	if got := testutil.ToFloat64(p.stepResults.WithLabelValues("docs", "success")); got != 2 {
		t.Errorf("docs success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(p.stepResults.WithLabelValues("demo", "failure")); got != 1 {
		t.Errorf("demo failure count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.runOutcome.WithLabelValues("success")); got != 1 {
		t.Errorf("run outcome count = %v, want 1", got)
	}
}
