package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once         sync.Once
	stepDuration *prom.HistogramVec
	stepResults  *prom.CounterVec
	runOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stepDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "stylepub",
			Name:      "publish_step_duration_seconds",
			Help:      "Duration of individual publish steps",
			Buckets:   prom.DefBuckets,
		}, []string{"step"})
		pr.stepResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "stylepub",
			Name:      "publish_step_results_total",
			Help:      "Publish step result counts by outcome",
		}, []string{"step", "result"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "stylepub",
			Name:      "publish_run_outcomes_total",
			Help:      "Publish run outcomes by final status",
		}, []string{"outcome"})
		reg.MustRegister(pr.stepDuration, pr.stepResults, pr.runOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStepDuration(step string, d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStepResult(step string, result ResultLabel) {
	if p == nil || p.stepResults == nil {
		return
	}
	p.stepResults.WithLabelValues(step, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(outcome).Inc()
}
