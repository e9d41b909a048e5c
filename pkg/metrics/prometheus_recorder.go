package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric when no namespace is given.
const DefaultNamespace = "buildkit"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration *prom.HistogramVec
	stepDuration  *prom.HistogramVec
	buildOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs the build metrics and registers them with reg.
// A nil registerer uses a fresh private registry; an empty namespace uses DefaultNamespace.
// Registering twice on the same registerer returns the registration error.
func NewPrometheusRecorder(reg prom.Registerer, namespace string) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	pr := &PrometheusRecorder{
		buildDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of complete builds, seed and all modification steps",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		stepDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of individual modification steps",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by mode and final status",
		}, []string{"mode", "outcome"}),
	}

	for _, c := range []prom.Collector{pr.buildDuration, pr.stepDuration, pr.buildOutcome} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return pr, nil
}

func (p *PrometheusRecorder) ObserveBuildDuration(mode Mode, d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStepDuration(mode Mode, d time.Duration) {
	if p == nil {
		return
	}
	p.stepDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(mode Mode, outcome Outcome) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(mode), string(outcome)).Inc()
}
