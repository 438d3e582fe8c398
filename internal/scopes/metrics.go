package scopes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Runs          *prometheus.CounterVec
	ScopesAdded   *prometheus.CounterVec
	ScopesRemoved *prometheus.CounterVec
	RunDuration   *prometheus.HistogramVec
}

// NewMetrics registers the reconciler collectors on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_scope_runs_total",
			Help: "Scope fix and minimise runs by kind and outcome",
		}, []string{"kind", "outcome"}),
		ScopesAdded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_scopes_added_total",
			Help: "Scopes attached to remote clients by the fixer",
		}, []string{"environment"}),
		ScopesRemoved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_scopes_removed_total",
			Help: "Scopes detached from remote clients by the minimiser",
		}, []string{"environment"}),
		RunDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "devportal_scope_run_duration_seconds",
			Help:    "Duration of scope fix and minimise runs",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func (m *Metrics) observe(kind string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(kind, outcome(err)).Inc()
	m.RunDuration.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) added(env string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ScopesAdded.WithLabelValues(env).Add(float64(n))
}

func (m *Metrics) removed(env string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ScopesRemoved.WithLabelValues(env).Add(float64(n))
}
