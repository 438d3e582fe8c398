package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the access request lifecycle.
type Metrics struct {
	Submitted   *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	FixFailures *prometheus.CounterVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_access_requests_submitted_total",
			Help: "Access requests submitted, by environment",
		}, []string{"environment"}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_access_request_transitions_total",
			Help: "Access requests leaving Pending, by target status",
		}, []string{"status"}),
		FixFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_access_request_fix_failures_total",
			Help: "Approvals whose scope reconciliation failed, by environment",
		}, []string{"environment"}),
	}
}

func (m *Metrics) IncSubmitted(env string, n int) {
	if m == nil {
		return
	}
	m.Submitted.WithLabelValues(env).Add(float64(n))
}

func (m *Metrics) IncTransition(status string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncFixFailure(env string) {
	if m == nil {
		return
	}
	m.FixFailures.WithLabelValues(env).Inc()
}
