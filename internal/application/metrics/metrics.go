package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for application and credential operations.
type Metrics struct {
	ApplicationsRegistered prometheus.Counter
	ApplicationsDeleted    *prometheus.CounterVec
	CredentialsAdded       *prometheus.CounterVec
	CredentialsDeleted     *prometheus.CounterVec
	UpstreamFailures       *prometheus.CounterVec
}

// New registers the collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ApplicationsRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "devportal_applications_registered_total",
			Help: "Total number of applications registered",
		}),
		ApplicationsDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_applications_deleted_total",
			Help: "Applications deleted, by mode (soft or hard)",
		}, []string{"mode"}),
		CredentialsAdded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_credentials_added_total",
			Help: "Credentials issued, by environment and kind (created or revealed)",
		}, []string{"environment", "kind"}),
		CredentialsDeleted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_credentials_deleted_total",
			Help: "Credentials deleted, by environment",
		}, []string{"environment"}),
		UpstreamFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "devportal_application_upstream_failures_total",
			Help: "Identity gateway or store failures, by operation",
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncRegistered() {
	if m == nil {
		return
	}
	m.ApplicationsRegistered.Inc()
}

func (m *Metrics) IncDeleted(mode string) {
	if m == nil {
		return
	}
	m.ApplicationsDeleted.WithLabelValues(mode).Inc()
}

func (m *Metrics) IncCredentialAdded(env, kind string) {
	if m == nil {
		return
	}
	m.CredentialsAdded.WithLabelValues(env, kind).Inc()
}

func (m *Metrics) IncCredentialDeleted(env string) {
	if m == nil {
		return
	}
	m.CredentialsDeleted.WithLabelValues(env).Inc()
}

func (m *Metrics) IncUpstreamFailure(op string) {
	if m == nil {
		return
	}
	m.UpstreamFailures.WithLabelValues(op).Inc()
}
