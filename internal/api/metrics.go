package api

import "github.com/prometheus/client_golang/prometheus"

// Submission outcomes recorded per request.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRejected    = "rejected"
	OutcomeRelayError  = "relay_error"
	OutcomeConfigError = "config_error"
)

// Metrics counts contact submissions by outcome.
type Metrics struct {
	submissions *prometheus.CounterVec
}

// NewMetrics builds and registers the submission counters. Pass nil to
// register on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadengine_submissions_total",
			Help: "Contact form submissions processed, labeled by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.submissions)
	return m
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
