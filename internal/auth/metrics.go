package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts login attempts by outcome: success, rejected, locked, error.
type Metrics struct {
	LoginAttempts *prometheus.CounterVec
	Logouts       prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoginAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantnotes_login_attempts_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Logouts: f.NewCounter(prometheus.CounterOpts{
			Name: "tenantnotes_logouts_total",
			Help: "Total number of logouts",
		}),
	}
}

func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.LoginAttempts.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementLogout() {
	if m != nil {
		m.Logouts.Inc()
	}
}
