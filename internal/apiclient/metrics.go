package apiclient

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks calls to the external API.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	BreakerOpen     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tenantnotes_api_request_duration_seconds",
			Help:    "Latency of external API calls by operation and outcome",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation", "outcome"}),
		BreakerOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "tenantnotes_api_circuit_open",
			Help: "1 while the external API circuit breaker is open",
		}),
	}
}

func (m *Metrics) observe(operation, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(operation, outcome).Observe(seconds)
}

func (m *Metrics) setBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerOpen.Set(1)
		return
	}
	m.BreakerOpen.Set(0)
}
