package notes

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Operations   *prometheus.CounterVec
	LimitReached prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantnotes_note_operations_total",
			Help: "Note operations by kind and outcome",
		}, []string{"operation", "outcome"}),
		LimitReached: f.NewCounter(prometheus.CounterOpts{
			Name: "tenantnotes_note_limit_reached_total",
			Help: "Note creations refused because the plan limit was reached",
		}),
	}
}

func (m *Metrics) IncrementOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) IncrementLimitReached() {
	if m == nil {
		return
	}
	m.LimitReached.Inc()
}
