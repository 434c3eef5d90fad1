package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration wizard.
type Metrics struct {
	WizardsStarted     prometheus.Counter
	WizardsExpired     prometheus.Counter
	StepTransitions    *prometheus.CounterVec
	DomainChecks       *prometheus.CounterVec
	Submissions        *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
}

// New registers the registration metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		WizardsStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "tenantnotes_registration_wizards_started_total",
			Help: "Total number of registration wizards started",
		}),
		WizardsExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "tenantnotes_registration_wizards_expired_total",
			Help: "Registration wizards torn down after idling past their TTL",
		}),
		StepTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantnotes_registration_step_transitions_total",
			Help: "Wizard navigation attempts by action, target step and outcome",
		}, []string{"action", "step", "outcome"}),
		DomainChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantnotes_registration_domain_checks_total",
			Help: "Completed domain availability checks by outcome",
		}, []string{"outcome"}),
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantnotes_registration_submissions_total",
			Help: "Registration submissions by outcome",
		}, []string{"outcome"}),
		SubmissionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tenantnotes_registration_submission_duration_seconds",
			Help:    "Duration of registration hand-offs to the submission collaborator",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) IncrementWizardsStarted() {
	m.WizardsStarted.Inc()
}

func (m *Metrics) IncrementWizardsExpired() {
	m.WizardsExpired.Inc()
}

// IncrementStepTransition records a navigation attempt. outcome is "moved" or "blocked".
func (m *Metrics) IncrementStepTransition(action, step, outcome string) {
	m.StepTransitions.WithLabelValues(action, step, outcome).Inc()
}

// IncrementDomainCheck satisfies domaincheck.Metrics.
func (m *Metrics) IncrementDomainCheck(outcome string) {
	m.DomainChecks.WithLabelValues(outcome).Inc()
}

// ObserveSubmission records one submission. Call with time.Now() at the start.
func (m *Metrics) ObserveSubmission(outcome string, start time.Time) {
	m.Submissions.WithLabelValues(outcome).Inc()
	m.SubmissionDuration.Observe(time.Since(start).Seconds())
}
