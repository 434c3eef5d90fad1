package wizard

import "tenantnotes/internal/registration/models"

// StepValidation holds the last reported validity of steps 1–4. Flags are
// never cleared by navigation, only by a new report.
type StepValidation struct {
	valid     map[models.Step]bool
	everValid map[models.Step]bool
}

func NewStepValidation() *StepValidation {
	return &StepValidation{
		valid:     make(map[models.Step]bool, 4),
		everValid: make(map[models.Step]bool, 4),
	}
}

// Report records the outcome of validating step.
func (v *StepValidation) Report(step models.Step, ok bool) {
	if !step.CollectsData() {
		return
	}
	v.valid[step] = ok
	if ok {
		v.everValid[step] = true
	}
}

// IsValid returns the last reported validity. The review step is always valid.
func (v *StepValidation) IsValid(step models.Step) bool {
	if step == models.StepReview {
		return true
	}
	return v.valid[step]
}

// EverValid reports whether step has validated at least once.
func (v *StepValidation) EverValid(step models.Step) bool {
	return v.everValid[step]
}

// AllEverValid reports whether each of steps 1–4 has validated at least once.
// Later edits that invalidate a step do not clear it.
func (v *StepValidation) AllEverValid() bool {
	for s := models.StepCompany; s <= models.StepCompliance; s++ {
		if !v.EverValid(s) {
			return false
		}
	}
	return true
}

// Flags returns a copy keyed by step number.
func (v *StepValidation) Flags() map[models.Step]bool {
	out := make(map[models.Step]bool, 4)
	for s := models.StepCompany; s <= models.StepCompliance; s++ {
		out[s] = v.valid[s]
	}
	return out
}
