package handler

import "tenantnotes/internal/registration/wizard"

type WizardResponse struct {
	Wizard wizard.View `json:"wizard"`
}

// NavigationResponse reports whether a next/previous request changed step.
// A blocked next still returns 200 with the step's errors made visible.
type NavigationResponse struct {
	Moved  bool        `json:"moved"`
	Wizard wizard.View `json:"wizard"`
}

type SubmitResponse struct {
	RedirectTo string       `json:"redirect_to"`
	Flash      wizard.Flash `json:"flash"`
}

// SubmitFailedResponse carries the error envelope plus the wizard, which
// stays on the review step with its submit error.
type SubmitFailedResponse struct {
	Error            string      `json:"error"`
	ErrorDescription string      `json:"error_description"`
	Wizard           wizard.View `json:"wizard"`
}
