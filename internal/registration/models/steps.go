package models

// Step identifies a wizard step. Steps 1–4 collect data; step 5 is the review.
type Step int

const (
	StepCompany Step = iota + 1
	StepAdmin
	StepSubscription
	StepCompliance
	StepReview
)

const (
	FirstStep = StepCompany
	LastStep  = StepReview
)

// IsValid reports whether s is one of the five wizard steps.
func (s Step) IsValid() bool {
	return s >= FirstStep && s <= LastStep
}

// CollectsData reports whether s owns form fields (steps 1–4).
func (s Step) CollectsData() bool {
	return s >= StepCompany && s <= StepCompliance
}

// StepInfo describes a step for the progress indicator.
type StepInfo struct {
	ID          Step   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Steps is the fixed wizard layout.
var Steps = []StepInfo{
	{ID: StepCompany, Title: "Company", Description: "Enter your organization details"},
	{ID: StepAdmin, Title: "Admin", Description: "Create administrator account"},
	{ID: StepSubscription, Title: "Plan", Description: "Choose your subscription plan"},
	{ID: StepCompliance, Title: "Legal", Description: "Accept terms and compliance"},
	{ID: StepReview, Title: "Review", Description: "Review and confirm registration"},
}
