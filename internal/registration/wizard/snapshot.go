package wizard

import (
	"fmt"
	"strconv"
	"time"

	"tenantnotes/internal/registration/models"
)

// StepView is one entry of the progress indicator.
type StepView struct {
	models.StepInfo
	Completed bool `json:"completed"`
	Current   bool `json:"current"`
}

// Catalogs are the choices offered on the current step.
type Catalogs struct {
	Industries   []models.Option `json:"industries,omitempty"`
	CompanySizes []models.Option `json:"company_sizes,omitempty"`
	Plans        []models.Plan   `json:"plans,omitempty"`
}

// View is the read-only view model of a wizard. Passwords are never echoed.
type View struct {
	ID               string                   `json:"id"`
	CurrentStep      models.Step              `json:"current_step"`
	Steps            []StepView               `json:"steps"`
	StepValidation   map[models.Step]bool     `json:"step_validation"`
	CanProceed       bool                     `json:"can_proceed"`
	Form             models.RegistrationForm  `json:"form"`
	Errors           models.FieldErrors       `json:"errors,omitempty"`
	DomainCheck      *models.DomainState      `json:"domain_check,omitempty"`
	PasswordStrength *models.PasswordStrength `json:"password_strength,omitempty"`
	Catalogs         *Catalogs                `json:"catalogs,omitempty"`
	Summary          *Summary                 `json:"summary,omitempty"`
	Submitting       bool                     `json:"submitting"`
	SubmitError      string                   `json:"submit_error,omitempty"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// Summary is the review step content, derived from the form on every read.
type Summary struct {
	Company    CompanySummary    `json:"company"`
	Admin      AdminSummary      `json:"admin"`
	Plan       PlanSummary       `json:"plan"`
	Compliance ComplianceSummary `json:"compliance"`
}

type CompanySummary struct {
	OrganizationName string `json:"organization_name"`
	Domain           string `json:"domain"`
	Industry         string `json:"industry"`
	CompanySize      string `json:"company_size"`
	Description      string `json:"description,omitempty"`
}

type AdminSummary struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type PlanSummary struct {
	ID           models.PlanID       `json:"id"`
	Name         string              `json:"name"`
	BillingCycle models.BillingCycle `json:"billing_cycle"`
	Price        int                 `json:"price"`
	PriceLabel   string              `json:"price_label"`
	Users        string              `json:"users"`
	Notes        string              `json:"notes"`
	Storage      string              `json:"storage"`
}

type ComplianceSummary struct {
	TermsOfService  bool `json:"terms_of_service"`
	PrivacyPolicy   bool `json:"privacy_policy"`
	GDPRCompliance  bool `json:"gdpr_compliance"`
	DataProcessing  bool `json:"data_processing"`
	MarketingEmails bool `json:"marketing_emails"`
}

// Snapshot renders the current state.
func (w *Wizard) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()

	form := w.form
	form.Password = ""
	form.ConfirmPassword = ""

	v := View{
		ID:             w.id,
		CurrentStep:    w.current,
		Steps:          stepViews(w.current),
		StepValidation: w.flags.Flags(),
		CanProceed:     w.current != models.StepReview && w.flags.IsValid(w.current),
		Form:           form,
		Submitting:     w.submitting,
		SubmitError:    w.submitError,
		UpdatedAt:      w.updatedAt,
	}
	if w.showErrors && len(w.errors) > 0 {
		v.Errors = w.errors
	}

	switch w.current {
	case models.StepCompany:
		state := w.checker.State()
		v.DomainCheck = &state
		v.Catalogs = &Catalogs{Industries: models.Industries, CompanySizes: models.CompanySizes}
	case models.StepAdmin:
		strength := models.EvaluatePassword(w.form.Password)
		v.PasswordStrength = &strength
		if w.form.ConfirmPassword != "" && w.form.ConfirmPassword != w.form.Password {
			if v.Errors == nil {
				v.Errors = models.FieldErrors{}
			}
			v.Errors[models.FieldConfirmPassword] = "Passwords do not match"
		}
	case models.StepSubscription:
		v.Catalogs = &Catalogs{Plans: models.Plans}
	case models.StepReview:
		s := BuildSummary(w.form)
		v.Summary = &s
	}
	return v
}

func stepViews(current models.Step) []StepView {
	out := make([]StepView, len(models.Steps))
	for i, info := range models.Steps {
		out[i] = StepView{
			StepInfo:  info,
			Completed: info.ID < current,
			Current:   info.ID == current,
		}
	}
	return out
}

// BuildSummary derives the review content from form. An unknown plan falls
// back to starter.
func BuildSummary(form models.RegistrationForm) Summary {
	plan, ok := models.FindPlan(form.SubscriptionPlan)
	if !ok {
		plan, _ = models.FindPlan(models.PlanStarter)
	}
	price := plan.PriceFor(form.BillingCycle)
	period := "month"
	if form.BillingCycle == models.BillingYearly {
		period = "year"
	}

	return Summary{
		Company: CompanySummary{
			OrganizationName: form.OrganizationName,
			Domain:           form.Domain,
			Industry:         optionLabel(models.Industries, form.Industry),
			CompanySize:      optionLabel(models.CompanySizes, form.CompanySize),
			Description:      form.Description,
		},
		Admin: AdminSummary{
			FullName: form.FirstName + " " + form.LastName,
			Email:    form.Email,
		},
		Plan: PlanSummary{
			ID:           plan.ID,
			Name:         plan.Name,
			BillingCycle: form.BillingCycle,
			Price:        price,
			PriceLabel:   fmt.Sprintf("$%d/%s", price, period),
			Users:        limitLabel(plan.MaxUsers),
			Notes:        limitLabel(plan.MaxNotes),
			Storage:      plan.Storage,
		},
		Compliance: ComplianceSummary{
			TermsOfService:  form.TermsOfService,
			PrivacyPolicy:   form.PrivacyPolicy,
			GDPRCompliance:  form.GDPRCompliance,
			DataProcessing:  form.DataProcessing,
			MarketingEmails: form.MarketingEmails,
		},
	}
}

func optionLabel(options []models.Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func limitLabel(n int) string {
	if n == models.Unlimited {
		return "Unlimited"
	}
	return strconv.Itoa(n)
}
