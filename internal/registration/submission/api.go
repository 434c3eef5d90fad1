package submission

import (
	"context"

	"tenantnotes/internal/registration/models"
)

// Registrar is the slice of the external API client used for registration.
type Registrar interface {
	RegisterTenant(ctx context.Context, registration any) error
}

// API forwards registrations to the external API server.
type API struct {
	client Registrar
}

func NewAPI(client Registrar) *API {
	return &API{client: client}
}

func (a *API) Submit(ctx context.Context, form models.RegistrationForm) error {
	return a.client.RegisterTenant(ctx, NewPayload(form))
}

// Payload is the wire shape of a registration. The confirmation field stays
// behind.
type Payload struct {
	OrganizationName string              `json:"organizationName"`
	Domain           string              `json:"domain"`
	Industry         string              `json:"industry"`
	CompanySize      string              `json:"companySize"`
	Description      string              `json:"description,omitempty"`
	Admin            PayloadAdmin        `json:"admin"`
	Subscription     PayloadSubscription `json:"subscription"`
	Compliance       PayloadCompliance   `json:"compliance"`
}

type PayloadAdmin struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type PayloadSubscription struct {
	Plan         models.PlanID       `json:"plan"`
	BillingCycle models.BillingCycle `json:"billingCycle"`
}

type PayloadCompliance struct {
	TermsOfService  bool `json:"termsOfService"`
	PrivacyPolicy   bool `json:"privacyPolicy"`
	GDPRCompliance  bool `json:"gdprCompliance"`
	DataProcessing  bool `json:"dataProcessing"`
	MarketingEmails bool `json:"marketingEmails"`
}

func NewPayload(f models.RegistrationForm) Payload {
	return Payload{
		OrganizationName: f.OrganizationName,
		Domain:           f.Domain,
		Industry:         f.Industry,
		CompanySize:      f.CompanySize,
		Description:      f.Description,
		Admin: PayloadAdmin{
			FirstName: f.FirstName,
			LastName:  f.LastName,
			Email:     f.Email,
			Password:  f.Password,
		},
		Subscription: PayloadSubscription{
			Plan:         f.SubscriptionPlan,
			BillingCycle: f.BillingCycle,
		},
		Compliance: PayloadCompliance{
			TermsOfService:  f.TermsOfService,
			PrivacyPolicy:   f.PrivacyPolicy,
			GDPRCompliance:  f.GDPRCompliance,
			DataProcessing:  f.DataProcessing,
			MarketingEmails: f.MarketingEmails,
		},
	}
}
