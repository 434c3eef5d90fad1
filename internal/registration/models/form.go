package models

import "strings"

// RegistrationForm is the aggregate record collected by the registration wizard.
// It is owned by the wizard controller; step validators only read it.
type RegistrationForm struct {
	// Company information
	OrganizationName string `json:"organizationName"`
	Domain           string `json:"domain"`
	Industry         string `json:"industry"`
	CompanySize      string `json:"companySize"`
	Description      string `json:"description"`

	// Admin account
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`

	// Subscription
	SubscriptionPlan PlanID       `json:"subscriptionPlan"`
	BillingCycle     BillingCycle `json:"billingCycle"`

	// Compliance
	TermsOfService  bool `json:"termsOfService"`
	PrivacyPolicy   bool `json:"privacyPolicy"`
	GDPRCompliance  bool `json:"gdprCompliance"`
	DataProcessing  bool `json:"dataProcessing"`
	MarketingEmails bool `json:"marketingEmails"`
}

// NewRegistrationForm returns the empty form a wizard starts with.
func NewRegistrationForm() RegistrationForm {
	return RegistrationForm{BillingCycle: BillingMonthly}
}

// FormPatch is a set of field mutations. Nil fields are left untouched.
type FormPatch struct {
	OrganizationName *string `json:"organizationName,omitempty"`
	Domain           *string `json:"domain,omitempty"`
	Industry         *string `json:"industry,omitempty"`
	CompanySize      *string `json:"companySize,omitempty"`
	Description      *string `json:"description,omitempty"`

	FirstName       *string `json:"firstName,omitempty"`
	LastName        *string `json:"lastName,omitempty"`
	Email           *string `json:"email,omitempty"`
	Password        *string `json:"password,omitempty"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`

	SubscriptionPlan *string `json:"subscriptionPlan,omitempty"`
	BillingCycle     *string `json:"billingCycle,omitempty"`

	TermsOfService  *bool `json:"termsOfService,omitempty"`
	PrivacyPolicy   *bool `json:"privacyPolicy,omitempty"`
	GDPRCompliance  *bool `json:"gdprCompliance,omitempty"`
	DataProcessing  *bool `json:"dataProcessing,omitempty"`
	MarketingEmails *bool `json:"marketingEmails,omitempty"`
}

// Field names, shared by patches, validators and error maps.
const (
	FieldOrganizationName = "organizationName"
	FieldDomain           = "domain"
	FieldIndustry         = "industry"
	FieldCompanySize      = "companySize"
	FieldDescription      = "description"
	FieldFirstName        = "firstName"
	FieldLastName         = "lastName"
	FieldEmail            = "email"
	FieldPassword         = "password"
	FieldConfirmPassword  = "confirmPassword"
	FieldSubscriptionPlan = "subscriptionPlan"
	FieldBillingCycle     = "billingCycle"
	FieldTermsOfService   = "termsOfService"
	FieldPrivacyPolicy    = "privacyPolicy"
	FieldGDPRCompliance   = "gdprCompliance"
	FieldDataProcessing   = "dataProcessing"
	FieldMarketingEmails  = "marketingEmails"
)

// fieldOwners maps each field to the step whose validator owns it.
var fieldOwners = map[string]Step{
	FieldOrganizationName: StepCompany,
	FieldDomain:           StepCompany,
	FieldIndustry:         StepCompany,
	FieldCompanySize:      StepCompany,
	FieldDescription:      StepCompany,
	FieldFirstName:        StepAdmin,
	FieldLastName:         StepAdmin,
	FieldEmail:            StepAdmin,
	FieldPassword:         StepAdmin,
	FieldConfirmPassword:  StepAdmin,
	FieldSubscriptionPlan: StepSubscription,
	FieldBillingCycle:     StepSubscription,
	FieldTermsOfService:   StepCompliance,
	FieldPrivacyPolicy:    StepCompliance,
	FieldGDPRCompliance:   StepCompliance,
	FieldDataProcessing:   StepCompliance,
	FieldMarketingEmails:  StepCompliance,
}

// OwnerOf returns the step owning field, or false for unknown fields.
func OwnerOf(field string) (Step, bool) {
	s, ok := fieldOwners[field]
	return s, ok
}

// Fields lists the names of the fields the patch sets.
func (p FormPatch) Fields() []string {
	var out []string
	add := func(set bool, name string) {
		if set {
			out = append(out, name)
		}
	}
	add(p.OrganizationName != nil, FieldOrganizationName)
	add(p.Domain != nil, FieldDomain)
	add(p.Industry != nil, FieldIndustry)
	add(p.CompanySize != nil, FieldCompanySize)
	add(p.Description != nil, FieldDescription)
	add(p.FirstName != nil, FieldFirstName)
	add(p.LastName != nil, FieldLastName)
	add(p.Email != nil, FieldEmail)
	add(p.Password != nil, FieldPassword)
	add(p.ConfirmPassword != nil, FieldConfirmPassword)
	add(p.SubscriptionPlan != nil, FieldSubscriptionPlan)
	add(p.BillingCycle != nil, FieldBillingCycle)
	add(p.TermsOfService != nil, FieldTermsOfService)
	add(p.PrivacyPolicy != nil, FieldPrivacyPolicy)
	add(p.GDPRCompliance != nil, FieldGDPRCompliance)
	add(p.DataProcessing != nil, FieldDataProcessing)
	add(p.MarketingEmails != nil, FieldMarketingEmails)
	return out
}

// IsEmpty reports whether the patch changes nothing.
func (p FormPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply copies every set field into f. The domain is trimmed and lowercased
// so the availability check and the summary agree on its spelling.
func (f *RegistrationForm) Apply(p FormPatch) {
	setString(&f.OrganizationName, p.OrganizationName)
	if p.Domain != nil {
		f.Domain = strings.ToLower(strings.TrimSpace(*p.Domain))
	}
	setString(&f.Industry, p.Industry)
	setString(&f.CompanySize, p.CompanySize)
	setString(&f.Description, p.Description)
	setString(&f.FirstName, p.FirstName)
	setString(&f.LastName, p.LastName)
	if p.Email != nil {
		f.Email = strings.TrimSpace(*p.Email)
	}
	setString(&f.Password, p.Password)
	setString(&f.ConfirmPassword, p.ConfirmPassword)
	if p.SubscriptionPlan != nil {
		f.SubscriptionPlan = PlanID(*p.SubscriptionPlan)
	}
	if p.BillingCycle != nil {
		f.BillingCycle = BillingCycle(*p.BillingCycle)
	}
	setBool(&f.TermsOfService, p.TermsOfService)
	setBool(&f.PrivacyPolicy, p.PrivacyPolicy)
	setBool(&f.GDPRCompliance, p.GDPRCompliance)
	setBool(&f.DataProcessing, p.DataProcessing)
	setBool(&f.MarketingEmails, p.MarketingEmails)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
