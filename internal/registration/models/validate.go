package models

import (
	"regexp"
	"strings"
)

var (
	// DomainPattern is the hostname shape a tenant domain must have.
	DomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?\.[a-zA-Z]{2,}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Domain check messages.
const (
	DomainMsgValidating = "Validating domain..."
	DomainMsgInvalid    = "Please enter a valid domain (e.g., company.com)"
	DomainMsgTaken      = "This domain is already registered"
	DomainMsgAvailable  = "Domain is available"
)

// DomainStatus is the state of the asynchronous availability check.
type DomainStatus string

const (
	DomainIdle       DomainStatus = "idle"
	DomainValidating DomainStatus = "validating"
	DomainSuccess    DomainStatus = "success"
	DomainError      DomainStatus = "error"
)

// DomainState is the availability check result for a specific domain value.
type DomainState struct {
	Status  DomainStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Domain  string       `json:"domain,omitempty"`
}

// ResolvedFor reports whether the check succeeded for exactly this domain.
func (s DomainState) ResolvedFor(domain string) bool {
	return s.Status == DomainSuccess && s.Domain == domain
}

// FieldErrors maps a field name to its display message.
type FieldErrors map[string]string

// ValidationResult is the outcome of validating one step.
type ValidationResult struct {
	Valid  bool        `json:"valid"`
	Errors FieldErrors `json:"errors,omitempty"`
}

func result(errs FieldErrors) ValidationResult {
	if len(errs) == 0 {
		return ValidationResult{Valid: true}
	}
	return ValidationResult{Valid: false, Errors: errs}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidDomainShape reports whether domain matches the hostname pattern.
func IsValidDomainShape(domain string) bool {
	return DomainPattern.MatchString(domain)
}

// ValidateCompany checks step 1. The domain only counts once the availability
// check has succeeded for the current value.
func ValidateCompany(f RegistrationForm, domain DomainState) ValidationResult {
	errs := FieldErrors{}
	if blank(f.OrganizationName) {
		errs[FieldOrganizationName] = "Organization name is required"
	}
	switch {
	case blank(f.Domain):
		errs[FieldDomain] = "Domain is required"
	case !IsValidDomainShape(f.Domain):
		errs[FieldDomain] = DomainMsgInvalid
	case domain.Domain == f.Domain && domain.Status == DomainError:
		errs[FieldDomain] = domain.Message
	case !domain.ResolvedFor(f.Domain):
		errs[FieldDomain] = DomainMsgValidating
	}
	if blank(f.Industry) {
		errs[FieldIndustry] = "Industry is required"
	} else if !IsKnownIndustry(f.Industry) {
		errs[FieldIndustry] = "Please select a valid industry"
	}
	if blank(f.CompanySize) {
		errs[FieldCompanySize] = "Company size is required"
	} else if !IsKnownCompanySize(f.CompanySize) {
		errs[FieldCompanySize] = "Please select a valid company size"
	}
	return result(errs)
}

// ValidateAdmin checks step 2.
func ValidateAdmin(f RegistrationForm) ValidationResult {
	errs := FieldErrors{}
	if blank(f.FirstName) {
		errs[FieldFirstName] = "First name is required"
	}
	if blank(f.LastName) {
		errs[FieldLastName] = "Last name is required"
	}
	if blank(f.Email) {
		errs[FieldEmail] = "Email is required"
	} else if !emailPattern.MatchString(f.Email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}
	if f.Password == "" {
		errs[FieldPassword] = "Password is required"
	} else if EvaluatePassword(f.Password).Score < MinAdminPasswordScore {
		errs[FieldPassword] = "Password is too weak"
	}
	switch {
	case f.ConfirmPassword == "":
		errs[FieldConfirmPassword] = "Please confirm password"
	case f.ConfirmPassword != f.Password:
		errs[FieldConfirmPassword] = "Passwords do not match"
	}
	return result(errs)
}

// ValidateSubscription checks step 3.
func ValidateSubscription(f RegistrationForm) ValidationResult {
	errs := FieldErrors{}
	if _, ok := FindPlan(f.SubscriptionPlan); !ok {
		errs[FieldSubscriptionPlan] = "Please select a subscription plan"
	}
	if !f.BillingCycle.IsValid() {
		errs[FieldBillingCycle] = "Please select a billing cycle"
	}
	return result(errs)
}

// ValidateCompliance checks step 4. Marketing consent is never required.
func ValidateCompliance(f RegistrationForm) ValidationResult {
	errs := FieldErrors{}
	if !f.TermsOfService {
		errs[FieldTermsOfService] = "You must accept the Terms of Service"
	}
	if !f.PrivacyPolicy {
		errs[FieldPrivacyPolicy] = "You must accept the Privacy Policy"
	}
	if !f.GDPRCompliance {
		errs[FieldGDPRCompliance] = "GDPR compliance consent is required"
	}
	if !f.DataProcessing {
		errs[FieldDataProcessing] = "Data processing consent is required"
	}
	return result(errs)
}

// ValidateStep dispatches to the validator owning step. The review step has
// no fields and always validates.
func ValidateStep(step Step, f RegistrationForm, domain DomainState) ValidationResult {
	switch step {
	case StepCompany:
		return ValidateCompany(f, domain)
	case StepAdmin:
		return ValidateAdmin(f)
	case StepSubscription:
		return ValidateSubscription(f)
	case StepCompliance:
		return ValidateCompliance(f)
	default:
		return ValidationResult{Valid: true}
	}
}
