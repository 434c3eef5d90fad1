package models_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"tenantnotes/internal/registration/models"
)

type ValidatorsSuite struct {
	suite.Suite
}

func TestValidatorsSuite(t *testing.T) {
	suite.Run(t, new(ValidatorsSuite))
}

func validCompany() models.RegistrationForm {
	f := models.NewRegistrationForm()
	f.OrganizationName = "Acme"
	f.Domain = "acme.com"
	f.Industry = "technology"
	f.CompanySize = "11-50"
	return f
}

func resolved(domain string) models.DomainState {
	return models.DomainState{Status: models.DomainSuccess, Domain: domain, Message: models.DomainMsgAvailable}
}

func validAdmin() models.RegistrationForm {
	f := models.NewRegistrationForm()
	f.FirstName = "Ada"
	f.LastName = "Lovelace"
	f.Email = "ada@acme.com"
	f.Password = "Abc12345!"
	f.ConfirmPassword = "Abc12345!"
	return f
}

func (s *ValidatorsSuite) TestCompany() {
	s.Run("valid once the domain check resolved for the same value", func() {
		res := models.ValidateCompany(validCompany(), resolved("acme.com"))
		s.True(res.Valid)
		s.Empty(res.Errors)
	})

	s.Run("invalid while the domain check is pending", func() {
		state := models.DomainState{Status: models.DomainValidating, Domain: "acme.com"}
		res := models.ValidateCompany(validCompany(), state)
		s.False(res.Valid)
		s.Equal(models.DomainMsgValidating, res.Errors[models.FieldDomain])
	})

	s.Run("invalid when the success belongs to an older domain", func() {
		res := models.ValidateCompany(validCompany(), resolved("acme.io"))
		s.False(res.Valid)
	})

	s.Run("taken domain surfaces the check message", func() {
		state := models.DomainState{Status: models.DomainError, Domain: "acme.com", Message: models.DomainMsgTaken}
		res := models.ValidateCompany(validCompany(), state)
		s.False(res.Valid)
		s.Equal(models.DomainMsgTaken, res.Errors[models.FieldDomain])
	})

	s.Run("malformed domain fails without waiting for the check", func() {
		f := validCompany()
		f.Domain = "acme"
		res := models.ValidateCompany(f, resolved("acme"))
		s.False(res.Valid)
		s.Equal(models.DomainMsgInvalid, res.Errors[models.FieldDomain])
	})

	s.Run("each missing required field invalidates", func() {
		mutators := map[string]func(*models.RegistrationForm){
			models.FieldOrganizationName: func(f *models.RegistrationForm) { f.OrganizationName = "" },
			models.FieldDomain:           func(f *models.RegistrationForm) { f.Domain = "" },
			models.FieldIndustry:         func(f *models.RegistrationForm) { f.Industry = "" },
			models.FieldCompanySize:      func(f *models.RegistrationForm) { f.CompanySize = "" },
		}
		for field, mutate := range mutators {
			f := validCompany()
			mutate(&f)
			res := models.ValidateCompany(f, resolved("acme.com"))
			s.False(res.Valid, field)
			s.Contains(res.Errors, field)
		}
	})

	s.Run("values outside the catalogs are rejected", func() {
		f := validCompany()
		f.Industry = "mining"
		f.CompanySize = "2-3"
		res := models.ValidateCompany(f, resolved("acme.com"))
		s.False(res.Valid)
		s.Contains(res.Errors, models.FieldIndustry)
		s.Contains(res.Errors, models.FieldCompanySize)
	})

	s.Run("description is optional", func() {
		f := validCompany()
		f.Description = ""
		s.True(models.ValidateCompany(f, resolved("acme.com")).Valid)
	})
}

func (s *ValidatorsSuite) TestAdmin() {
	s.Run("valid admin", func() {
		s.True(models.ValidateAdmin(validAdmin()).Valid)
	})

	s.Run("confirm password mismatch is invalid", func() {
		f := validAdmin()
		f.ConfirmPassword = "Abc12345"
		res := models.ValidateAdmin(f)
		s.False(res.Valid)
		s.Equal("Passwords do not match", res.Errors[models.FieldConfirmPassword])
	})

	s.Run("weak password is invalid even when confirmed", func() {
		f := validAdmin()
		f.Password = "abcdefgh"
		f.ConfirmPassword = "abcdefgh"
		res := models.ValidateAdmin(f)
		s.False(res.Valid)
		s.Contains(res.Errors, models.FieldPassword)
	})

	s.Run("score of four is enough", func() {
		f := validAdmin()
		f.Password = "Abcdefg1"
		f.ConfirmPassword = "Abcdefg1"
		s.True(models.ValidateAdmin(f).Valid)
	})

	s.Run("malformed email", func() {
		f := validAdmin()
		f.Email = "ada@acme"
		res := models.ValidateAdmin(f)
		s.False(res.Valid)
		s.Equal("Please enter a valid email address", res.Errors[models.FieldEmail])
	})

	s.Run("missing names", func() {
		f := validAdmin()
		f.FirstName = " "
		f.LastName = ""
		res := models.ValidateAdmin(f)
		s.False(res.Valid)
		s.Contains(res.Errors, models.FieldFirstName)
		s.Contains(res.Errors, models.FieldLastName)
	})
}

func (s *ValidatorsSuite) TestSubscription() {
	f := models.NewRegistrationForm()
	s.False(models.ValidateSubscription(f).Valid)

	f.SubscriptionPlan = models.PlanProfessional
	s.True(models.ValidateSubscription(f).Valid)

	f.SubscriptionPlan = "platinum"
	s.False(models.ValidateSubscription(f).Valid)

	f.SubscriptionPlan = models.PlanStarter
	f.BillingCycle = "weekly"
	res := models.ValidateSubscription(f)
	s.False(res.Valid)
	s.Contains(res.Errors, models.FieldBillingCycle)
}

func (s *ValidatorsSuite) TestCompliance() {
	f := models.NewRegistrationForm()
	res := models.ValidateCompliance(f)
	s.False(res.Valid)
	s.Len(res.Errors, 4)

	f.TermsOfService = true
	f.PrivacyPolicy = true
	f.GDPRCompliance = true
	f.DataProcessing = true
	s.True(models.ValidateCompliance(f).Valid, "marketing consent is optional")

	f.DataProcessing = false
	s.False(models.ValidateCompliance(f).Valid)
}

func (s *ValidatorsSuite) TestValidateStepReviewAlwaysValid() {
	s.True(models.ValidateStep(models.StepReview, models.NewRegistrationForm(), models.DomainState{}).Valid)
}
