package handler

import (
	"strings"

	"tenantnotes/internal/registration/models"
	dErrors "tenantnotes/pkg/domain-errors"
)

const (
	maxFieldLength       = 255
	maxDescriptionLength = 2000
)

// UpdateFormRequest is a partial form edit. Only fields present in the body
// are applied.
type UpdateFormRequest struct {
	models.FormPatch
}

func (r *UpdateFormRequest) Normalize() {
	if r == nil {
		return
	}
	for _, f := range []*string{
		r.OrganizationName, r.Industry, r.CompanySize,
		r.FirstName, r.LastName, r.SubscriptionPlan, r.BillingCycle,
	} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// Follows validation order: Size -> Required.
func (r *UpdateFormRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	r.Normalize()

	for name, f := range map[string]*string{
		models.FieldOrganizationName: r.OrganizationName,
		models.FieldDomain:           r.Domain,
		models.FieldIndustry:         r.Industry,
		models.FieldCompanySize:      r.CompanySize,
		models.FieldFirstName:        r.FirstName,
		models.FieldLastName:         r.LastName,
		models.FieldEmail:            r.Email,
		models.FieldPassword:         r.Password,
		models.FieldConfirmPassword:  r.ConfirmPassword,
		models.FieldSubscriptionPlan: r.SubscriptionPlan,
		models.FieldBillingCycle:     r.BillingCycle,
	} {
		if f != nil && len(*f) > maxFieldLength {
			return dErrors.New(dErrors.CodeValidation, name+" must be 255 characters or less")
		}
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		return dErrors.New(dErrors.CodeValidation, "description must be 2000 characters or less")
	}

	if r.IsEmpty() {
		return dErrors.New(dErrors.CodeBadRequest, "no fields to update")
	}
	return nil
}
