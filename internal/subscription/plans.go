package subscription

import (
	"tenantnotes/internal/registration/models"
)

// PlanOption is a catalog entry as the upgrade picker shows it.
type PlanOption struct {
	models.Plan
	Current bool `json:"current"`
}

// Catalog marks the tenant's current plan in the shared plan list.
func Catalog(current string) []PlanOption {
	out := make([]PlanOption, 0, len(models.Plans))
	for _, p := range models.Plans {
		out = append(out, PlanOption{Plan: p, Current: string(p.ID) == current})
	}
	return out
}
