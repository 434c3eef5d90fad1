package models

// Option is a selectable catalog entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Industries = []Option{
	{Value: "technology", Label: "Technology"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "finance", Label: "Finance & Banking"},
	{Value: "education", Label: "Education"},
	{Value: "manufacturing", Label: "Manufacturing"},
	{Value: "retail", Label: "Retail & E-commerce"},
	{Value: "consulting", Label: "Consulting"},
	{Value: "real-estate", Label: "Real Estate"},
	{Value: "media", Label: "Media & Entertainment"},
	{Value: "non-profit", Label: "Non-Profit"},
	{Value: "government", Label: "Government"},
	{Value: "other", Label: "Other"},
}

var CompanySizes = []Option{
	{Value: "1-10", Label: "1-10 employees"},
	{Value: "11-50", Label: "11-50 employees"},
	{Value: "51-200", Label: "51-200 employees"},
	{Value: "201-500", Label: "201-500 employees"},
	{Value: "501-1000", Label: "501-1000 employees"},
	{Value: "1000+", Label: "1000+ employees"},
}

func inCatalog(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// IsKnownIndustry reports whether v is in the industry catalog.
func IsKnownIndustry(v string) bool { return inCatalog(Industries, v) }

// IsKnownCompanySize reports whether v is in the company size catalog.
func IsKnownCompanySize(v string) bool { return inCatalog(CompanySizes, v) }

// PlanID identifies a subscription plan.
type PlanID string

const (
	PlanStarter      PlanID = "starter"
	PlanProfessional PlanID = "professional"
	PlanEnterprise   PlanID = "enterprise"
)

// BillingCycle is how often the tenant is invoiced.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

func (c BillingCycle) IsValid() bool {
	return c == BillingMonthly || c == BillingYearly
}

// Unlimited marks a plan limit with no ceiling.
const Unlimited = -1

// Plan is a subscription offering. Prices are whole US dollars.
type Plan struct {
	ID           PlanID   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MonthlyPrice int      `json:"monthly_price"`
	YearlyPrice  int      `json:"yearly_price"`
	MaxUsers     int      `json:"max_users"`
	MaxNotes     int      `json:"max_notes"`
	Storage      string   `json:"storage"`
	Features     []string `json:"features"`
	Popular      bool     `json:"popular"`
}

// PriceFor returns the price charged per billing period.
func (p Plan) PriceFor(cycle BillingCycle) int {
	if cycle == BillingYearly {
		return p.YearlyPrice
	}
	return p.MonthlyPrice
}

// YearlySavings is what paying yearly saves against twelve monthly payments.
func (p Plan) YearlySavings() int {
	return p.MonthlyPrice*12 - p.YearlyPrice
}

var Plans = []Plan{
	{
		ID:           PlanStarter,
		Name:         "Starter",
		Description:  "Perfect for small teams getting started",
		MonthlyPrice: 29,
		YearlyPrice:  290,
		MaxUsers:     5,
		MaxNotes:     100,
		Storage:      "1GB",
		Features:     []string{"Up to 5 users", "100 notes limit", "1GB storage", "Basic search", "Email support", "Standard security"},
	},
	{
		ID:           PlanProfessional,
		Name:         "Professional",
		Description:  "Ideal for growing teams and businesses",
		MonthlyPrice: 79,
		YearlyPrice:  790,
		MaxUsers:     25,
		MaxNotes:     1000,
		Storage:      "10GB",
		Features:     []string{"Up to 25 users", "1,000 notes limit", "10GB storage", "Advanced search", "Priority support", "Enhanced security", "Team collaboration", "API access"},
		Popular:      true,
	},
	{
		ID:           PlanEnterprise,
		Name:         "Enterprise",
		Description:  "For large organizations with advanced needs",
		MonthlyPrice: 199,
		YearlyPrice:  1990,
		MaxUsers:     Unlimited,
		MaxNotes:     Unlimited,
		Storage:      "100GB",
		Features:     []string{"Unlimited users", "Unlimited notes", "100GB storage", "AI-powered search", "24/7 phone support", "Enterprise security", "Advanced permissions", "Custom integrations", "Audit logs", "SLA guarantee"},
	},
}

// FindPlan looks up a plan by id.
func FindPlan(id PlanID) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
