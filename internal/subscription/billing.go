package subscription

import (
	"math"
	"slices"
	"strings"
	"time"

	"tenantnotes/internal/apiclient"
)

// Period filters billing history.
type Period string

const (
	PeriodAll      Period = "all"
	Period3Months  Period = "3months"
	Period12Months Period = "12months"
)

// ParsePeriod falls back to PeriodAll for anything unknown.
func ParsePeriod(v string) Period {
	switch Period(strings.TrimSpace(v)) {
	case Period3Months:
		return Period3Months
	case Period12Months:
		return Period12Months
	default:
		return PeriodAll
	}
}

// BillingHistory is the filtered invoice table with its footer.
type BillingHistory struct {
	Period   Period              `json:"period"`
	Invoices []apiclient.Invoice `json:"invoices"`
	Shown    int                 `json:"shown"`
	Count    int                 `json:"count"`
	Total    float64             `json:"total"`
}

// FilterInvoices keeps invoices dated on or after the period's cutoff,
// newest first. Total sums amount and tax of what is shown.
func FilterInvoices(all []apiclient.Invoice, period Period, now time.Time) BillingHistory {
	h := BillingHistory{Period: period, Count: len(all), Invoices: make([]apiclient.Invoice, 0, len(all))}

	var cutoff time.Time
	switch period {
	case Period3Months:
		cutoff = now.AddDate(0, -3, 0)
	case Period12Months:
		cutoff = now.AddDate(0, -12, 0)
	}

	var total float64
	for _, inv := range all {
		if !cutoff.IsZero() && inv.Date.Before(cutoff) {
			continue
		}
		h.Invoices = append(h.Invoices, inv)
		total += inv.Amount + inv.Tax
	}
	slices.SortStableFunc(h.Invoices, func(a, b apiclient.Invoice) int {
		return b.Date.Compare(a.Date)
	})
	h.Shown = len(h.Invoices)
	h.Total = math.Round(total*100) / 100
	return h
}
