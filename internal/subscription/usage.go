package subscription

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tenantnotes/internal/apiclient"
)

// Level is the colour band of a usage bar.
type Level string

const (
	LevelOK       Level = "ok"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

const (
	warningPercent  = 75.0
	noticePercent   = 80.0
	criticalPercent = 90.0

	gib = 1 << 30
)

// Usage labels.
const (
	LabelApproaching  = "Approaching limit"
	LabelLimitReached = "Limit reached"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Metric is one usage bar on the dashboard.
type Metric struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Used        int64   `json:"used"`
	Limit       int64   `json:"limit"`
	Unlimited   bool    `json:"unlimited"`
	Percentage  float64 `json:"percentage"`
	Level       Level   `json:"level"`
	Label       string  `json:"label,omitempty"`
	Notice      string  `json:"notice,omitempty"`
	Display     string  `json:"display"`
}

func newMetric(kind, name, description string, u apiclient.Usage) Metric {
	m := Metric{
		Type:        kind,
		Name:        name,
		Description: description,
		Used:        u.Used,
		Limit:       u.Limit,
		Level:       LevelOK,
	}
	format := formatCount
	if kind == "storage" {
		format = formatStorage
	}
	if u.Limit < 0 {
		m.Unlimited = true
		m.Display = format(u.Used) + " / Unlimited"
		return m
	}
	m.Display = format(u.Used) + " / " + format(u.Limit)

	var pct float64
	switch {
	case u.Limit > 0:
		pct = float64(u.Used) / float64(u.Limit) * 100
	case u.Used > 0:
		pct = 100
	}
	m.Percentage = math.Round(pct*10) / 10

	switch {
	case pct >= criticalPercent:
		m.Level = LevelCritical
	case pct >= warningPercent:
		m.Level = LevelWarning
	}
	switch {
	case pct >= criticalPercent:
		m.Label = LabelLimitReached
		m.Notice = printer.Sprintf("You've reached your %s limit. Upgrade to continue.", kind)
	case pct >= noticePercent:
		m.Label = LabelApproaching
		m.Notice = printer.Sprintf("You're approaching your %s limit.", kind)
	}
	return m
}

// UsageMetrics builds the notes, users and storage bars in display order.
func UsageMetrics(sub *apiclient.Subscription) []Metric {
	return []Metric{
		newMetric("notes", "Notes", "Total notes created", sub.Usage.Notes),
		newMetric("users", "Users", "Active team members", sub.Usage.Users),
		newMetric("storage", "Storage", "File storage used", sub.Usage.Storage),
	}
}

func formatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

func formatStorage(bytes int64) string {
	return printer.Sprintf("%.1f GB", float64(bytes)/gib)
}
