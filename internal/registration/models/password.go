package models

import (
	"regexp"
	"unicode/utf8"
)

var (
	lowercasePattern = regexp.MustCompile(`[a-z]`)
	uppercasePattern = regexp.MustCompile(`[A-Z]`)
	digitPattern     = regexp.MustCompile(`\d`)
	symbolPattern    = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// MinAdminPasswordScore is the strength an admin password must reach.
const MinAdminPasswordScore = 4

// PasswordStrength is derived from the password on every change and never stored.
type PasswordStrength struct {
	Score    int      `json:"score"`
	Label    string   `json:"label"`
	Feedback []string `json:"feedback"`
}

// EvaluatePassword scores a password by counting satisfied predicates and
// lists the unmet ones as hints.
func EvaluatePassword(password string) PasswordStrength {
	checks := []struct {
		ok   bool
		hint string
	}{
		{utf8.RuneCountInString(password) >= 8, "At least 8 characters"},
		{lowercasePattern.MatchString(password), "One lowercase letter"},
		{uppercasePattern.MatchString(password), "One uppercase letter"},
		{digitPattern.MatchString(password), "One number"},
		{symbolPattern.MatchString(password), "One special character"},
	}

	s := PasswordStrength{Feedback: []string{}}
	for _, c := range checks {
		if c.ok {
			s.Score++
			continue
		}
		s.Feedback = append(s.Feedback, c.hint)
	}
	s.Label = strengthLabel(s.Score)
	return s
}

func strengthLabel(score int) string {
	switch {
	case score <= 2:
		return "Weak"
	case score == 3:
		return "Medium"
	default:
		return "Strong"
	}
}
