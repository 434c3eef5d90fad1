package session

import (
	"encoding/json"
	"fmt"
	"time"

	"tenantnotes/pkg/platform/sentinel"
)

// Storage keys. These are the only values a browser session holds.
const (
	KeyToken      = "token"
	KeyUserData   = "userData"
	KeyRememberMe = "rememberMe"
)

var ErrNotFound = fmt.Errorf("session %w", sentinel.ErrNotFound)

// Session is the authentication state of one browser.
type Session struct {
	BrowserID  string
	Token      string
	UserData   string // serialized user object returned at login
	RememberMe bool
	Device     string
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// User is the part of the stored user object the BFF reads.
type User struct {
	ID        string `json:"_id,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}

// IsAuthenticated reports whether the session carries a token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// User decodes UserData. A missing or malformed payload yields a zero User.
func (s *Session) User() User {
	var u User
	if s == nil || s.UserData == "" {
		return u
	}
	_ = json.Unmarshal([]byte(s.UserData), &u)
	return u
}

// Email is a shortcut for the header chrome.
func (s *Session) Email() string {
	return s.User().Email
}

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
