package auth

import (
	"strings"

	"github.com/asaskevich/govalidator"
)

const (
	minPasswordLength = 6

	// NotesPath is where a signed-in user lands.
	NotesPath = "/notes-management"
	LoginPath = "/login"
)

// Messages shown on the login page.
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Please enter a valid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgLocked           = "Account temporarily locked. Please try again in 5 minutes."
	MsgUnexpected       = "An unexpected error occurred. Please try again."
)

// LoginRequest is the login form.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (r *LoginRequest) Normalize() {
	if r == nil {
		return
	}
	r.Email = strings.TrimSpace(r.Email)
}

// FieldErrors runs the form rules: required, then shape.
func (r *LoginRequest) FieldErrors() FieldErrors {
	errs := FieldErrors{}
	switch {
	case r.Email == "":
		errs["email"] = MsgEmailRequired
	case !govalidator.IsEmail(r.Email) || strings.ContainsAny(r.Email, " \t"):
		errs["email"] = MsgEmailInvalid
	}
	switch {
	case r.Password == "":
		errs["password"] = MsgPasswordRequired
	case !govalidator.StringLength(r.Password, "6", "1024"):
		errs["password"] = MsgPasswordTooShort
	}
	return errs
}
