package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers tenant creation and consent records.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers authentication outcomes.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine workspace activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string        `json:"id"`
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	Action    string        `json:"action"`

	// Subject is the entity acted upon: a wizard id, a tenant domain, an email.
	Subject   string `json:"subject"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Email     string `json:"email,omitempty"`
	IP        string `json:"ip,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	BrowserID string `json:"browser_id,omitempty"`
}

type AuditEvent string

const (
	// Registration events
	EventRegistrationStarted   AuditEvent = "registration_started"
	EventRegistrationSubmitted AuditEvent = "registration_submitted"
	EventRegistrationFailed    AuditEvent = "registration_failed"
	EventRegistrationExpired   AuditEvent = "registration_expired"

	// Auth events
	EventLoginSucceeded AuditEvent = "login_succeeded"
	EventLoginFailed    AuditEvent = "login_failed"
	EventLoginLocked    AuditEvent = "login_locked"
	EventLogout         AuditEvent = "logout"

	// Notes events
	EventNoteCreated      AuditEvent = "note_created"
	EventNoteUpdated      AuditEvent = "note_updated"
	EventNoteDeleted      AuditEvent = "note_deleted"
	EventNoteLimitReached AuditEvent = "note_limit_reached"
	EventNotesBulkDeleted AuditEvent = "notes_bulk_deleted"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRegistrationSubmitted: CategoryCompliance,

	EventLoginSucceeded:     CategorySecurity,
	EventLoginFailed:        CategorySecurity,
	EventLoginLocked:        CategorySecurity,
	EventLogout:             CategorySecurity,
	EventRegistrationFailed: CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
