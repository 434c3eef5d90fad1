// Package notes drives the notes workspace against the external API using
// the caller's session token.
package notes

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"tenantnotes/internal/apiclient"
	"tenantnotes/pkg/attrs"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/audit"
	"tenantnotes/pkg/requestcontext"
)

const defaultBulkConcurrency = 4

type NotesAPI interface {
	ListNotes(ctx context.Context, token string) ([]apiclient.Note, error)
	CreateNote(ctx context.Context, token string, in apiclient.NoteInput) (*apiclient.Note, error)
	UpdateNote(ctx context.Context, token, id string, in apiclient.NoteInput) (*apiclient.Note, error)
	DeleteNote(ctx context.Context, token, id string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	api             NotesAPI
	logger          *slog.Logger
	auditPublisher  AuditPublisher
	metrics         *Metrics
	bulkConcurrency int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithBulkConcurrency caps the number of deletes in flight during a bulk delete.
func WithBulkConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bulkConcurrency = n
		}
	}
}

func New(api NotesAPI, opts ...Option) *Service {
	s := &Service{
		api:             api,
		bulkConcurrency: defaultBulkConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// List fetches the tenant's notes and applies search and sort.
func (s *Service) List(ctx context.Context, token string, q ListQuery) ([]apiclient.Note, error) {
	all, err := s.api.ListNotes(ctx, token)
	if err != nil {
		s.metrics.IncrementOperation("list", "error")
		return nil, s.callFailed(ctx, "list", err, MsgFetchFailed)
	}
	s.metrics.IncrementOperation("list", "success")
	return Filter(all, q), nil
}

// Create saves a new note. A plan limit refusal keeps the server's message.
func (s *Service) Create(ctx context.Context, token, email string, req NoteRequest) (*apiclient.Note, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	note, err := s.api.CreateNote(ctx, token, req.input())
	if err != nil {
		if s.limitReached(ctx, "create", email, err) {
			return nil, err
		}
		s.metrics.IncrementOperation("create", "error")
		return nil, s.callFailed(ctx, "create", err, MsgSaveFailed)
	}
	s.metrics.IncrementOperation("create", "success")
	s.logAudit(ctx, string(audit.EventNoteCreated),
		"subject", note.ID,
		"email", email,
	)
	return note, nil
}

func (s *Service) Update(ctx context.Context, token, email, id string, req NoteRequest) (*apiclient.Note, error) {
	if id == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "note id is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	note, err := s.api.UpdateNote(ctx, token, id, req.input())
	if err != nil {
		if s.limitReached(ctx, "update", email, err) {
			return nil, err
		}
		s.metrics.IncrementOperation("update", "error")
		return nil, s.callFailed(ctx, "update", err, MsgSaveFailed)
	}
	s.metrics.IncrementOperation("update", "success")
	s.logAudit(ctx, string(audit.EventNoteUpdated),
		"subject", id,
		"email", email,
	)
	return note, nil
}

// limitReached records a NOTE_LIMIT_REACHED rejection. The caller returns err
// unchanged so the API's message reaches the page.
func (s *Service) limitReached(ctx context.Context, operation, email string, err error) bool {
	if !dErrors.HasCode(err, dErrors.CodeLimitReached) {
		return false
	}
	s.metrics.IncrementLimitReached()
	s.metrics.IncrementOperation(operation, "limit_reached")
	s.logAudit(ctx, string(audit.EventNoteLimitReached),
		"email", email,
		"reason", apiMessage(err),
	)
	return true
}

func (s *Service) Delete(ctx context.Context, token, email, id string) error {
	if id == "" {
		return dErrors.New(dErrors.CodeBadRequest, "note id is required")
	}
	if err := s.api.DeleteNote(ctx, token, id); err != nil {
		s.metrics.IncrementOperation("delete", "error")
		return s.callFailed(ctx, "delete", err, MsgDeleteFailed)
	}
	s.metrics.IncrementOperation("delete", "success")
	s.logAudit(ctx, string(audit.EventNoteDeleted),
		"subject", id,
		"email", email,
	)
	return nil
}

// BulkDelete removes every selected note concurrently. Deletes that fail do
// not stop the others; the result lists both sets and the error carries the
// aggregate message when anything failed.
func (s *Service) BulkDelete(ctx context.Context, token, email string, req BulkDeleteRequest) (*BulkDeleteResult, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		result = &BulkDeleteResult{Deleted: make([]string, 0, len(req.IDs))}
		first  error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.bulkConcurrency)
	for _, id := range req.IDs {
		g.Go(func() error {
			err := s.api.DeleteNote(gctx, token, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, id)
				if first == nil {
					first = err
				}
				return nil
			}
			result.Deleted = append(result.Deleted, id)
			return nil
		})
	}
	_ = g.Wait()

	s.logAudit(ctx, string(audit.EventNotesBulkDeleted),
		"email", email,
		"deleted", len(result.Deleted),
		"failed", len(result.Failed),
	)
	if len(result.Failed) > 0 {
		s.metrics.IncrementOperation("bulk_delete", "partial")
		return result, s.callFailed(ctx, "bulk_delete", first, MsgBulkDeleteFailed)
	}
	s.metrics.IncrementOperation("bulk_delete", "success")
	return result, nil
}

// callFailed turns an API failure into the single message the page shows.
// An expired or rejected token stays unauthorized so the caller can send the
// browser back to login.
func (s *Service) callFailed(ctx context.Context, operation string, err error, message string) error {
	s.logger.WarnContext(ctx, "notes api call failed",
		"request_id", requestcontext.RequestID(ctx),
		"operation", operation,
		"error", err,
	)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		return err
	}
	code := dErrors.CodeUnavailable
	if dErrors.HasCode(err, dErrors.CodeNotFound) {
		code = dErrors.CodeNotFound
	}
	return dErrors.Wrap(err, code, message)
}

func apiMessage(err error) string {
	if de, ok := dErrors.As(err); ok {
		return de.Message
	}
	return err.Error()
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:    event,
		Subject:   attrs.ExtractString(attributes, "subject"),
		Email:     attrs.ExtractString(attributes, "email"),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: requestID,
		BrowserID: requestcontext.BrowserID(ctx),
		IP:        requestcontext.ClientIP(ctx),
	})
}
