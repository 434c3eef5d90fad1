package notes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tenantnotes/internal/apiclient"
	"tenantnotes/internal/session"
	dErrors "tenantnotes/pkg/domain-errors"
	"tenantnotes/pkg/platform/httputil"
	"tenantnotes/pkg/requestcontext"
)

// Workspaces is the notes surface the handler drives.
type Workspaces interface {
	List(ctx context.Context, token string, q ListQuery) ([]apiclient.Note, error)
	Create(ctx context.Context, token, email string, req NoteRequest) (*apiclient.Note, error)
	Update(ctx context.Context, token, email, id string, req NoteRequest) (*apiclient.Note, error)
	Delete(ctx context.Context, token, email, id string) error
	BulkDelete(ctx context.Context, token, email string, req BulkDeleteRequest) (*BulkDeleteResult, error)
}

// Handler serves /notes-management. Routes expect a hydrated session.
type Handler struct {
	notes  Workspaces
	logger *slog.Logger
}

func NewHandler(notes Workspaces, logger *slog.Logger) *Handler {
	return &Handler{notes: notes, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/notes", h.handleCreate)
	r.Put("/notes/{id}", h.handleUpdate)
	r.Delete("/notes/{id}", h.handleDelete)
	r.Post("/notes/bulk-delete", h.handleBulkDelete)
}

type NoteResponse struct {
	Note *apiclient.Note `json:"note"`
}

type BulkDeleteResponse struct {
	Error            string   `json:"error,omitempty"`
	ErrorDescription string   `json:"error_description,omitempty"`
	Deleted          []string `json:"deleted"`
	Failed           []string `json:"failed,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := ListQuery{
		Search: r.URL.Query().Get("search"),
		Sort:   ParseSort(r.URL.Query().Get("sort")),
	}
	list, err := h.notes.List(ctx, requestcontext.AuthToken(ctx), q)
	if err != nil {
		h.writeError(ctx, w, "failed to list notes", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, Workspace{
		Notes:     list,
		Total:     len(list),
		Search:    q.Search,
		Sort:      q.Sort,
		UserEmail: session.FromContext(ctx).Email(),
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[NoteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	note, err := h.notes.Create(ctx, requestcontext.AuthToken(ctx), session.FromContext(ctx).Email(), *req)
	if err != nil {
		h.writeError(ctx, w, "failed to create note", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, NoteResponse{Note: note})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[NoteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	note, err := h.notes.Update(ctx, requestcontext.AuthToken(ctx), session.FromContext(ctx).Email(), chi.URLParam(r, "id"), *req)
	if err != nil {
		h.writeError(ctx, w, "failed to update note", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NoteResponse{Note: note})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.notes.Delete(ctx, requestcontext.AuthToken(ctx), session.FromContext(ctx).Email(), chi.URLParam(r, "id")); err != nil {
		h.writeError(ctx, w, "failed to delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[BulkDeleteRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	res, err := h.notes.BulkDelete(ctx, requestcontext.AuthToken(ctx), session.FromContext(ctx).Email(), *req)
	if err != nil && res == nil {
		h.writeError(ctx, w, "failed to delete notes", err)
		return
	}
	if err != nil {
		code := dErrors.CodeOf(err)
		resp := BulkDeleteResponse{Error: string(code), Deleted: res.Deleted, Failed: res.Failed}
		if de, ok := dErrors.As(err); ok {
			resp.ErrorDescription = de.Message
		}
		httputil.WriteJSON(w, httputil.StatusFor(code), resp)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BulkDeleteResponse{Deleted: res.Deleted})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
	if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
		w.Header().Set("Location", "/login")
	}
	httputil.WriteError(w, err)
}
