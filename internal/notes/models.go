package notes

import (
	"strings"
	"unicode/utf8"

	"tenantnotes/internal/apiclient"
	dErrors "tenantnotes/pkg/domain-errors"
	pkgstrings "tenantnotes/pkg/platform/strings"
)

// Messages shown on the notes workspace.
const (
	MsgFetchFailed      = "Failed to fetch notes. Please try again."
	MsgSaveFailed       = "Failed to save note."
	MsgDeleteFailed     = "Failed to delete note."
	MsgBulkDeleteFailed = "Failed to delete one or more notes."

	DefaultTitle = "Untitled"
)

const (
	maxTitleLength   = 255
	maxContentLength = 100_000
	maxTags          = 20
	maxBulkIDs       = 100
)

// SortBy orders the workspace list.
type SortBy string

const (
	SortUpdated SortBy = "updated"
	SortCreated SortBy = "created"
	SortTitle   SortBy = "title"
)

// ParseSort falls back to SortUpdated for anything unknown.
func ParseSort(v string) SortBy {
	switch SortBy(strings.ToLower(strings.TrimSpace(v))) {
	case SortCreated:
		return SortCreated
	case SortTitle:
		return SortTitle
	default:
		return SortUpdated
	}
}

// ListQuery filters and orders the notes list.
type ListQuery struct {
	Search string
	Sort   SortBy
}

// NoteRequest is the body of create and update.
type NoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

func (r *NoteRequest) Normalize() {
	if r == nil {
		return
	}
	r.Title = strings.TrimSpace(plainText(r.Title))
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	for i, t := range r.Tags {
		r.Tags[i] = plainText(t)
	}
	r.Tags = pkgstrings.DedupeAndTrim(r.Tags)
}

func (r *NoteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if utf8.RuneCountInString(r.Title) > maxTitleLength {
		return dErrors.New(dErrors.CodeValidation, "title is too long")
	}
	if utf8.RuneCountInString(r.Content) > maxContentLength {
		return dErrors.New(dErrors.CodeValidation, "content is too long")
	}
	if len(r.Tags) > maxTags {
		return dErrors.New(dErrors.CodeValidation, "too many tags")
	}
	return nil
}

func (r *NoteRequest) input() apiclient.NoteInput {
	return apiclient.NoteInput{Title: r.Title, Content: r.Content, Tags: r.Tags}
}

// BulkDeleteRequest carries the selected note ids.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

func (r *BulkDeleteRequest) Normalize() {
	if r == nil {
		return
	}
	r.IDs = pkgstrings.DedupeAndTrim(r.IDs)
}

func (r *BulkDeleteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.IDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "no notes selected")
	}
	if len(r.IDs) > maxBulkIDs {
		return dErrors.New(dErrors.CodeValidation, "too many notes selected")
	}
	return nil
}

// Workspace is the notes page: the filtered list plus the header chrome.
type Workspace struct {
	Notes     []apiclient.Note `json:"notes"`
	Total     int              `json:"total"`
	Search    string           `json:"search,omitempty"`
	Sort      SortBy           `json:"sort"`
	UserEmail string           `json:"user_email,omitempty"`
}

// BulkDeleteResult lists what was removed. Failed is set when at least one
// delete did not go through.
type BulkDeleteResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed,omitempty"`
}
