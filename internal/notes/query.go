package notes

import (
	"slices"
	"strings"

	"tenantnotes/internal/apiclient"
)

// Filter keeps notes whose title or content contains the search text,
// ignoring case, and orders them by q.Sort. The input is not modified.
func Filter(all []apiclient.Note, q ListQuery) []apiclient.Note {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]apiclient.Note, 0, len(all))
	for _, n := range all {
		if needle == "" ||
			strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle) {
			out = append(out, n)
		}
	}

	switch q.Sort {
	case SortTitle:
		slices.SortStableFunc(out, func(a, b apiclient.Note) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	case SortCreated:
		slices.SortStableFunc(out, func(a, b apiclient.Note) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	default:
		slices.SortStableFunc(out, func(a, b apiclient.Note) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
	return out
}
