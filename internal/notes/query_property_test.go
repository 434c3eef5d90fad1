package notes

import (
	"strings"
	"testing"
	"time"

	"pgregory.net/rapid"

	"tenantnotes/internal/apiclient"
)

func TestFilterProperties(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	words := []string{"Budget", "budget review", "Roadmap", "standup", "", "Q3 BUDGET"}

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(rt, "n")
		all := make([]apiclient.Note, n)
		for i := range all {
			all[i] = apiclient.Note{
				ID:        rapid.StringMatching(`n[0-9]{1,3}`).Draw(rt, "id"),
				Title:     rapid.SampledFrom(words).Draw(rt, "title"),
				Content:   rapid.SampledFrom(words).Draw(rt, "content"),
				CreatedAt: base.Add(time.Duration(rapid.IntRange(0, 100).Draw(rt, "created")) * time.Hour),
				UpdatedAt: base.Add(time.Duration(rapid.IntRange(0, 100).Draw(rt, "updated")) * time.Hour),
			}
		}
		q := ListQuery{
			Search: rapid.SampledFrom([]string{"", "budget", "ROAD", "missing"}).Draw(rt, "search"),
			Sort:   rapid.SampledFrom([]SortBy{SortUpdated, SortCreated, SortTitle}).Draw(rt, "sort"),
		}

		got := Filter(all, q)

		needle := strings.ToLower(q.Search)
		want := 0
		for _, note := range all {
			if strings.Contains(strings.ToLower(note.Title), needle) || strings.Contains(strings.ToLower(note.Content), needle) {
				want++
			}
		}
		if len(got) != want {
			rt.Fatalf("got %d notes, want %d", len(got), want)
		}
		for i := 1; i < len(got); i++ {
			prev, cur := got[i-1], got[i]
			switch q.Sort {
			case SortTitle:
				if strings.ToLower(prev.Title) > strings.ToLower(cur.Title) {
					rt.Fatalf("titles out of order at %d", i)
				}
			case SortCreated:
				if prev.CreatedAt.Before(cur.CreatedAt) {
					rt.Fatalf("created out of order at %d", i)
				}
			default:
				if prev.UpdatedAt.Before(cur.UpdatedAt) {
					rt.Fatalf("updated out of order at %d", i)
				}
			}
		}
	})
}
