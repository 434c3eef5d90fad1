package notes

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var markupPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// plainText strips HTML from titles and tags, which are rendered in lists
// and headers. Text without a '<' is returned untouched.
func plainText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return html.UnescapeString(markupPolicy().Sanitize(s))
}
