package httptransport

import (
	"net/http"

	"tenantnotes/internal/session"
	"tenantnotes/pkg/platform/httputil"
)

// NavItem is one entry of the header and sidebar.
type NavItem struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	Active   bool   `json:"active"`
	IsLogout bool   `json:"is_logout,omitempty"`
}

// Chrome is the navigation shell around the signed-in pages.
type Chrome struct {
	UserEmail string    `json:"user_email"`
	Items     []NavItem `json:"items"`
}

var navItems = []NavItem{
	{Label: "Notes", Path: "/notes-management"},
	{Label: "Subscription", Path: "/subscription-management"},
	{Label: "Tenant Setup", Path: "/tenant-registration"},
	{Label: "Logout", Path: "/login", IsLogout: true},
}

// BuildChrome marks the item matching current as active.
func BuildChrome(sess *session.Session, current string) Chrome {
	items := make([]NavItem, len(navItems))
	copy(items, navItems)
	for i := range items {
		items[i].Active = !items[i].IsLogout && items[i].Path == current
	}
	return Chrome{UserEmail: sess.Email(), Items: items}
}

func handleNav(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, BuildChrome(session.FromContext(r.Context()), r.URL.Query().Get("current")))
}
