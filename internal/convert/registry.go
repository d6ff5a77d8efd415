// Package convert turns scraper exports into the tweet dataset format.
package convert

import (
	"net/url"
	"strings"

	"github.com/TobiSchelling/PartyPulse/internal/config"
)

// Unknown is the group and label of handles missing from the registry.
const Unknown = "Unknown"

// Registry looks tracked accounts up by handle, case-insensitively.
type Registry struct {
	byHandle map[string]config.Account
}

// NewRegistry indexes accounts by lower-cased handle. Later duplicates
// override earlier ones.
func NewRegistry(accounts []config.Account) Registry {
	r := Registry{byHandle: make(map[string]config.Account, len(accounts))}
	for _, a := range accounts {
		r.byHandle[strings.ToLower(a.Handle)] = a
	}
	return r
}

// Lookup returns the raw group and label of a handle, or Unknown for both.
func (r Registry) Lookup(handle string) (group, label string) {
	if a, ok := r.byHandle[strings.ToLower(handle)]; ok {
		return a.Group, a.Label
	}
	return Unknown, Unknown
}

// UsernameFromURL returns the handle in a status URL such as
// https://x.com/<handle>/status/<id>, i.e. the fourth "/"-separated
// segment, or "" when there is none.
func UsernameFromURL(u string) string {
	parts := strings.Split(u, "/")
	if len(parts) > 3 {
		return parts[3]
	}
	return ""
}

// statusIDFromURL returns the path segment after "status", without any
// query or fragment.
func statusIDFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] == "status" || segments[i] == "statuses" {
			return segments[i+1]
		}
	}
	return ""
}
