package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
	"github.com/TobiSchelling/PartyPulse/internal/party"
)

// parseSelection reads the repeated party parameter. Without any party
// parameter every canonical party is selected; empty values select
// nothing, so "?party=" means no party.
func parseSelection(r *http.Request) analytics.Selection {
	values, ok := r.URL.Query()["party"]
	if !ok {
		return analytics.SelectAll()
	}
	var parties []string
	for _, v := range values {
		if v != "" {
			parties = append(parties, v)
		}
	}
	return analytics.Select(parties...)
}

// selectionQuery encodes sel back into query form for links between pages.
func selectionQuery(sel analytics.Selection) string {
	q := url.Values{}
	parties := sel.Parties()
	if len(parties) == 0 {
		q.Set("party", "")
	}
	for _, p := range parties {
		q.Add("party", p)
	}
	return q.Encode()
}

func parseSortKey(r *http.Request) analytics.SortKey {
	if key, ok := analytics.ParseSortKey(r.URL.Query().Get("sort")); ok {
		return key
	}
	return analytics.SortByLikes
}

// parseTopN returns the positive integer top parameter, or def.
func parseTopN(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("top"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// partyOption is one sidebar checkbox.
type partyOption struct {
	Name     string
	Selected bool
}

func partyOptions(sel analytics.Selection) []partyOption {
	var opts []partyOption
	for _, p := range party.All() {
		opts = append(opts, partyOption{Name: p, Selected: sel.Contains(p)})
	}
	return opts
}
