package analytics

import (
	"sort"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/party"
)

// Selection is the set of parties a view is filtered to. The zero value
// selects nothing.
type Selection struct {
	parties map[string]struct{}
}

// SelectAll selects every canonical party.
func SelectAll() Selection {
	return Select(party.All()...)
}

// Select selects the given parties. Raw labels are normalized first.
func Select(parties ...string) Selection {
	s := Selection{parties: make(map[string]struct{}, len(parties))}
	for _, p := range parties {
		s.parties[party.Normalize(p)] = struct{}{}
	}
	return s
}

// Contains reports whether p is selected.
func (s Selection) Contains(p string) bool {
	_, ok := s.parties[p]
	return ok
}

// Empty reports whether no party is selected.
func (s Selection) Empty() bool {
	return len(s.parties) == 0
}

// Parties returns the selected parties in sidebar order, followed by any
// non-canonical selections.
func (s Selection) Parties() []string {
	var out []string
	for _, p := range party.All() {
		if s.Contains(p) {
			out = append(out, p)
		}
	}
	var extra []string
	for p := range s.parties {
		if !party.IsCanonical(p) {
			extra = append(extra, p)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// FilterTweets keeps tweets of selected parties, in order.
func FilterTweets(tweets []Tweet, sel Selection) []Tweet {
	out := []Tweet{}
	for _, t := range tweets {
		if sel.Contains(t.Party) {
			out = append(out, t)
		}
	}
	return out
}

// FilterAccounts keeps accounts of selected parties, in order.
func FilterAccounts(accounts []AccountSummary, sel Selection) []AccountSummary {
	out := []AccountSummary{}
	for _, a := range accounts {
		if sel.Contains(a.Party) {
			out = append(out, a)
		}
	}
	return out
}

// FilterComparison keeps comparison bundles of selected parties, in order.
func FilterComparison(data []PartyComparisonData, sel Selection) []PartyComparisonData {
	out := []PartyComparisonData{}
	for _, d := range data {
		if sel.Contains(d.Party) {
			out = append(out, d)
		}
	}
	return out
}

// FilterTopics keeps annotation records whose normalized group is
// selected, in order.
func FilterTopics(records []dataset.TopicNarrativeRecord, sel Selection) []dataset.TopicNarrativeRecord {
	out := []dataset.TopicNarrativeRecord{}
	for _, r := range records {
		if sel.Contains(party.Normalize(r.Group)) {
			out = append(out, r)
		}
	}
	return out
}
