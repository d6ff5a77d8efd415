package analytics

import (
	"sort"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/party"
)

// PartyTopics groups the annotated accounts of one party for the topics
// and narratives view.
type PartyTopics struct {
	Party    string                         `json:"party"`
	Accounts []dataset.TopicNarrativeRecord `json:"accounts"`
}

// TopicsByParty groups annotation records of the selected parties by
// normalized party. Parties are sorted by name; accounts keep input order.
func TopicsByParty(records []dataset.TopicNarrativeRecord, sel Selection) []PartyTopics {
	grouped := make(map[string][]dataset.TopicNarrativeRecord)
	for _, rec := range records {
		p := party.Normalize(rec.Group)
		if !sel.Contains(p) {
			continue
		}
		grouped[p] = append(grouped[p], rec)
	}

	out := make([]PartyTopics, 0, len(grouped))
	for p, accounts := range grouped {
		out = append(out, PartyTopics{Party: p, Accounts: accounts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Party < out[j].Party })
	return out
}
