package analytics

import (
	"sort"
	"strings"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/party"
)

const (
	NoTopicsPlaceholder     = "No topics available"
	NoNarrativesPlaceholder = "No narratives available"

	leadingTopicLimit = 5
	viralTweetLimit   = 3
)

// PartyComparisonData is the side-by-side bundle shown for one party.
type PartyComparisonData struct {
	Party         string   `json:"party"`
	LeadingTopics []string `json:"leadingTopics"`
	Narratives    []string `json:"narratives"`
	ViralTweets   []Tweet  `json:"viralTweets"`
}

// CompareParties builds one bundle per party, sorted by party name. The
// parties are the canonical ones plus any other label present in either
// input.
func CompareParties(topics []dataset.TopicNarrativeRecord, tweets []Tweet) []PartyComparisonData {
	topicsByParty := make(map[string][]string)
	narrativesByParty := make(map[string][]string)
	tweetsByParty := make(map[string][]Tweet)

	parties := make(map[string]struct{})
	for _, p := range party.All() {
		parties[p] = struct{}{}
	}
	for _, rec := range topics {
		p := party.Normalize(rec.Group)
		parties[p] = struct{}{}
		topicsByParty[p] = append(topicsByParty[p], rec.TopTopics...)
		narrativesByParty[p] = append(narrativesByParty[p], rec.Narratives...)
	}
	for _, t := range tweets {
		parties[t.Party] = struct{}{}
		tweetsByParty[t.Party] = append(tweetsByParty[t.Party], t)
	}

	names := make([]string, 0, len(parties))
	for p := range parties {
		names = append(names, p)
	}
	sort.Strings(names)

	out := make([]PartyComparisonData, 0, len(names))
	for _, p := range names {
		leading := LeadingTopics(topicsByParty[p], leadingTopicLimit)
		if len(leading) == 0 {
			leading = []string{NoTopicsPlaceholder}
		}
		narratives := uniqueNarratives(narrativesByParty[p])
		if len(narratives) == 0 {
			narratives = []string{NoNarrativesPlaceholder}
		}
		out = append(out, PartyComparisonData{
			Party:         p,
			LeadingTopics: leading,
			Narratives:    narratives,
			ViralTweets:   topByEngagement(tweetsByParty[p], viralTweetLimit),
		})
	}
	return out
}

// LeadingTopics counts topics by their trimmed lower-case form and returns
// the limit most frequent, each spelled as its first occurrence. Equal
// counts keep first-encounter order. Blank topics are ignored.
func LeadingTopics(topics []string, limit int) []string {
	type entry struct {
		key     string
		display string
		count   int
	}
	var entries []*entry
	index := make(map[string]*entry)

	for _, raw := range topics {
		key := strings.TrimSpace(strings.ToLower(raw))
		if key == "" {
			continue
		}
		if e, ok := index[key]; ok {
			e.count++
			continue
		}
		e := &entry{key: key, display: raw, count: 1}
		index[key] = e
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.display
	}
	return out
}

// uniqueNarratives drops exact duplicates and blanks, keeping first
// occurrences in order.
func uniqueNarratives(narratives []string) []string {
	seen := make(map[string]struct{}, len(narratives))
	var out []string
	for _, n := range narratives {
		if strings.TrimSpace(n) == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func topByEngagement(tweets []Tweet, limit int) []Tweet {
	ranked := make([]Tweet, len(tweets))
	copy(ranked, tweets)
	sortDescending(ranked, SortByEngagement)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
