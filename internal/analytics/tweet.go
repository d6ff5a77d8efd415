// Package analytics derives the dashboard views from the static tweet
// dataset. Every function here is pure: it reads its inputs, allocates its
// output and keeps no state between calls.
package analytics

import (
	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/party"
)

// Tweet is the public shape of a tweet consumed by the views.
type Tweet struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Author     string `json:"author"`
	Party      string `json:"party"`
	Likes      int64  `json:"likes"`
	Retweets   int64  `json:"retweets"`
	Replies    int64  `json:"replies"`
	Engagement int64  `json:"engagement"`
	CreatedAt  string `json:"createdAt"`
	URL        string `json:"url"`
}

// Project maps one raw record to a Tweet. The author falls back to the
// username when the record has no display name.
func Project(raw dataset.RawRecord) Tweet {
	return Tweet{
		ID:         raw.ID,
		Text:       raw.Text,
		Author:     authorName(raw),
		Party:      party.Normalize(raw.Group),
		Likes:      raw.Likes,
		Retweets:   raw.Retweets,
		Replies:    raw.Replies,
		Engagement: raw.ViralityScore,
		CreatedAt:  raw.CreatedAt,
		URL:        raw.URL,
	}
}

// ProjectAll projects every record, keeping dataset order.
func ProjectAll(records []dataset.RawRecord) []Tweet {
	tweets := make([]Tweet, len(records))
	for i, r := range records {
		tweets[i] = Project(r)
	}
	return tweets
}

func authorName(raw dataset.RawRecord) string {
	if raw.DisplayName != "" {
		return raw.DisplayName
	}
	return raw.Username
}

// roundDiv divides a non-negative sum by n, rounding half up.
func roundDiv(sum int64, n int) int64 {
	if n <= 0 {
		return 0
	}
	d := int64(n)
	return (2*sum + d) / (2 * d)
}
