package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// ApifyItem is one tweet as exported by the Apify Twitter scraper. Only the
// fields the dataset needs are decoded.
type ApifyItem struct {
	ID           flexString `json:"id"`
	URL          string     `json:"url"`
	Text         string     `json:"text"`
	CreatedAt    string     `json:"createdAt"`
	LikeCount    *int64     `json:"likeCount"`
	RetweetCount *int64     `json:"retweetCount"`
	ReplyCount   *int64     `json:"replyCount"`
	QuoteCount   *int64     `json:"quoteCount"`
}

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*f = flexString(n.String())
	}
	return nil
}

// DecodeApify reads an Apify export: a JSON array of tweet items.
func DecodeApify(r io.Reader) ([]ApifyItem, error) {
	var items []ApifyItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing apify export: %w", err)
	}
	return items, nil
}

// FromApify normalizes Apify items into dataset records, keeping their
// order. Group and label come from the registry by the handle in the tweet
// URL; missing counts are zero and the virality score is the sum of the
// four counts.
func FromApify(items []ApifyItem, reg Registry) []dataset.RawRecord {
	records := make([]dataset.RawRecord, 0, len(items))
	for _, it := range items {
		username := UsernameFromURL(it.URL)
		group, label := reg.Lookup(username)

		likes, retweets := count(it.LikeCount), count(it.RetweetCount)
		replies, quotes := count(it.ReplyCount), count(it.QuoteCount)

		records = append(records, dataset.RawRecord{
			ID:            string(it.ID),
			URL:           it.URL,
			Username:      username,
			DisplayName:   label,
			Group:         group,
			Label:         label,
			Text:          it.Text,
			CreatedAt:     it.CreatedAt,
			Likes:         likes,
			Retweets:      retweets,
			Replies:       replies,
			Quotes:        quotes,
			ViralityScore: likes + retweets + replies + quotes,
		})
	}
	return records
}

func count(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
