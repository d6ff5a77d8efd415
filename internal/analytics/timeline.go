package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// createdAtLayouts are tried in order before falling back to dateparse.
// The first one is the format the scraper exports.
var createdAtLayouts = []string{
	time.RubyDate,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseCreatedAt parses a tweet timestamp. The second return value is false
// when the timestamp could not be understood.
func ParseCreatedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseAny(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// TweetsByUsername returns the tweets of one account, matched
// case-insensitively, most recent first. Tweets with unparsable timestamps
// go last, keeping dataset order among themselves.
func TweetsByUsername(records []dataset.RawRecord, username string) []Tweet {
	key := strings.ToLower(username)

	type dated struct {
		tweet Tweet
		at    time.Time
		ok    bool
	}
	var matched []dated
	for _, r := range records {
		if strings.ToLower(r.Username) != key {
			continue
		}
		at, ok := ParseCreatedAt(r.CreatedAt)
		matched = append(matched, dated{tweet: Project(r), at: at, ok: ok})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.at.After(b.at)
	})

	tweets := make([]Tweet, len(matched))
	for i, m := range matched {
		tweets[i] = m.tweet
	}
	return tweets
}
