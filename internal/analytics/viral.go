package analytics

import (
	"sort"
	"strings"
)

// SortKey selects the metric a tweet ranking is ordered by.
type SortKey string

const (
	SortByLikes      SortKey = "likes"
	SortByRetweets   SortKey = "retweets"
	SortByReplies    SortKey = "replies"
	SortByEngagement SortKey = "engagement"
)

// TopNOptions are the ranking sizes offered by the viral tweets view.
var TopNOptions = []int{5, 10, 20, 30}

// ParseSortKey parses a sort key, case-insensitively.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByLikes, SortByRetweets, SortByReplies, SortByEngagement:
		return k, true
	}
	return "", false
}

func (k SortKey) value(t Tweet) int64 {
	switch k {
	case SortByRetweets:
		return t.Retweets
	case SortByReplies:
		return t.Replies
	case SortByEngagement:
		return t.Engagement
	default:
		return t.Likes
	}
}

// RankTweets filters tweets to the selected parties, orders them by key
// descending and keeps the first topN. Ties keep input order. topN <= 0
// keeps everything.
func RankTweets(tweets []Tweet, key SortKey, sel Selection, topN int) []Tweet {
	ranked := FilterTweets(tweets, sel)
	sortDescending(ranked, key)
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func sortDescending(tweets []Tweet, key SortKey) {
	sort.SliceStable(tweets, func(i, j int) bool {
		return key.value(tweets[i]) > key.value(tweets[j])
	})
}
