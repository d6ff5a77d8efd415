package analytics

import (
	"strings"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/party"
)

// PartyStats aggregates the tweets of one canonical party.
type PartyStats struct {
	Party             string `json:"party"`
	TweetCount        int    `json:"tweetCount"`
	AverageLikes      int64  `json:"averageLikes"`
	AverageEngagement int64  `json:"averageEngagement"`
	TotalAccounts     int    `json:"totalAccounts"`
}

type partyAcc struct {
	tweets          int
	accounts        map[string]struct{}
	totalLikes      int64
	totalEngagement int64
}

// AggregateByParty groups records by canonical party in a single pass.
// Parties appear in the order they are first encountered; averages are
// rounded once at the end.
func AggregateByParty(records []dataset.RawRecord) []PartyStats {
	accs := make(map[string]*partyAcc)
	var order []string

	for _, r := range records {
		p := party.Normalize(r.Group)
		acc, ok := accs[p]
		if !ok {
			acc = &partyAcc{accounts: make(map[string]struct{})}
			accs[p] = acc
			order = append(order, p)
		}
		acc.tweets++
		acc.accounts[strings.ToLower(r.Username)] = struct{}{}
		acc.totalLikes += r.Likes
		acc.totalEngagement += r.ViralityScore
	}

	stats := make([]PartyStats, 0, len(order))
	for _, p := range order {
		acc := accs[p]
		stats = append(stats, PartyStats{
			Party:             p,
			TweetCount:        acc.tweets,
			AverageLikes:      roundDiv(acc.totalLikes, acc.tweets),
			AverageEngagement: roundDiv(acc.totalEngagement, acc.tweets),
			TotalAccounts:     len(acc.accounts),
		})
	}
	return stats
}
