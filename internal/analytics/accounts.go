package analytics

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/party"
)

// AccountSummary rolls up the tweets of one account. Accounts are keyed by
// lower-cased username.
type AccountSummary struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	Party        string `json:"party"`
	TweetCount   int    `json:"tweetCount"`
	AverageLikes int64  `json:"averageLikes"`
}

type accountAcc struct {
	displayName string
	party       string
	tweets      int
	totalLikes  int64
}

// AggregateByAccount groups records by lower-cased username. When an
// account shows conflicting display names or groups, the first record
// wins. The result is sorted by party, then display name, using English
// collation.
func AggregateByAccount(records []dataset.RawRecord) []AccountSummary {
	accs := make(map[string]*accountAcc)
	var order []string

	for _, r := range records {
		key := strings.ToLower(r.Username)
		acc, ok := accs[key]
		if !ok {
			accs[key] = &accountAcc{
				displayName: authorName(r),
				party:       party.Normalize(r.Group),
				tweets:      1,
				totalLikes:  r.Likes,
			}
			order = append(order, key)
			continue
		}
		acc.tweets++
		acc.totalLikes += r.Likes
	}

	accounts := make([]AccountSummary, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		accounts = append(accounts, AccountSummary{
			ID:           key,
			Username:     key,
			DisplayName:  acc.displayName,
			Party:        acc.party,
			TweetCount:   acc.tweets,
			AverageLikes: roundDiv(acc.totalLikes, acc.tweets),
		})
	}

	// Collators keep internal buffers, so each call gets its own.
	col := collate.New(language.English)
	sort.SliceStable(accounts, func(i, j int) bool {
		a, b := accounts[i], accounts[j]
		if c := col.CompareString(a.Party, b.Party); c != 0 {
			return c < 0
		}
		return col.CompareString(a.DisplayName, b.DisplayName) < 0
	})
	return accounts
}
