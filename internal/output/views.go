package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
)

const excerptLen = 80

// Dashboard prints the overview KPIs followed by the per-party table.
func Dashboard(w io.Writer, d analytics.DashboardData) error {
	fmt.Fprintf(w, "Accounts: %d  Tweets: %d  Avg likes: %d  Avg engagement: %d\n\n",
		d.TotalAccounts, d.TotalTweets, d.AverageLikes, d.AverageEngagement)

	t := NewTable(w, []string{"Party", "Tweets", "Accounts", "Avg Likes", "Avg Engagement"})
	for _, p := range d.Parties {
		t.AddRow(p.Party, itoa(p.TweetCount), itoa(p.TotalAccounts), i64(p.AverageLikes), i64(p.AverageEngagement))
	}
	return t.Render()
}

// Accounts prints one row per account.
func Accounts(w io.Writer, accounts []analytics.AccountSummary) error {
	t := NewTable(w, []string{"Username", "Name", "Party", "Tweets", "Avg Likes"})
	for _, a := range accounts {
		t.AddRow(a.Username, a.DisplayName, a.Party, itoa(a.TweetCount), i64(a.AverageLikes))
	}
	return t.Render()
}

// Tweets prints a ranked or chronological tweet list.
func Tweets(w io.Writer, tweets []analytics.Tweet) error {
	t := NewTable(w, []string{"#", "Author", "Party", "Likes", "RTs", "Replies", "Engagement", "Text"})
	for i, tw := range tweets {
		t.AddRow(itoa(i+1), tw.Author, tw.Party, i64(tw.Likes), i64(tw.Retweets), i64(tw.Replies), i64(tw.Engagement), Excerpt(tw.Text, excerptLen))
	}
	return t.Render()
}

// Topics prints every annotated account grouped by party.
func Topics(w io.Writer, groups []analytics.PartyTopics) error {
	t := NewTable(w, []string{"Party", "Account", "Top Topics", "Narratives"})
	for _, g := range groups {
		for _, a := range g.Accounts {
			name := a.DisplayName
			if name == "" {
				name = a.Username
			}
			t.AddRow(g.Party, name, joinNonBlank(a.TopTopics), joinNonBlank(a.Narratives))
		}
	}
	return t.Render()
}

// Compare prints one block per party with its leading topics, narratives
// and most engaging tweets.
func Compare(w io.Writer, data []analytics.PartyComparisonData) error {
	for i, d := range data {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s ==\n", d.Party)
		fmt.Fprintf(w, "Leading topics: %s\n", strings.Join(d.LeadingTopics, ", "))
		fmt.Fprintln(w, "Narratives:")
		for _, n := range d.Narratives {
			fmt.Fprintf(w, "  - %s\n", n)
		}
		if len(d.ViralTweets) == 0 {
			fmt.Fprintln(w, "No tweets.")
			continue
		}
		if err := Tweets(w, d.ViralTweets); err != nil {
			return err
		}
	}
	return nil
}

// Excerpt shortens s to at most n runes, collapsing whitespace.
func Excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func joinNonBlank(items []string) string {
	var kept []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			kept = append(kept, it)
		}
	}
	return strings.Join(kept, "; ")
}

func itoa(n int) string { return strconv.Itoa(n) }
func i64(n int64) string { return strconv.FormatInt(n, 10) }
