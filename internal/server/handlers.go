package server

import (
	"html/template"
	"net/http"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
)

// page carries what base.html needs on every page.
type page struct {
	Tab       string
	Parties   []partyOption
	Query     template.URL
	NoParties bool
}

func (s *Server) newPage(tab string, sel analytics.Selection) page {
	return page{
		Tab:       tab,
		Parties:   partyOptions(sel),
		Query:     template.URL(selectionQuery(sel)),
		NoParties: sel.Empty(),
	}
}

type chartBar struct {
	Party      string
	TweetCount int
	Width      int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r)
	summary := analytics.Summarize(s.engine.DashboardData().Parties, sel)

	max := 0
	for _, p := range summary.Parties {
		if p.TweetCount > max {
			max = p.TweetCount
		}
	}
	bars := make([]chartBar, 0, len(summary.Parties))
	for _, p := range summary.Parties {
		bars = append(bars, chartBar{Party: p.Party, TweetCount: p.TweetCount, Width: percent(p.TweetCount, max)})
	}

	s.render(w, "index.html", map[string]any{
		"Page":    s.newPage("overview", sel),
		"Summary": summary,
		"Bars":    bars,
	})
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r)
	s.render(w, "accounts.html", map[string]any{
		"Page":     s.newPage("accounts", sel),
		"Accounts": analytics.FilterAccounts(s.engine.AccountSummaries(), sel),
	})
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	tweets := s.engine.TweetsByUsername(username)
	if len(tweets) == 0 {
		http.NotFound(w, r)
		return
	}

	s.render(w, "account.html", map[string]any{
		"Page":     s.newPage("accounts", parseSelection(r)),
		"Username": username,
		"Author":   tweets[0].Author,
		"Party":    tweets[0].Party,
		"Tweets":   tweets,
	})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r)
	s.render(w, "topics.html", map[string]any{
		"Page":   s.newPage("topics", sel),
		"Groups": analytics.TopicsByParty(s.engine.TopicsAndNarratives(), sel),
	})
}

func (s *Server) handleViral(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r)
	key := parseSortKey(r)
	topN := parseTopN(r, s.opts.ViralTopN)

	matching := analytics.FilterTweets(s.engine.ViralTweets(), sel)
	s.render(w, "viral.html", map[string]any{
		"Page":     s.newPage("viral", sel),
		"Tweets":   analytics.RankTweets(matching, key, sel, topN),
		"Total":    len(matching),
		"Sort":     string(key),
		"TopN":     topN,
		"TopNOpts": analytics.TopNOptions,
		"SortOpts": []analytics.SortKey{analytics.SortByLikes, analytics.SortByRetweets, analytics.SortByReplies, analytics.SortByEngagement},
	})
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r)
	s.render(w, "compare.html", map[string]any{
		"Page":    s.newPage("compare", sel),
		"Parties": analytics.FilterComparison(s.engine.PartyComparisonData(), sel),
	})
}
