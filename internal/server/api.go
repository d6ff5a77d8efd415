package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		zap.S().Warnf("Error writing JSON response: %v", err)
	}
}

func (s *Server) apiDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, analytics.Summarize(s.engine.DashboardData().Parties, parseSelection(r)))
}

func (s *Server) apiAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, analytics.FilterAccounts(s.engine.AccountSummaries(), parseSelection(r)))
}

func (s *Server) apiAccountTweets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.engine.TweetsByUsername(r.PathValue("username")))
}

func (s *Server) apiViral(w http.ResponseWriter, r *http.Request) {
	// Without top the whole ranking is returned.
	writeJSON(w, analytics.RankTweets(s.engine.ViralTweets(), parseSortKey(r), parseSelection(r), parseTopN(r, 0)))
}

func (s *Server) apiTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, analytics.FilterTopics(s.engine.TopicsAndNarratives(), parseSelection(r)))
}

func (s *Server) apiCompare(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, analytics.FilterComparison(s.engine.PartyComparisonData(), parseSelection(r)))
}
