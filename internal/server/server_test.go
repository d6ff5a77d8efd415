package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	ds := &dataset.Dataset{
		Tweets: []dataset.RawRecord{
			{ID: "1", Username: "ayodeh", DisplayName: "Ayman Odeh", Group: "Hadash-Ta'al", Text: "first", CreatedAt: "2021-05-01T10:00:00Z", Likes: 100, Retweets: 10, Replies: 1, ViralityScore: 150},
			{ID: "2", Username: "mnsorabbas", DisplayName: "Mansour Abbas", Group: "Ra'am", Text: "second", CreatedAt: "2021-05-02T10:00:00Z", Likes: 40, Retweets: 30, Replies: 2, ViralityScore: 60},
			{ID: "3", Username: "haneenzoabi", DisplayName: "Haneen Zoabi", Group: "Activist", Text: "third", CreatedAt: "2021-05-03T10:00:00Z", Likes: 300, Retweets: 5, Replies: 9, ViralityScore: 420},
		},
		Topics: []dataset.TopicNarrativeRecord{
			{Username: "ayodeh", DisplayName: "Ayman Odeh", Group: "Hadash-Ta'al", TopTopics: []string{"Economy"}, Narratives: []string{"**Equality** matters"}},
			{Username: "mnsorabbas", DisplayName: "Mansour Abbas", Group: "Ra'am", TopTopics: []string{"Coalition politics"}},
		},
	}
	srv, err := New(analytics.NewEngine(ds), Options{ViralTopN: 10})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPages(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		target string
		want   string
	}{
		{"/", "Tweets per party"},
		{"/accounts", "Haneen Zoabi"},
		{"/accounts/AYODEH", "first"},
		{"/topics", "Coalition politics"},
		{"/viral", "Showing top 3 of 3 tweets"},
		{"/compare", "<strong>Equality</strong> matters"},
	}
	for _, tt := range tests {
		rec := get(t, srv, tt.target)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", tt.target, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("%s: expected %q in response body", tt.target, tt.want)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: unexpected content type %q", tt.target, ct)
		}
	}
}

func TestAccountNotFound(t *testing.T) {
	rec := get(t, testServer(t), "/accounts/nobody")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, testServer(t), "/nonexistent")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestViralPageTopN(t *testing.T) {
	rec := get(t, testServer(t), "/viral?top=2&sort=retweets")
	body := rec.Body.String()
	if !strings.Contains(body, "Showing top 2 of 3 tweets") {
		t.Error("expected caption for top 2")
	}
	// Retweet order is second (30), first (10); third (5) is cut.
	if strings.Contains(body, ">third<") {
		t.Error("expected third tweet to be cut from the ranking")
	}
	if strings.Index(body, "second") > strings.Index(body, "first") {
		t.Error("expected ranking by retweets")
	}
}

func TestSidebarReflectsSelection(t *testing.T) {
	body := get(t, testServer(t), "/accounts?party=Activists").Body.String()
	if !strings.Contains(body, `value="Activists" checked`) {
		t.Error("expected Activists to be checked")
	}
	if strings.Contains(body, `value="Islamic / Independent" checked`) {
		t.Error("expected Islamic / Independent to be unchecked")
	}
	if strings.Contains(body, "Mansour Abbas") {
		t.Error("expected Ra'am accounts to be filtered out")
	}
}

func TestNoPartiesSelected(t *testing.T) {
	body := get(t, testServer(t), "/?party=").Body.String()
	if !strings.Contains(body, "No parties selected.") {
		t.Error("expected empty selection notice")
	}
}

func TestAPIDashboard(t *testing.T) {
	srv := testServer(t)

	var all analytics.DashboardData
	decode(t, get(t, srv, "/api/dashboard"), &all)
	if all.TotalTweets != 3 || all.TotalAccounts != 3 {
		t.Errorf("unexpected totals: %+v", all)
	}

	var none analytics.DashboardData
	decode(t, get(t, srv, "/api/dashboard?party="), &none)
	if none.TotalTweets != 0 || len(none.Parties) != 0 {
		t.Errorf("expected empty dashboard, got %+v", none)
	}
}

func TestAPIViral(t *testing.T) {
	var tweets []analytics.Tweet
	decode(t, get(t, testServer(t), "/api/tweets/viral?sort=replies"), &tweets)

	var ids []string
	for _, tw := range tweets {
		ids = append(ids, tw.ID)
	}
	if diff := cmp.Diff([]string{"3", "2", "1"}, ids); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
}

func TestAPIAccountTweets(t *testing.T) {
	var tweets []analytics.Tweet
	decode(t, get(t, testServer(t), "/api/accounts/nobody/tweets"), &tweets)
	if tweets == nil || len(tweets) != 0 {
		t.Errorf("expected empty array, got %#v", tweets)
	}
}

func TestAPITopicsAndCompare(t *testing.T) {
	srv := testServer(t)

	var topics []dataset.TopicNarrativeRecord
	decode(t, get(t, srv, "/api/topics?party=Hadash-Ta%27al"), &topics)
	if len(topics) != 1 || topics[0].Username != "ayodeh" {
		t.Errorf("unexpected topics: %+v", topics)
	}

	var compare []analytics.PartyComparisonData
	decode(t, get(t, srv, "/api/compare"), &compare)
	if len(compare) != 4 {
		t.Errorf("expected the 4 canonical parties, got %d", len(compare))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	get(t, srv, "/")
	rec := get(t, srv, "/metrics")
	if !strings.Contains(rec.Body.String(), "partypulse_http_requests_total") {
		t.Error("expected request counter in metrics output")
	}
}

func TestStaticFiles(t *testing.T) {
	rec := get(t, testServer(t), "/static/style.css")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		target string
		want   []string
	}{
		{"/", []string{"Hadash-Ta'al", "Ra'am", "Islamic / Independent", "Activists"}},
		{"/?party=", nil},
		{"/?party=&party=Activist", []string{"Activists"}},
	}
	for _, tt := range tests {
		got := parseSelection(httptest.NewRequest("GET", tt.target, nil)).Parties()
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%s: selection mismatch (-want +got):\n%s", tt.target, diff)
		}
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}
