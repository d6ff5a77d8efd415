package analytics

import (
	"testing"

	"github.com/TobiSchelling/PartyPulse/internal/party"
)

func TestProject(t *testing.T) {
	r := rec("4", "RaedSalah", "Sheikh Raed Salah", "Islamic/Independent", 7, 9, "2021-05-02T12:00:00Z")
	tw := Project(r)

	if tw.ID != "4" || tw.Text != "tweet 4" || tw.URL != r.URL || tw.CreatedAt != r.CreatedAt {
		t.Errorf("unexpected projection: %+v", tw)
	}
	if tw.Party != "Islamic / Independent" {
		t.Errorf("expected normalized party, got %q", tw.Party)
	}
	if tw.Engagement != 9 {
		t.Errorf("expected engagement from virality score, got %d", tw.Engagement)
	}
	if tw.Author != "Sheikh Raed Salah" {
		t.Errorf("expected display name as author, got %q", tw.Author)
	}
}

func TestProjectAuthorFallsBackToUsername(t *testing.T) {
	tw := Project(rec("6", "AidaTuma", "", "Hadash-Ta'al", 10, 12, ""))
	if tw.Author != "AidaTuma" {
		t.Errorf("expected username fallback, got %q", tw.Author)
	}
}

func TestProjectAllKeepsOrder(t *testing.T) {
	records := sampleRecords()
	tweets := ProjectAll(records)
	if len(tweets) != len(records) {
		t.Fatalf("expected %d tweets, got %d", len(records), len(tweets))
	}
	for i := range records {
		if tweets[i].ID != records[i].ID {
			t.Errorf("position %d: expected id %s, got %s", i, records[i].ID, tweets[i].ID)
		}
	}
	if tweets[4].Party != party.Activists {
		t.Errorf("expected Activists, got %q", tweets[4].Party)
	}
}

func TestRoundDivHalfUp(t *testing.T) {
	tests := []struct {
		sum  int64
		n    int
		want int64
	}{
		{0, 3, 0},
		{1, 2, 1},  // 0.5
		{3, 2, 2},  // 1.5
		{5, 2, 3},  // 2.5
		{1, 3, 0},  // 0.33
		{2, 3, 1},  // 0.67
		{7, 4, 2},  // 1.75
		{9, 4, 2},  // 2.25
		{10, 4, 3}, // 2.5
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := roundDiv(tt.sum, tt.n); got != tt.want {
			t.Errorf("roundDiv(%d, %d) = %d, want %d", tt.sum, tt.n, got, tt.want)
		}
	}
}
