package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

func TestAggregateByParty(t *testing.T) {
	stats := AggregateByParty(sampleRecords())

	want := []PartyStats{
		// likes 100+51+10=161/3=53.67, engagement 150+70+12=232/3=77.33
		{Party: "Hadash-Ta'al", TweetCount: 3, AverageLikes: 54, AverageEngagement: 77, TotalAccounts: 2},
		{Party: "Ra'am", TweetCount: 1, AverageLikes: 40, AverageEngagement: 60, TotalAccounts: 1},
		{Party: "Islamic / Independent", TweetCount: 1, AverageLikes: 7, AverageEngagement: 9, TotalAccounts: 1},
		{Party: "Activists", TweetCount: 1, AverageLikes: 300, AverageEngagement: 420, TotalAccounts: 1},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("party stats mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateByPartyCountsEveryRecord(t *testing.T) {
	records := append(sampleRecords(), rec("7", "someone", "Someone", "Likud", 1, 1, ""))
	stats := AggregateByParty(records)

	total := 0
	for _, s := range stats {
		total += s.TweetCount
	}
	if total != len(records) {
		t.Errorf("expected tweet counts to sum to %d, got %d", len(records), total)
	}
	last := stats[len(stats)-1]
	if last.Party != "Likud" {
		t.Errorf("expected unknown label to pass through as its own party, got %q", last.Party)
	}
}

func TestAggregateByPartyHalfRounding(t *testing.T) {
	records := []dataset.RawRecord{
		rec("1", "a", "A", "Ra'am", 1, 2, ""),
		rec("2", "b", "B", "Ra'am", 2, 3, ""),
	}
	stats := AggregateByParty(records)
	if len(stats) != 1 {
		t.Fatalf("expected 1 party, got %d", len(stats))
	}
	if stats[0].AverageLikes != 2 {
		t.Errorf("expected 1.5 to round up to 2, got %d", stats[0].AverageLikes)
	}
	if stats[0].AverageEngagement != 3 {
		t.Errorf("expected 2.5 to round up to 3, got %d", stats[0].AverageEngagement)
	}
}

func TestAggregateByPartyEmpty(t *testing.T) {
	stats := AggregateByParty(nil)
	if len(stats) != 0 {
		t.Errorf("expected no parties, got %d", len(stats))
	}
}
