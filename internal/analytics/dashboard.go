package analytics

import "github.com/TobiSchelling/PartyPulse/internal/dataset"

// DashboardData carries the overview KPIs and per-party statistics.
type DashboardData struct {
	Parties           []PartyStats `json:"parties"`
	TotalAccounts     int          `json:"totalAccounts"`
	TotalTweets       int          `json:"totalTweets"`
	AverageLikes      int64        `json:"averageLikes"`
	AverageEngagement int64        `json:"averageEngagement"`
}

// BuildDashboard computes the overview over the whole dataset. Accounts are
// counted per party, so an account tweeting under two labels counts twice.
func BuildDashboard(records []dataset.RawRecord) DashboardData {
	parties := AggregateByParty(records)

	var totalAccounts int
	for _, p := range parties {
		totalAccounts += p.TotalAccounts
	}

	var likes, engagement int64
	for _, r := range records {
		likes += r.Likes
		engagement += r.ViralityScore
	}

	return DashboardData{
		Parties:           parties,
		TotalAccounts:     totalAccounts,
		TotalTweets:       len(records),
		AverageLikes:      roundDiv(likes, len(records)),
		AverageEngagement: roundDiv(engagement, len(records)),
	}
}

// Summarize recomputes the KPIs for the selected parties only: totals are
// summed across them and averages are the rounded mean of their averages.
func Summarize(parties []PartyStats, sel Selection) DashboardData {
	d := DashboardData{Parties: []PartyStats{}}

	var likes, engagement int64
	for _, p := range parties {
		if !sel.Contains(p.Party) {
			continue
		}
		d.Parties = append(d.Parties, p)
		d.TotalAccounts += p.TotalAccounts
		d.TotalTweets += p.TweetCount
		likes += p.AverageLikes
		engagement += p.AverageEngagement
	}

	d.AverageLikes = roundDiv(likes, len(d.Parties))
	d.AverageEngagement = roundDiv(engagement, len(d.Parties))
	return d
}
