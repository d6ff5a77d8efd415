package analytics

import (
	"sync"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// Engine answers the dashboard queries for one immutable dataset. Dataset
// wide views are computed on first use and shared afterwards, so callers
// must treat returned slices as read-only. An Engine is safe for
// concurrent use.
type Engine struct {
	ds *dataset.Dataset

	tweets     func() []Tweet
	dashboard  func() DashboardData
	accounts   func() []AccountSummary
	comparison func() []PartyComparisonData
}

// NewEngine creates an Engine over ds.
func NewEngine(ds *dataset.Dataset) *Engine {
	e := &Engine{ds: ds}
	e.tweets = sync.OnceValue(func() []Tweet {
		return ProjectAll(ds.Tweets)
	})
	e.dashboard = sync.OnceValue(func() DashboardData {
		return BuildDashboard(ds.Tweets)
	})
	e.accounts = sync.OnceValue(func() []AccountSummary {
		return AggregateByAccount(ds.Tweets)
	})
	e.comparison = sync.OnceValue(func() []PartyComparisonData {
		return CompareParties(ds.Topics, e.tweets())
	})
	return e
}

// DashboardData returns the overview for the whole dataset.
func (e *Engine) DashboardData() DashboardData {
	return e.dashboard()
}

// AccountSummaries returns every account, sorted by party and display name.
func (e *Engine) AccountSummaries() []AccountSummary {
	return e.accounts()
}

// ViralTweets returns every tweet projected, in dataset order.
func (e *Engine) ViralTweets() []Tweet {
	return e.tweets()
}

// TweetsByUsername returns one account's tweets, most recent first.
func (e *Engine) TweetsByUsername(username string) []Tweet {
	return TweetsByUsername(e.ds.Tweets, username)
}

// TopicsAndNarratives returns the annotation records in dataset order.
func (e *Engine) TopicsAndNarratives() []dataset.TopicNarrativeRecord {
	return e.ds.Topics
}

// PartyComparisonData returns the per-party comparison bundles.
func (e *Engine) PartyComparisonData() []PartyComparisonData {
	return e.comparison()
}

// TweetCount returns the number of records in the dataset.
func (e *Engine) TweetCount() int {
	return len(e.ds.Tweets)
}
