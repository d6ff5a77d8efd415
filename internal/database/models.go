package database

// ImportReport records one `partypulse import` run.
type ImportReport struct {
	ID         int64
	TweetsPath string
	TopicsPath string
	TweetCount int
	TopicCount int
	ImportedAt *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	Tweets      int
	Accounts    int
	Groups      int
	Annotations int
	Imports     int
}
