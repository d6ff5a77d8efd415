package dataset

// RawRecord is one tweet as it appears in the bundled tweet dataset.
// Numeric fields are trusted as non-negative integers and are not validated.
type RawRecord struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	Group         string `json:"group"`
	Label         string `json:"label"`
	Text          string `json:"text"`
	CreatedAt     string `json:"created_at"`
	Likes         int64  `json:"likes"`
	Retweets      int64  `json:"retweets"`
	Replies       int64  `json:"replies"`
	Quotes        int64  `json:"quotes"`
	ViralityScore int64  `json:"virality_score"`
}

// TopicNarrativeRecord holds the topic and narrative annotations for one
// account. It may reference usernames that have no tweets, and vice versa.
type TopicNarrativeRecord struct {
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Group       string   `json:"group"`
	TopTopics   []string `json:"top_topics"`
	Narratives  []string `json:"narratives"`
}

// Dataset is the immutable input of every aggregation.
type Dataset struct {
	Tweets []RawRecord
	Topics []TopicNarrativeRecord
}
