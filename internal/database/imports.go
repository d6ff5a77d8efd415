package database

import (
	"database/sql"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// InsertImport records a completed import.
func (db *DB) InsertImport(tweetsPath, topicsPath string, tweetCount, topicCount int) (int64, error) {
	result, err := db.conn.Exec(
		`INSERT INTO imports (tweets_path, topics_path, tweet_count, topic_count)
		VALUES (?, ?, ?, ?)`,
		tweetsPath, topicsPath, tweetCount, topicCount,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetLastImport returns the most recent import, or nil if none exists.
func (db *DB) GetLastImport() (*ImportReport, error) {
	row := db.conn.QueryRow(
		`SELECT id, tweets_path, topics_path, tweet_count, topic_count, imported_at
		FROM imports ORDER BY id DESC LIMIT 1`,
	)

	var r ImportReport
	if err := row.Scan(&r.ID, &r.TweetsPath, &r.TopicsPath, &r.TweetCount, &r.TopicCount, &r.ImportedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

// LoadDataset reads the stored snapshot back as a Dataset.
func (db *DB) LoadDataset() (*dataset.Dataset, error) {
	tweets, err := db.GetAllTweets()
	if err != nil {
		return nil, err
	}
	topics, err := db.GetAllTopics()
	if err != nil {
		return nil, err
	}
	return &dataset.Dataset{Tweets: tweets, Topics: topics}, nil
}

// GetStats returns aggregate database statistics.
func (db *DB) GetStats() (*Stats, error) {
	s := &Stats{}

	queries := []struct {
		sql  string
		dest *int
	}{
		{"SELECT COUNT(*) FROM tweets", &s.Tweets},
		{"SELECT COUNT(DISTINCT lower(username)) FROM tweets", &s.Accounts},
		{"SELECT COUNT(DISTINCT group_label) FROM tweets", &s.Groups},
		{"SELECT COUNT(*) FROM topic_annotations", &s.Annotations},
		{"SELECT COUNT(*) FROM imports", &s.Imports},
	}

	for _, q := range queries {
		if err := db.conn.QueryRow(q.sql).Scan(q.dest); err != nil {
			return nil, err
		}
	}

	return s, nil
}
