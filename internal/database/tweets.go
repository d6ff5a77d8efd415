package database

import (
	"database/sql"
	"fmt"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// ReplaceTweets swaps the stored tweets for records in one transaction.
// Insertion order is kept and returned by GetAllTweets.
func (db *DB) ReplaceTweets(records []dataset.RawRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tweets"); err != nil {
		return fmt.Errorf("clearing tweets: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO tweets
		(tweet_id, url, username, display_name, group_label, label, text, created_at,
		 likes, retweets, replies, quotes, virality_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.ID, r.URL, r.Username, r.DisplayName, r.Group, r.Label, r.Text, r.CreatedAt,
			r.Likes, r.Retweets, r.Replies, r.Quotes, r.ViralityScore); err != nil {
			return fmt.Errorf("inserting tweet %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// GetAllTweets returns every stored tweet in import order.
func (db *DB) GetAllTweets() ([]dataset.RawRecord, error) {
	rows, err := db.conn.Query(
		`SELECT tweet_id, url, username, display_name, group_label, label, text, created_at,
		likes, retweets, replies, quotes, virality_score
		FROM tweets ORDER BY seq`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTweets(rows)
}

// GetTweetsByUsername returns the stored tweets of one account, matched
// case-insensitively, in import order.
func (db *DB) GetTweetsByUsername(username string) ([]dataset.RawRecord, error) {
	rows, err := db.conn.Query(
		`SELECT tweet_id, url, username, display_name, group_label, label, text, created_at,
		likes, retweets, replies, quotes, virality_score
		FROM tweets WHERE username = ? COLLATE NOCASE ORDER BY seq`, username,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTweets(rows)
}

func scanTweets(rows *sql.Rows) ([]dataset.RawRecord, error) {
	records := []dataset.RawRecord{}
	for rows.Next() {
		var r dataset.RawRecord
		if err := rows.Scan(&r.ID, &r.URL, &r.Username, &r.DisplayName, &r.Group, &r.Label, &r.Text, &r.CreatedAt,
			&r.Likes, &r.Retweets, &r.Replies, &r.Quotes, &r.ViralityScore); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
