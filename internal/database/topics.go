package database

import (
	"encoding/json"
	"fmt"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// ReplaceTopics swaps the stored annotation records in one transaction,
// keeping their order.
func (db *DB) ReplaceTopics(records []dataset.TopicNarrativeRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM topic_annotations"); err != nil {
		return fmt.Errorf("clearing annotations: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO topic_annotations (username, display_name, group_label, top_topics, narratives)
		VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		topics, err := marshalList(r.TopTopics)
		if err != nil {
			return err
		}
		narratives, err := marshalList(r.Narratives)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(r.Username, r.DisplayName, r.Group, topics, narratives); err != nil {
			return fmt.Errorf("inserting annotation %s: %w", r.Username, err)
		}
	}

	return tx.Commit()
}

// GetAllTopics returns every stored annotation record in import order.
func (db *DB) GetAllTopics() ([]dataset.TopicNarrativeRecord, error) {
	rows, err := db.conn.Query(
		`SELECT username, display_name, group_label, top_topics, narratives
		FROM topic_annotations ORDER BY seq`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []dataset.TopicNarrativeRecord{}
	for rows.Next() {
		var r dataset.TopicNarrativeRecord
		var topics, narratives string
		if err := rows.Scan(&r.Username, &r.DisplayName, &r.Group, &topics, &narratives); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(topics), &r.TopTopics); err != nil {
			return nil, fmt.Errorf("decoding topics of %s: %w", r.Username, err)
		}
		if err := json.Unmarshal([]byte(narratives), &r.Narratives); err != nil {
			return nil, fmt.Errorf("decoding narratives of %s: %w", r.Username, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding list: %w", err)
	}
	return string(b), nil
}
