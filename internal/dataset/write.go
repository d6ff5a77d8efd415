package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTweets writes records as a pretty-printed JSON array.
func WriteTweets(path string, records []RawRecord) error {
	if records == nil {
		records = []RawRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding tweets: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// WriteTopicsNarratives writes records as a JSON object keyed by username,
// in the order given.
func WriteTopicsNarratives(path string, records []TopicNarrativeRecord) error {
	data, err := EncodeTopicsNarratives(records)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// EncodeTopicsNarratives renders records as an ordered JSON object.
func EncodeTopicsNarratives(records []TopicNarrativeRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, rec := range records {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := json.Marshal(rec.Username)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", rec.Username, err)
		}
		value, err := json.MarshalIndent(rec, "  ", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding record %q: %w", rec.Username, err)
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	if len(records) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
