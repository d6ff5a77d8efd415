package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoTweetsPath is returned when no tweet dataset path is configured.
var ErrNoTweetsPath = errors.New("no tweets dataset path configured")

var errNotObject = errors.New("topics dataset is not a JSON object")

// Load reads the tweet dataset and the topics side dataset concurrently.
// A broken tweet dataset is an error; a broken topics dataset yields no
// annotations.
func Load(ctx context.Context, tweetsPath, topicsPath string) (*Dataset, error) {
	if tweetsPath == "" {
		return nil, ErrNoTweetsPath
	}

	ds := &Dataset{}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		tweets, err := LoadTweets(tweetsPath)
		if err != nil {
			return err
		}
		ds.Tweets = tweets
		return nil
	})
	g.Go(func() error {
		ds.Topics = LoadTopicsNarratives(topicsPath)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.S().Debugf("Loaded %d tweets and %d topic annotations", len(ds.Tweets), len(ds.Topics))
	return ds, nil
}

// LoadTweets reads a JSON array of raw tweet records.
func LoadTweets(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tweets dataset: %w", err)
	}
	defer f.Close()

	var records []RawRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing tweets dataset %s: %w", path, err)
	}
	return records, nil
}

// LoadTopicsNarratives reads the username-keyed topics dataset and returns
// its records in document order. A missing or malformed file gives an
// empty slice.
func LoadTopicsNarratives(path string) []TopicNarrativeRecord {
	if path == "" {
		return []TopicNarrativeRecord{}
	}

	f, err := os.Open(path)
	if err != nil {
		zap.S().Warnf("Topics dataset unavailable (%s): %v", path, err)
		return []TopicNarrativeRecord{}
	}
	defer f.Close()

	records, err := DecodeTopicsNarratives(f)
	if err != nil {
		zap.S().Warnf("Topics dataset %s could not be parsed: %v", path, err)
		return []TopicNarrativeRecord{}
	}
	return records
}

// DecodeTopicsNarratives decodes a JSON object of username -> record,
// keeping the object's key order. Entries whose values have the wrong
// shape are skipped; a syntax error fails the whole document.
func DecodeTopicsNarratives(r io.Reader) ([]TopicNarrativeRecord, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	records := []TopicNarrativeRecord{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var rec TopicNarrativeRecord
		if err := dec.Decode(&rec); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				zap.S().Warnf("Skipping topics entry %q: %v", key, err)
				continue
			}
			return nil, err
		}
		if rec.Username == "" {
			rec.Username = key
		}
		records = append(records, rec)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return records, nil
}
