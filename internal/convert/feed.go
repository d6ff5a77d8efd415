package convert

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// ParseFeed converts a saved RSS or Atom timeline (for example a Nitter
// account feed) into dataset records. Feeds carry no engagement counts, so
// those are zero. Items without a link are skipped.
func ParseFeed(r io.Reader, reg Registry) ([]dataset.RawRecord, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	records := []dataset.RawRecord{}
	for _, item := range feed.Items {
		rec, ok := feedItem(item, reg)
		if !ok {
			zap.S().Warnf("Skipping feed item without link: %q", item.Title)
			continue
		}
		records = append(records, rec)
	}
	zap.S().Debugf("Parsed %d of %d items from feed %q", len(records), len(feed.Items), feed.Title)
	return records, nil
}

func feedItem(item *gofeed.Item, reg Registry) (dataset.RawRecord, bool) {
	link := item.Link
	if link == "" && strings.HasPrefix(item.GUID, "http") {
		link = item.GUID
	}
	if link == "" {
		return dataset.RawRecord{}, false
	}

	username := UsernameFromURL(link)
	group, label := reg.Lookup(username)

	id := statusIDFromURL(link)
	if id == "" {
		id = item.GUID
	}

	var text string
	switch {
	case item.Content != "":
		text = htmlToText(item.Content, link)
	case item.Description != "":
		text = htmlToText(item.Description, link)
	}
	if text == "" {
		text = strings.TrimSpace(item.Title)
	}

	var createdAt string
	if item.PublishedParsed != nil {
		createdAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else if item.UpdatedParsed != nil {
		createdAt = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	return dataset.RawRecord{
		ID:          id,
		URL:         link,
		Username:    username,
		DisplayName: label,
		Group:       group,
		Label:       label,
		Text:        text,
		CreatedAt:   createdAt,
	}, true
}
