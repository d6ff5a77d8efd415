package annotate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/llm"
)

// mockProvider implements llm.Provider for testing. Replies are keyed by a
// substring of the prompt; unmatched prompts get fallback.
type mockProvider struct {
	replies  map[string]string
	fallback string
	err      error
	requests []llm.Request
}

func (m *mockProvider) Generate(_ context.Context, req llm.Request) (string, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	for needle, reply := range m.replies {
		if strings.Contains(req.Prompt, needle) {
			return reply, nil
		}
	}
	return m.fallback, nil
}

func (m *mockProvider) IsConfigured() bool { return true }
func (m *mockProvider) Name() string       { return "mock" }

func reply(topics, narratives []string) string {
	b, _ := json.Marshal(map[string][]string{"top_topics": topics, "narratives": narratives})
	return string(b)
}

func tweet(id, username, group, text, createdAt string) dataset.RawRecord {
	return dataset.RawRecord{ID: id, Username: username, DisplayName: username + " name", Group: group, Text: text, CreatedAt: createdAt}
}

func TestAnnotate(t *testing.T) {
	records := []dataset.RawRecord{
		tweet("1", "AyOdeh", "Hadash-Ta'al", "about housing", "Thu Apr 29 17:09:14 +0000 2021"),
		tweet("2", "mnsorabbas", "Ra'am", "about coalition", "Fri Apr 30 17:09:14 +0000 2021"),
		tweet("3", "ayodeh", "Hadash-Ta'al", "about economy", "Sat May 01 17:09:14 +0000 2021"),
	}
	provider := &mockProvider{replies: map[string]string{
		"housing":   reply([]string{"Housing", "Economy"}, []string{"Equality"}),
		"coalition": "```json\n" + reply([]string{"a", "b", "c", "d", "e", "f"}, []string{"n1", "n2", "n3", "n4"}) + "\n```",
	}}

	got, result, err := NewAnnotator(provider, Options{}).Annotate(context.Background(), records)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if result.Annotated != 2 || result.Accounts != 2 {
		t.Errorf("unexpected result: %+v", result)
	}

	want := []dataset.TopicNarrativeRecord{
		{Username: "ayodeh", DisplayName: "ayodeh name", Group: "Hadash-Ta'al", TopTopics: []string{"Housing", "Economy", "", "", ""}, Narratives: []string{"Equality"}},
		{Username: "mnsorabbas", DisplayName: "mnsorabbas name", Group: "Ra'am", TopTopics: []string{"a", "b", "c", "d", "e"}, Narratives: []string{"n1", "n2", "n3"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	first := provider.requests[0]
	if !first.JSON || first.System == "" {
		t.Errorf("expected JSON request with system prompt, got %+v", first)
	}
	if strings.Index(first.Prompt, "about economy") > strings.Index(first.Prompt, "about housing") {
		t.Error("expected most recent tweet first in the prompt")
	}
}

func TestAnnotateSkipsInvalidResponses(t *testing.T) {
	records := []dataset.RawRecord{
		tweet("1", "a", "Ra'am", "missing keys", ""),
		tweet("2", "b", "Ra'am", "not json", ""),
		tweet("3", "c", "Ra'am", "   ", ""),
		tweet("4", "d", "Ra'am", "empty narratives", ""),
	}
	provider := &mockProvider{replies: map[string]string{
		"missing keys":     `{"top_topics": ["x"]}`,
		"not json":         "I cannot help with that.",
		"empty narratives": reply([]string{"x"}, []string{}),
	}}

	got, result, err := NewAnnotator(provider, Options{}).Annotate(context.Background(), records)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if result.Skipped != 3 || result.Annotated != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(got) != 1 || got[0].Username != "d" {
		t.Fatalf("expected only account d, got %+v", got)
	}
	if diff := cmp.Diff([]string{""}, got[0].Narratives); diff != "" {
		t.Errorf("narratives mismatch (-want +got):\n%s", diff)
	}
	if len(provider.requests) != 3 {
		t.Errorf("blank account should not reach the model, got %d requests", len(provider.requests))
	}
}

func TestAnnotateProviderError(t *testing.T) {
	records := []dataset.RawRecord{tweet("1", "a", "Ra'am", "text", "")}
	provider := &mockProvider{err: errors.New("boom")}

	got, result, err := NewAnnotator(provider, Options{}).Annotate(context.Background(), records)
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if result.Errors != 1 || len(got) != 0 {
		t.Errorf("expected one error and no records, got %+v, %+v", result, got)
	}
}

func TestAnnotateNoProvider(t *testing.T) {
	if _, _, err := NewAnnotator(nil, Options{}).Annotate(context.Background(), nil); err == nil {
		t.Error("expected error without provider")
	}
}

func TestAnnotateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records := []dataset.RawRecord{tweet("1", "a", "Ra'am", "text", "")}
	_, _, err := NewAnnotator(&mockProvider{}, Options{}).Annotate(ctx, records)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGroupByAccount(t *testing.T) {
	records := []dataset.RawRecord{
		tweet("1", "Foo", "Ra'am", "old", "2021-04-01T00:00:00Z"),
		tweet("2", "", "Ra'am", "anonymous", ""),
		tweet("3", "bar", "Activist", "bar", "???"),
		{ID: "4", Username: "FOO", DisplayName: "Foo Latest", Group: "Activist", Text: "new", CreatedAt: "2021-05-01T00:00:00Z"},
		tweet("5", "foo", "Ra'am", "undated", ""),
	}
	accounts := GroupByAccount(records)

	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	foo := accounts[0]
	if foo.Username != "foo" || foo.DisplayName != "Foo Latest" || foo.Group != "Activist" {
		t.Errorf("unexpected account metadata: %+v", foo)
	}
	var ids []string
	for _, tw := range foo.Tweets {
		ids = append(ids, tw.ID)
	}
	if diff := cmp.Diff([]string{"4", "1", "5"}, ids); diff != "" {
		t.Errorf("tweet order mismatch (-want +got):\n%s", diff)
	}
	if accounts[1].Username != "bar" {
		t.Errorf("expected bar second, got %s", accounts[1].Username)
	}
}

func TestPrepareTweets(t *testing.T) {
	tweets := []dataset.RawRecord{
		{Text: "  first  "},
		{Text: ""},
		{Text: strings.Repeat("א", 10)},
		{Text: "third"},
		{Text: "fourth"},
	}
	got := PrepareTweets(tweets, 4, 5)
	want := "first\n\nאאאאא...\n\nthird"
	if got != want {
		t.Errorf("PrepareTweets = %q, want %q", got, want)
	}
}

func TestPrepareTweetsCharacterBudget(t *testing.T) {
	var tweets []dataset.RawRecord
	for i := 0; i < 200; i++ {
		tweets = append(tweets, dataset.RawRecord{Text: strings.Repeat("x", 280)})
	}
	got := PrepareTweets(tweets, 200, 280)
	parts := strings.Split(got, "\n\n")
	// 108 * 280 = 30240 is the first total above 30000.
	if len(parts) != 108 {
		t.Errorf("expected 108 tweets within the budget, got %d", len(parts))
	}
}

func TestFitTopics(t *testing.T) {
	if diff := cmp.Diff([]string{"a", "", "", "", ""}, fitTopics([]string{"a"})); diff != "" {
		t.Errorf("padding mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, fitTopics([]string{"1", "2", "3", "4", "5", "6"})); diff != "" {
		t.Errorf("truncation mismatch (-want +got):\n%s", diff)
	}
}
