// Package annotate extracts each account's leading topics and recurring
// narratives from its tweets with an LLM, producing the topics dataset.
package annotate

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/llm"
	"github.com/TobiSchelling/PartyPulse/internal/metrics"
)

const systemPrompt = `You are a political data analyst. Your task is to analyze public social media posts in a neutral, descriptive, and non-judgmental way. Do not express opinions, emotions, praise, or criticism. Do not infer sentiment or intent. Focus only on identifying recurring topics and messages based strictly on the provided content.`

const userPrompt = `Analyze the following tweets from a single account. Identify:

1. The top 5 main topics discussed across these tweets as short noun phrases (2-5 words each, describing what is discussed rather than opinions).
2. 2-3 recurring narratives that summarize repeated messages or themes in neutral, analytical language.

Tweets:
%s

Return your response in strict JSON format only, with exactly two keys:
- "top_topics": an array of exactly five strings
- "narratives": an array of two or three strings

Do not include any additional text, explanations, or formatting outside the JSON.`

const (
	topicCount     = 5
	maxNarratives  = 3
	maxPromptChars = 30000
)

// Options bound the prompt built for each account.
type Options struct {
	MaxTweetsPerAccount int
	MaxCharsPerTweet    int
	MaxTokens           int
}

// Result holds the results of an annotation run.
type Result struct {
	Accounts  int
	Annotated int
	Skipped   int
	Errors    int
}

// Account is one account's tweets, most recent first.
type Account struct {
	Username    string
	DisplayName string
	Group       string
	Tweets      []dataset.RawRecord
}

// Annotator asks an LLM for the topics and narratives of each account.
type Annotator struct {
	provider llm.Provider
	opts     Options
}

// NewAnnotator creates a new annotator.
func NewAnnotator(provider llm.Provider, opts Options) *Annotator {
	if opts.MaxTweetsPerAccount <= 0 {
		opts.MaxTweetsPerAccount = 30
	}
	if opts.MaxCharsPerTweet <= 0 {
		opts.MaxCharsPerTweet = 280
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 800
	}
	return &Annotator{provider: provider, opts: opts}
}

// Annotate analyzes every account in records. Accounts the model fails on
// are logged and left out; the returned records keep first-seen account
// order.
func (a *Annotator) Annotate(ctx context.Context, records []dataset.RawRecord) ([]dataset.TopicNarrativeRecord, *Result, error) {
	if a.provider == nil {
		return nil, nil, fmt.Errorf("no LLM provider available for annotation")
	}

	accounts := GroupByAccount(records)
	r := &Result{Accounts: len(accounts)}
	out := []dataset.TopicNarrativeRecord{}

	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return out, r, err
		}

		zap.S().Infof("Analyzing @%s (%s, %s)...", acc.Username, acc.DisplayName, acc.Group)
		rec, err := a.annotateAccount(ctx, acc)
		switch {
		case err != nil:
			zap.S().Warnf("Failed to analyze @%s: %v", acc.Username, err)
			r.Errors++
			metrics.RecordAnnotation("error")
		case rec == nil:
			r.Skipped++
			metrics.RecordAnnotation("skipped")
		default:
			out = append(out, *rec)
			r.Annotated++
			metrics.RecordAnnotation("ok")
		}
	}

	zap.S().Infof("Annotation complete: %d of %d accounts annotated, %d skipped, %d errors",
		r.Annotated, r.Accounts, r.Skipped, r.Errors)
	return out, r, nil
}

type analysis struct {
	TopTopics  *[]string `json:"top_topics"`
	Narratives *[]string `json:"narratives"`
}

func (a *Annotator) annotateAccount(ctx context.Context, acc Account) (*dataset.TopicNarrativeRecord, error) {
	text := PrepareTweets(acc.Tweets, a.opts.MaxTweetsPerAccount, a.opts.MaxCharsPerTweet)
	if strings.TrimSpace(text) == "" {
		zap.S().Warnf("No tweet text available for @%s", acc.Username)
		return nil, nil
	}

	reply, err := a.provider.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Prompt:    fmt.Sprintf(userPrompt, text),
		MaxTokens: a.opts.MaxTokens,
		JSON:      true,
	})
	if err != nil {
		return nil, err
	}

	var parsed analysis
	if err := llm.DecodeJSON(reply, &parsed); err != nil {
		zap.S().Warnf("Unparsable response for @%s: %v", acc.Username, err)
		return nil, nil
	}
	if parsed.TopTopics == nil || parsed.Narratives == nil {
		zap.S().Warnf("Invalid response structure for @%s", acc.Username)
		return nil, nil
	}

	return &dataset.TopicNarrativeRecord{
		Username:    acc.Username,
		DisplayName: acc.DisplayName,
		Group:       acc.Group,
		TopTopics:   fitTopics(*parsed.TopTopics),
		Narratives:  fitNarratives(*parsed.Narratives),
	}, nil
}

// GroupByAccount groups records by lower-cased username in first-seen
// order. Each account's tweets are sorted most recent first, with
// unparsable timestamps last; its display name and group come from that
// most recent tweet. Records without a username are ignored.
func GroupByAccount(records []dataset.RawRecord) []Account {
	index := make(map[string]int)
	var accounts []Account

	for _, r := range records {
		key := strings.ToLower(r.Username)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(accounts)
			index[key] = i
			accounts = append(accounts, Account{Username: key})
		}
		accounts[i].Tweets = append(accounts[i].Tweets, r)
	}

	for i := range accounts {
		sortByDateDesc(accounts[i].Tweets)
		first := accounts[i].Tweets[0]
		accounts[i].DisplayName = first.DisplayName
		if accounts[i].DisplayName == "" {
			accounts[i].DisplayName = accounts[i].Username
		}
		accounts[i].Group = first.Group
		if accounts[i].Group == "" {
			accounts[i].Group = "Unknown"
		}
	}
	return accounts
}

func sortByDateDesc(tweets []dataset.RawRecord) {
	type dated struct {
		rec dataset.RawRecord
		at  time.Time
		ok  bool
	}
	keyed := make([]dated, len(tweets))
	for i, t := range tweets {
		at, ok := analytics.ParseCreatedAt(t.CreatedAt)
		keyed[i] = dated{rec: t, at: at, ok: ok}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		if keyed[i].ok != keyed[j].ok {
			return keyed[i].ok
		}
		return keyed[i].at.After(keyed[j].at)
	})
	for i := range keyed {
		tweets[i] = keyed[i].rec
	}
}

// PrepareTweets joins up to maxTweets non-blank tweet texts with blank
// lines. Each text is trimmed and cut to maxChars characters plus "...";
// once the running total exceeds 30000 characters no more tweets are added.
func PrepareTweets(tweets []dataset.RawRecord, maxTweets, maxChars int) string {
	if len(tweets) > maxTweets {
		tweets = tweets[:maxTweets]
	}

	var texts []string
	total := 0
	for _, t := range tweets {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		if runes := []rune(text); len(runes) > maxChars {
			text = string(runes[:maxChars]) + "..."
		}
		texts = append(texts, text)
		total += len([]rune(text))
		if total > maxPromptChars {
			break
		}
	}
	return strings.Join(texts, "\n\n")
}

// fitTopics pads with blanks or truncates to exactly five topics.
func fitTopics(topics []string) []string {
	out := make([]string, topicCount)
	copy(out, topics)
	return out
}

// fitNarratives keeps at most three narratives; an empty list becomes a
// single blank entry.
func fitNarratives(narratives []string) []string {
	if len(narratives) == 0 {
		return []string{""}
	}
	if len(narratives) > maxNarratives {
		narratives = narratives[:maxNarratives]
	}
	out := make([]string, len(narratives))
	copy(out, narratives)
	return out
}
