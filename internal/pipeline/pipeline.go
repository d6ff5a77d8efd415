// Package pipeline imports the JSON dataset into the sqlite snapshot.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/TobiSchelling/PartyPulse/internal/config"
	"github.com/TobiSchelling/PartyPulse/internal/database"
	"github.com/TobiSchelling/PartyPulse/internal/dataset"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	Steps []StepResult
}

// Failed reports whether any step returned an error.
func (r *Result) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Pipeline orchestrates the 4-step import.
type Pipeline struct {
	cfg *config.Config
	db  *database.DB
}

// New creates a new pipeline.
func New(cfg *config.Config, db *database.DB) *Pipeline {
	return &Pipeline{cfg: cfg, db: db}
}

// Run executes the full 4-step import. A failed load or tweet store stops
// the run; the snapshot is left as it was before the failing step.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &Result{}

	// Step 1: Load
	ds, step := p.runLoad(ctx)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	// Step 2: Store tweets
	step = p.runStoreTweets(ds)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	// Step 3: Store annotations
	step = p.runStoreTopics(ds)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	// Step 4: Report
	step = p.runReport(ds)
	r.Steps = append(r.Steps, step)

	return r
}

// DryRun shows what would be done without executing.
func (p *Pipeline) DryRun(ctx context.Context) *Result {
	r := &Result{}

	ds, step := p.runLoad(ctx)
	step.Summary = "[dry-run] " + step.Summary
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	stats, err := p.db.GetStats()
	if err != nil {
		r.Steps = append(r.Steps, StepResult{Name: "Store tweets", Err: err})
		return r
	}
	r.Steps = append(r.Steps,
		StepResult{
			Name:    "Store tweets",
			Summary: fmt.Sprintf("[dry-run] Would replace %d stored tweets with %d", stats.Tweets, len(ds.Tweets)),
		},
		StepResult{
			Name:    "Store annotations",
			Summary: fmt.Sprintf("[dry-run] Would replace %d stored annotations with %d", stats.Annotations, len(ds.Topics)),
		},
	)

	last, err := p.db.GetLastImport()
	switch {
	case err != nil:
		r.Steps = append(r.Steps, StepResult{Name: "Report", Err: err})
	case last != nil && last.ImportedAt != nil:
		r.Steps = append(r.Steps, StepResult{
			Name:    "Report",
			Summary: fmt.Sprintf("[dry-run] Last import at %s", *last.ImportedAt),
		})
	default:
		r.Steps = append(r.Steps, StepResult{
			Name:    "Report",
			Summary: "[dry-run] No previous import",
		})
	}

	return r
}

func (p *Pipeline) runLoad(ctx context.Context) (*dataset.Dataset, StepResult) {
	zap.S().Info("Step 1/4: Loading dataset...")
	ds, err := dataset.Load(ctx, p.cfg.Data.TweetsPath, p.cfg.Data.TopicsPath)
	if err != nil {
		return nil, StepResult{Name: "Load", Err: err}
	}
	return ds, StepResult{
		Name:    "Load",
		Summary: fmt.Sprintf("Loaded %d tweets and %d annotation records", len(ds.Tweets), len(ds.Topics)),
	}
}

func (p *Pipeline) runStoreTweets(ds *dataset.Dataset) StepResult {
	zap.S().Info("Step 2/4: Storing tweets...")
	if err := p.db.ReplaceTweets(ds.Tweets); err != nil {
		return StepResult{Name: "Store tweets", Err: err}
	}
	return StepResult{
		Name:    "Store tweets",
		Summary: fmt.Sprintf("Stored %d tweets", len(ds.Tweets)),
	}
}

func (p *Pipeline) runStoreTopics(ds *dataset.Dataset) StepResult {
	zap.S().Info("Step 3/4: Storing annotations...")
	if err := p.db.ReplaceTopics(ds.Topics); err != nil {
		return StepResult{Name: "Store annotations", Err: err}
	}
	return StepResult{
		Name:    "Store annotations",
		Summary: fmt.Sprintf("Stored %d annotation records", len(ds.Topics)),
	}
}

func (p *Pipeline) runReport(ds *dataset.Dataset) StepResult {
	zap.S().Info("Step 4/4: Recording import...")
	id, err := p.db.InsertImport(p.cfg.Data.TweetsPath, p.cfg.Data.TopicsPath, len(ds.Tweets), len(ds.Topics))
	if err != nil {
		return StepResult{Name: "Report", Err: err}
	}
	return StepResult{
		Name:    "Report",
		Summary: fmt.Sprintf("Recorded import #%d", id),
	}
}
