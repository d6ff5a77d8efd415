package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/PartyPulse/internal/annotate"
	"github.com/TobiSchelling/PartyPulse/internal/convert"
	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/llm"
	"github.com/TobiSchelling/PartyPulse/internal/pipeline"
	"github.com/TobiSchelling/PartyPulse/internal/server"
)

// --- import command ---

var dryRun bool

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the JSON dataset into the sqlite snapshot: load -> store tweets -> store annotations -> report",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		pipe := pipeline.New(cfg, db)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun(cmd.Context())
		} else {
			result = pipe.Run(cmd.Context())
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/4: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		if result.Failed() {
			return fmt.Errorf("import failed")
		}
		if !dryRun {
			fmt.Println("\nImport complete! Set data.source: sqlite to serve from the snapshot.")
		}
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
}

// --- convert command ---

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert scraper exports into the tweet dataset format",
}

var convertApifyCmd = &cobra.Command{
	Use:   "apify <input>",
	Short: "Convert an Apify tweet scraper export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()

		items, err := convert.DecodeApify(f)
		if err != nil {
			return err
		}
		records := convert.FromApify(items, convert.NewRegistry(cfg.Accounts))
		return writeConverted(records)
	},
}

var convertFeedCmd = &cobra.Command{
	Use:   "feed <input>",
	Short: "Convert a saved RSS/Atom timeline export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()

		records, err := convert.ParseFeed(f, convert.NewRegistry(cfg.Accounts))
		if err != nil {
			return err
		}
		return writeConverted(records)
	},
}

func writeConverted(records []dataset.RawRecord) error {
	if err := dataset.WriteTweets(convertOut, records); err != nil {
		return err
	}
	fmt.Printf("Wrote %d tweets to %s\n", len(records), convertOut)
	return nil
}

func init() {
	convertCmd.PersistentFlags().StringVarP(&convertOut, "output", "o", "all_tweets.json", "Output file")
	convertCmd.AddCommand(convertApifyCmd)
	convertCmd.AddCommand(convertFeedCmd)
}

// --- annotate command ---

var annotateOut string

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Extract top topics and narratives per account with an LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := dataset.LoadTweets(cfg.Data.TweetsPath)
		if err != nil {
			return err
		}

		a := cfg.Annotation
		provider := llm.CreateProvider(a.Provider, a.Model, a.OllamaURL, a.OpenAIModel, a.APIKeyEnv)
		annotator := annotate.NewAnnotator(provider, annotate.Options{
			MaxTweetsPerAccount: a.MaxTweetsPerAccount,
			MaxCharsPerTweet:    a.MaxCharsPerTweet,
			MaxTokens:           a.MaxTokens,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out, result, err := annotator.Annotate(ctx, records)
		if err != nil && result == nil {
			return err
		}

		path := annotateOut
		if path == "" {
			path = cfg.Data.TopicsPath
		}
		if werr := dataset.WriteTopicsNarratives(path, out); werr != nil {
			return werr
		}

		fmt.Printf("Annotated %d of %d accounts (%d skipped, %d errors)\n",
			result.Annotated, result.Accounts, result.Skipped, result.Errors)
		fmt.Printf("Wrote %s\n", path)
		return err
	},
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateOut, "output", "o", "", "Output file (default: data.topics_path)")
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		engine, err := loadEngine(ctx)
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(ctx, engine, server.Options{ViralTopN: cfg.Dashboard.ViralTopN}, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to run server on (default: server.port)")
}
