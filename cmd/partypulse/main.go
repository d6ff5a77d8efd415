package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TobiSchelling/PartyPulse/internal/analytics"
	"github.com/TobiSchelling/PartyPulse/internal/config"
	"github.com/TobiSchelling/PartyPulse/internal/database"
	"github.com/TobiSchelling/PartyPulse/internal/dataset"
	"github.com/TobiSchelling/PartyPulse/internal/logging"
	"github.com/TobiSchelling/PartyPulse/internal/metrics"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "partypulse",
	Short:   "Political tweet analytics dashboard",
	Long:    "PartyPulse aggregates a static dataset of politicians' tweets into per-party and per-account views.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			_, err := logging.Setup("INFO", verbose)
			return err
		}

		path, err := config.ResolveConfigPath(configPath)
		switch {
		case err == nil:
			cfg, err = config.Load(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		case configPath != "":
			return err
		default:
			cfg = config.Default()
		}

		if _, err := logging.Setup(cfg.Logging.Level, verbose); err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		if path != "" {
			zap.S().Debugf("Using config %s", path)
		} else {
			zap.S().Debug("No config file found, using built-in defaults")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(viralCmd)
	rootCmd.AddCommand(tweetsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(compareCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("partypulse", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/partypulse/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your tweet dataset and configure the LLM provider.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show dataset and snapshot status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Data source: %s\n", cfg.Data.Source)
		fmt.Printf("  Tweets: %s\n", cfg.Data.TweetsPath)
		fmt.Printf("  Topics: %s\n", cfg.Data.TopicsPath)

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("\nSnapshot: %s\n", db.Path())
		fmt.Printf("  Tweets: %d\n", stats.Tweets)
		fmt.Printf("  Accounts: %d\n", stats.Accounts)
		fmt.Printf("  Group labels: %d\n", stats.Groups)
		fmt.Printf("  Annotated accounts: %d\n", stats.Annotations)
		fmt.Printf("  Imports: %d\n", stats.Imports)

		last, err := db.GetLastImport()
		if err != nil {
			return fmt.Errorf("getting last import: %w", err)
		}
		if last != nil && last.ImportedAt != nil {
			fmt.Printf("  Last import: %s (%d tweets, %d annotations)\n", *last.ImportedAt, last.TweetCount, last.TopicCount)
		}
		return nil
	},
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return database.Open(cfg.DBPath())
}

// loadDataset reads the dataset from the configured source.
func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	if cfg.Data.Source != config.SourceSQLite {
		ds, err := dataset.Load(ctx, cfg.Data.TweetsPath, cfg.Data.TopicsPath)
		if err != nil {
			return nil, fmt.Errorf("loading dataset: %w", err)
		}
		return ds, nil
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ds, err := db.LoadDataset()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if len(ds.Tweets) == 0 {
		zap.S().Warn("Snapshot is empty. Run 'partypulse import' first.")
	}
	return ds, nil
}

func loadEngine(ctx context.Context) (*analytics.Engine, error) {
	ds, err := loadDataset(ctx)
	if err != nil {
		return nil, err
	}
	metrics.SetDatasetSize(len(ds.Tweets), len(ds.Topics))
	return analytics.NewEngine(ds), nil
}
