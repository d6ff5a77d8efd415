package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaultConfig(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		t.Fatalf("failed to parse default config: %v", err)
	}

	if len(cfg.Accounts) != 19 {
		t.Errorf("expected 19 tracked accounts, got %d", len(cfg.Accounts))
	}

	if cfg.Data.Source != SourceJSON {
		t.Errorf("expected source 'json', got %q", cfg.Data.Source)
	}

	if cfg.Annotation.Provider != "ollama" {
		t.Errorf("expected provider 'ollama', got %q", cfg.Annotation.Provider)
	}

	if cfg.Annotation.MaxTweetsPerAccount != 30 || cfg.Annotation.MaxCharsPerTweet != 280 {
		t.Errorf("unexpected annotation limits: %+v", cfg.Annotation)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Server.Port)
	}
}

func TestDefaultAccountsHaveKnownGroups(t *testing.T) {
	groups := map[string]bool{
		"Hadash-Ta'al":        true,
		"Ra'am":               true,
		"Islamic/Independent": true,
		"Activist":            true,
	}
	for _, a := range Default().Accounts {
		if a.Handle == "" || a.Label == "" {
			t.Errorf("incomplete account entry: %+v", a)
		}
		if !groups[a.Group] {
			t.Errorf("account %s has unexpected group %q", a.Handle, a.Group)
		}
	}
}

func TestParseMinimalConfig(t *testing.T) {
	data := []byte(`
annotation:
  provider: openai
  model: gpt-4o
server:
  port: 9000
`)
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("failed to parse minimal config: %v", err)
	}

	if cfg.Annotation.Provider != "openai" {
		t.Errorf("expected provider 'openai', got %q", cfg.Annotation.Provider)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	// Defaults should still be set for unspecified fields
	if cfg.Annotation.OllamaURL != "http://localhost:11434" {
		t.Errorf("expected default ollama_url, got %q", cfg.Annotation.OllamaURL)
	}
	if cfg.Data.TweetsPath != "data/all_tweets.json" {
		t.Errorf("expected default tweets path, got %q", cfg.Data.TweetsPath)
	}
	if cfg.Dashboard.ViralTopN != 10 {
		t.Errorf("expected default viral_top_n 10, got %d", cfg.Dashboard.ViralTopN)
	}
}

func TestParseDataSource(t *testing.T) {
	cfg, err := parse([]byte("data:\n  source: SQLite\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Data.Source != SourceSQLite {
		t.Errorf("expected sqlite, got %q", cfg.Data.Source)
	}

	_, err = parse([]byte("data:\n  source: csv\n"))
	if err == nil || !strings.Contains(err.Error(), "data.source") {
		t.Errorf("expected data.source error, got %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Accounts) == 0 {
		t.Error("expected accounts to be populated from file")
	}
}

func TestResolveConfigPathExplicit(t *testing.T) {
	if _, err := ResolveConfigPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ResolveConfigPath(path)
	if err != nil || got != path {
		t.Errorf("ResolveConfigPath(%q) = %q, %v", path, got, err)
	}
}

func TestGetDataDir(t *testing.T) {
	cfg := &Config{}
	defaultDir := cfg.GetDataDir()
	if defaultDir == "" {
		t.Error("expected non-empty default data dir")
	}

	cfg.Data.DataDir = "/custom/path"
	if cfg.GetDataDir() != "/custom/path" {
		t.Errorf("expected '/custom/path', got %q", cfg.GetDataDir())
	}
	if cfg.DBPath() != filepath.Join("/custom/path", "partypulse.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
}
