package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Data       Data       `yaml:"data"`
	Accounts   []Account  `yaml:"accounts"`
	Annotation Annotation `yaml:"annotation"`
	Dashboard  Dashboard  `yaml:"dashboard"`
	Server     Server     `yaml:"server"`
	Logging    Logging    `yaml:"logging"`
}

// Data source values.
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

type Data struct {
	Source     string `yaml:"source"`
	TweetsPath string `yaml:"tweets_path"`
	TopicsPath string `yaml:"topics_path"`
	DataDir    string `yaml:"data_dir"`
}

// Account is one tracked handle with its raw group label.
type Account struct {
	Handle string `yaml:"handle"`
	Group  string `yaml:"group"`
	Label  string `yaml:"label"`
}

type Annotation struct {
	Provider            string `yaml:"provider"`
	Model               string `yaml:"model"`
	OllamaURL           string `yaml:"ollama_url"`
	OpenAIModel         string `yaml:"openai_model"`
	APIKeyEnv           string `yaml:"api_key_env"`
	MaxTokens           int    `yaml:"max_tokens"`
	MaxTweetsPerAccount int    `yaml:"max_tweets_per_account"`
	MaxCharsPerTweet    int    `yaml:"max_chars_per_tweet"`
}

type Dashboard struct {
	ViralTopN int `yaml:"viral_top_n"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for partypulse.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "partypulse")
}

// DataDir returns the XDG data directory for partypulse.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "partypulse")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/partypulse/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'partypulse init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Data: Data{
			Source:     SourceJSON,
			TweetsPath: "data/all_tweets.json",
			TopicsPath: "data/topics_and_narratives.json",
		},
		Annotation: Annotation{
			Provider:            "ollama",
			Model:               "qwen2.5:7b",
			OllamaURL:           "http://localhost:11434",
			OpenAIModel:         "gpt-4o-mini",
			APIKeyEnv:           "OPENAI_API_KEY",
			MaxTokens:           800,
			MaxTweetsPerAccount: 30,
			MaxCharsPerTweet:    280,
		},
		Dashboard: Dashboard{ViralTopN: 10},
		Server:    Server{Port: 8000},
		Logging:   Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Data.Source = strings.ToLower(strings.TrimSpace(cfg.Data.Source))
	switch cfg.Data.Source {
	case SourceJSON, SourceSQLite:
	default:
		return nil, fmt.Errorf("parsing config: unknown data.source %q (want %q or %q)", cfg.Data.Source, SourceJSON, SourceSQLite)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Data.DataDir != "" {
		return c.Data.DataDir
	}
	return DataDir()
}

// DBPath returns the path of the sqlite snapshot.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), "partypulse.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
