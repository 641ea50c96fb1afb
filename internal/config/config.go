// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file, the environment nor a flag sets a value.
const (
	DefaultStorePath    = "~/.hyperfill/hyperfill.db"
	DefaultDatasetPath  = "site_mappings.json"
	DefaultPort         = 8080
	DefaultFetchTimeout = 30
	DefaultWorkers      = 4
	DefaultCategory     = "Article Submission"
	DefaultSpamScore    = 5
	DefaultURLPattern   = "example.com"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	StorePath   string `json:"store_path,omitempty" yaml:"store_path,omitempty"`     // Local SQLite key-value store
	DatasetPath string `json:"dataset_path,omitempty" yaml:"dataset_path,omitempty"` // Bundled site-mapping dataset file
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Fetching and batch work
	FetchTimeout int  `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds,omitempty"`
	UseBrowser   bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Render JS-built forms in a headless browser
	Workers      int  `json:"workers,omitempty" yaml:"workers,omitempty"`
	Verbose      bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`

	// Site definition metadata defaults
	DefaultCategory   string `json:"default_category,omitempty" yaml:"default_category,omitempty"`
	DefaultSpamScore  int    `json:"default_spam_score,omitempty" yaml:"default_spam_score,omitempty"`
	DefaultURLPattern string `json:"default_url_pattern,omitempty" yaml:"default_url_pattern,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		StorePath:         DefaultStorePath,
		DatasetPath:       DefaultDatasetPath,
		Port:              DefaultPort,
		FetchTimeout:      DefaultFetchTimeout,
		Workers:           DefaultWorkers,
		DefaultCategory:   DefaultCategory,
		DefaultSpamScore:  DefaultSpamScore,
		DefaultURLPattern: DefaultURLPattern,
	}
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml are read
// as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset or malformed
// variables leave the field at its zero value.
func FromEnv() Config {
	cfg := Config{
		StorePath:         os.Getenv("HYPERFILL_STORE_PATH"),
		DatasetPath:       os.Getenv("HYPERFILL_DATASET_PATH"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Port:              envInt("HYPERFILL_PORT"),
		FetchTimeout:      envInt("HYPERFILL_FETCH_TIMEOUT"),
		UseBrowser:        envBool("HYPERFILL_USE_BROWSER"),
		Workers:           envInt("HYPERFILL_WORKERS"),
		Verbose:           envBool("HYPERFILL_VERBOSE"),
		DefaultCategory:   os.Getenv("HYPERFILL_DEFAULT_CATEGORY"),
		DefaultSpamScore:  envInt("HYPERFILL_DEFAULT_SPAM_SCORE"),
		DefaultURLPattern: os.Getenv("HYPERFILL_DEFAULT_URL_PATTERN"),
	}
	if cfg.Port == 0 {
		cfg.Port = envInt("PORT")
	}
	return cfg
}

// Resolve loads path (when non-empty), layers the environment under it and the
// built-in defaults under both, then validates the result.
func Resolve(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(FromEnv())
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("config error: 'fetch_timeout_seconds' must be non-negative")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.DefaultSpamScore < 0 {
		return fmt.Errorf("config error: 'default_spam_score' must be non-negative")
	}

	if c.DatasetPath != "" {
		if info, err := os.Stat(c.DatasetPath); err == nil && info.IsDir() {
			return fmt.Errorf("config error: dataset path is a directory: %s", c.DatasetPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.DatasetPath == "" {
		result.DatasetPath = defaults.DatasetPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DefaultCategory == "" {
		result.DefaultCategory = defaults.DefaultCategory
	}
	if result.DefaultURLPattern == "" {
		result.DefaultURLPattern = defaults.DefaultURLPattern
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.FetchTimeout == 0 {
		result.FetchTimeout = defaults.FetchTimeout
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.DefaultSpamScore == 0 {
		result.DefaultSpamScore = defaults.DefaultSpamScore
	}

	// Bool fields: unset and false look the same, so either source may switch them on
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

func envInt(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}
	return v
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
