// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for lexi configuration.
	DefaultConfigDir = ".lexi"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultDatabaseFile is the default SQLite database file name.
	DefaultDatabaseFile = "lexi.db"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	Profile  ProfileConfig  `yaml:"profile,omitempty"`
	SQLite   SQLiteConfig   `yaml:"sqlite,omitempty"`
	Qdrant   QdrantConfig   `yaml:"qdrant,omitempty"`
	Embedder EmbedderConfig `yaml:"embedder,omitempty"`
	Source   SourceConfig   `yaml:"source,omitempty"`
}

// ProfileConfig identifies the signed-in user. An empty UserID means no user
// is signed in; operations that require one fail with unauthorized.
type ProfileConfig struct {
	UserID string `yaml:"user_id,omitempty"`
}

// SQLiteConfig holds configuration for the SQLite record store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// QdrantConfig holds configuration for the Qdrant entry index.
type QdrantConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Collection string `yaml:"collection,omitempty"`
	APIKey     string `yaml:"api_key,omitempty"`
}

// EmbedderConfig holds configuration for the embedding provider.
type EmbedderConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// SourceConfig holds configuration for the external dictionary source used
// by the fetch command.
type SourceConfig struct {
	// BaseURL is the root of a dictionaryapi.dev-compatible API.
	BaseURL string `yaml:"base_url,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Qdrant: QdrantConfig{
			Host:       "localhost",
			Port:       6334,
			Collection: "lexi_entries",
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
		},
		Source: SourceConfig{
			BaseURL: "https://api.dictionaryapi.dev",
		},
	}
}

// Load loads configuration from the .lexi directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'lexi init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = DatabasePath(basePath)
	}

	// Apply environment variable overrides
	cfg.applyEnvOverrides()

	return cfg, nil
}

// DatabasePath returns the default SQLite database path under basePath.
func DatabasePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultDatabaseFile)
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if user := os.Getenv("LEXI_USER"); user != "" {
		c.Profile.UserID = user
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = key
	}
	if key := os.Getenv("QDRANT_API_KEY"); key != "" && c.Qdrant.APIKey == "" {
		c.Qdrant.APIKey = key
	}
}
