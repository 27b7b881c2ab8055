package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigYAML is the default configuration content.
const DefaultConfigYAML = `# Lexi-Core Configuration

profile:
  # user_id: your-user-id (or set LEXI_USER env var)

sqlite:
  # path: override the database location (defaults to .lexi/lexi.db)

qdrant:
  host: localhost
  port: 6334
  collection: lexi_entries
  # api_key: your-api-key (for Qdrant Cloud)

embedder:
  provider: openai
  model: text-embedding-3-small
  # api_key: your-api-key (or set OPENAI_API_KEY env var)

source:
  base_url: https://api.dictionaryapi.dev
`

// WriteDefault creates the .lexi directory and writes a default config file.
func WriteDefault(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)
	configFile := filepath.Join(configDir, DefaultConfigFile)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists: %s", configFile)
	}

	if err := os.WriteFile(configFile, []byte(DefaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
