// Package config loads service configuration from YAML, with zero values
// falling back to sensible defaults. Flags in main may override fields.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings for both binaries; each uses the fields it needs.
type Config struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`
	DataDir  string `yaml:"data_dir"`
	// CorpusDB is the SQLite corpus path. Empty serves the embedded corpus
	// directly from the binary.
	CorpusDB string `yaml:"corpus_db"`
	DefaultK int    `yaml:"default_k"`
}

func (c *Config) defaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.DefaultK < 2 {
		c.DefaultK = 3
	}
}

// Load reads a YAML config file. A missing path yields pure defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.defaults()
	return cfg, nil
}
