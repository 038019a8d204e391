package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type ScoringConfig struct {
	// UseSemantic routes fuzzy matching through the LLM-backed oracle.
	// Off by default: every semantic comparison is a paid model call.
	UseSemantic bool `toml:"use_semantic"`
	// Threshold is the strict lower bound a fuzzy similarity must exceed.
	Threshold float64 `toml:"threshold"`
	// MaxNameLength caps extracted candidate names, in runes. Longer items
	// are treated as mis-captured prose and dropped.
	MaxNameLength int `toml:"max_name_length"`
}

type CacheConfig struct {
	Enabled    bool `toml:"enabled"`
	TTLSeconds int  `toml:"ttl_seconds"`
}

type StoreConfig struct {
	// Path to the sqlite results database. Empty disables persistence.
	Path string `toml:"path"`
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Scoring ScoringConfig `toml:"scoring"`
	Cache   CacheConfig   `toml:"cache"`
	Store   StoreConfig   `toml:"store"`
}

const (
	DefaultThreshold     = 0.7
	DefaultMaxNameLength = 50
	DefaultCacheTTL      = 600
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config usable without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.Scoring.Threshold == 0 {
		c.Scoring.Threshold = DefaultThreshold
	}
	if c.Scoring.MaxNameLength == 0 {
		c.Scoring.MaxNameLength = DefaultMaxNameLength
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = DefaultCacheTTL
	}
}
