// Package config reads protplot run settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all run settings. Command line flags override them.
type Config struct {
	Properties struct {
		// CSV is the amino acid properties table; built-in tables are
		// used if empty.
		CSV string `yaml:"csv"`
		// Columns maps property names to CSV column headers.
		Columns map[string]string `yaml:"columns"`
	} `yaml:"properties"`
	// Windows are the sliding window sizes to overlay.
	Windows []int `yaml:"windows"`
	UniProt struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		// Cache is the bolt database for fetched records, no caching if
		// empty.
		Cache string `yaml:"cache"`
	} `yaml:"uniprot"`
	Chart struct {
		// Width and Height are in inches.
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"chart"`
}

// Default returns the default settings.
func Default() *Config {
	cfg := &Config{}
	cfg.Windows = []int{1, 5, 10, 20}
	cfg.UniProt.TimeoutSeconds = 30
	cfg.Chart.Width = 10
	cfg.Chart.Height = 6
	return cfg
}

// Load reads config from a YAML file on top of the defaults, then
// applies environment variable overrides. An empty path means
// defaults only, a named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("PROTPLOT_CACHE"); v != "" {
		cfg.UniProt.Cache = v
	}
	if v := os.Getenv("PROTPLOT_UNIPROT_URL"); v != "" {
		cfg.UniProt.BaseURL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings.
func (cfg *Config) Validate() error {
	for _, w := range cfg.Windows {
		if w < 1 {
			return fmt.Errorf("window size %d, should be at least 1", w)
		}
	}
	if cfg.UniProt.TimeoutSeconds < 0 {
		return fmt.Errorf("negative timeout %d", cfg.UniProt.TimeoutSeconds)
	}
	if cfg.Chart.Width <= 0 || cfg.Chart.Height <= 0 {
		return fmt.Errorf("bad chart size %vx%v", cfg.Chart.Width, cfg.Chart.Height)
	}
	return nil
}

// Timeout returns the HTTP timeout.
func (cfg *Config) Timeout() time.Duration {
	return time.Duration(cfg.UniProt.TimeoutSeconds) * time.Second
}
