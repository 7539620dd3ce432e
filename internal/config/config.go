// Package config provides YAML-based configuration loading for Ghostline.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no config flag is given.
const DefaultPath = "ghostline.yaml"

// Config is the top-level Ghostline configuration, loaded from
// ghostline.yaml. Every field has a usable default; a missing file is
// not an error.
type Config struct {
	IncludeMedia   bool            `yaml:"include_media"`
	DeadGapMinutes int             `yaml:"dead_gap_minutes"`
	Database       DatabaseConfig  `yaml:"database"`
	Dashboard      DashboardConfig `yaml:"dashboard"`
}

// DatabaseConfig holds settings for the local snapshot store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DashboardConfig holds settings for the web dashboard.
type DashboardConfig struct {
	Port int `yaml:"port"`
}

// Load reads a YAML config file from path and returns a validated
// Config. A nonexistent file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Parse(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.DeadGapMinutes == 0 {
		c.DeadGapMinutes = 480
	}
	if c.Database.Path == "" {
		c.Database.Path = "ghostline.db"
	}
	if c.Dashboard.Port == 0 {
		c.Dashboard.Port = 8080
	}
}

// validate checks that all fields are consistent.
func (c *Config) validate() error {
	var errs []string
	if c.DeadGapMinutes < 0 {
		errs = append(errs, "dead_gap_minutes must not be negative")
	}
	if c.Dashboard.Port < 0 || c.Dashboard.Port > 65535 {
		errs = append(errs, "dashboard.port must be a valid port number")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
