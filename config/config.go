/*
Package config loads the engine configuration from a TOML file.

PURPOSE:
  Centralizes the tunables the server and the conflict detector need.
  Every field has a sensible default so the binary runs with no config
  file at all; a file only overrides what it mentions.

USAGE:
  cfg := config.Default()
  if path != "" {
      cfg, err = config.Load(path)
  }
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full engine configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Engine EngineConfig `toml:"engine"`
}

// ServerConfig holds the HTTP server and storage settings.
type ServerConfig struct {
	Port     int    `toml:"port"`
	Database string `toml:"database"`
}

// EngineConfig holds the conflict-detection tunables.
type EngineConfig struct {
	// MinimumCoveragePercent is the team coverage floor below which a
	// vacation request raises a coverage conflict. Percent, 0-100.
	MinimumCoveragePercent float64 `toml:"minimum_coverage_percent"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:     8080,
			Database: "./leave.db",
		},
		Engine: EngineConfig{
			MinimumCoveragePercent: 50,
		},
	}
}

// Load reads a TOML file over the defaults. Unknown keys are rejected
// so typos in the file fail loudly instead of silently using defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config key: %s", undecoded[0])
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Engine.MinimumCoveragePercent < 0 || c.Engine.MinimumCoveragePercent > 100 {
		return fmt.Errorf("minimum_coverage_percent must be in [0, 100], got %v",
			c.Engine.MinimumCoveragePercent)
	}
	return nil
}
