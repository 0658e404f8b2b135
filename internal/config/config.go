// Package config loads runtime tunables from an optional YAML file with
// environment overrides applied on top.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the host-loop and world tunables.
type Config struct {
	// Simulation
	TickRate    int     `yaml:"tick_rate" env:"RUNECAST_TICK_RATE"`
	WorldWidth  float64 `yaml:"world_width" env:"RUNECAST_WORLD_WIDTH"`
	WorldHeight float64 `yaml:"world_height" env:"RUNECAST_WORLD_HEIGHT"`

	// Demo cast loop
	AbilityPath  string  `yaml:"ability_path" env:"RUNECAST_ABILITY_PATH"`
	CastInterval float64 `yaml:"cast_interval" env:"RUNECAST_CAST_INTERVAL"` // seconds
	CastRepeats  int     `yaml:"cast_repeats" env:"RUNECAST_CAST_REPEATS"`

	// Spectator feed
	FeedAddr string `yaml:"feed_addr" env:"RUNECAST_FEED_ADDR"`

	// Logging
	LogSeverity string `yaml:"log_severity" env:"RUNECAST_LOG_SEVERITY"`
}

// Default returns the config used when no file or overrides are present.
func Default() Config {
	return Config{
		TickRate:     30,
		WorldWidth:   800,
		WorldHeight:  600,
		CastInterval: 2.0,
		CastRepeats:  3,
		FeedAddr:     ":8087",
		LogSeverity:  "info",
	}
}

// Load reads the YAML file at path (empty path skips the file) and applies
// RUNECAST_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("config: world bounds must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	return nil
}
