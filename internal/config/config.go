package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/OCharnyshevich/riverbed/internal/groundcover"
)

// Config holds the settings for one carve run.
type Config struct {
	Layer       string `json:"layer"`
	WaterOffset int    `json:"water_offset"`
	Biome       bool   `json:"biome"`        // relabel carved cells as River
	DeleteLayer bool   `json:"delete_layer"` // clear the layer afterwards
	Workers     int    `json:"workers"`      // 0 = one per CPU

	Database  string `json:"database"`
	Source    string `json:"source"`     // go-getter URL to fetch the database from
	ExportDir string `json:"export_dir"` // write Anvil region files here when set
	LogLevel  string `json:"log_level"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		WaterOffset: -1,
		Biome:       true,
		Database:    "world.db",
		LogLevel:    "info",
	}
}

// Load reads a JSON config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["layer"] {
		cfg.Layer = fromFile.Layer
	}
	if !explicitFlags["water-offset"] {
		cfg.WaterOffset = fromFile.WaterOffset
	}
	if !explicitFlags["biome"] {
		cfg.Biome = fromFile.Biome
	}
	if !explicitFlags["delete-layer"] {
		cfg.DeleteLayer = fromFile.DeleteLayer
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["db"] {
		cfg.Database = fromFile.Database
	}
	if !explicitFlags["source"] {
		cfg.Source = fromFile.Source
	}
	if !explicitFlags["export"] {
		cfg.ExportDir = fromFile.ExportDir
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}

// Validate checks the fields that have no sensible fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.Layer == "" {
		errs = append(errs, errors.New("layer name is required"))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Database == "" && c.Source == "" {
		errs = append(errs, errors.New("database path or source is required"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Params converts the config into carve parameters.
func (c *Config) Params() groundcover.Params {
	return groundcover.Params{
		Layer:       c.Layer,
		WaterOffset: c.WaterOffset,
		ApplyBiome:  c.Biome,
		DeleteLayer: c.DeleteLayer,
		Workers:     c.Workers,
	}
}
