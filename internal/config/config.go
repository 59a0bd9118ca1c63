// Package config provides configuration for the extraction engine. Settings
// come from an optional YAML file with environment variable overrides loaded
// through .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Render zoom below 2 produces visibly pixelated page images.
const defaultRenderZoom = 2.0

// Config holds all tunables for an extraction run.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Vector VectorConfig `yaml:"vector"`
	Log    LogConfig    `yaml:"log"`
}

// RenderConfig holds page rasterization settings.
type RenderConfig struct {
	// Zoom is the fixed oversampling multiplier applied to every page render.
	Zoom float64 `yaml:"zoom"`
}

// VectorConfig holds vector region detection settings.
type VectorConfig struct {
	// OverlapThreshold merges two detected boxes when their overlap ratio
	// meets or exceeds it.
	OverlapThreshold float64 `yaml:"overlap_threshold"`
	// MarginAllowance expands detected regions before clamping to the page.
	MarginAllowance float64 `yaml:"margin_allowance"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{Zoom: defaultRenderZoom},
		Vector: VectorConfig{OverlapThreshold: 0.75, MarginAllowance: 0},
		Log:    LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads configuration from an optional YAML file path and applies
// environment overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // ignore error if .env doesn't exist

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ADT_PRESS_RENDER_ZOOM"); v != "" {
		if zoom, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Render.Zoom = zoom
		}
	}
	if v := os.Getenv("ADT_PRESS_OVERLAP_THRESHOLD"); v != "" {
		if threshold, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Vector.OverlapThreshold = threshold
		}
	}
	if v := os.Getenv("ADT_PRESS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Render.Zoom < 1 {
		return fmt.Errorf("render zoom must be >= 1, got %v", c.Render.Zoom)
	}
	if c.Vector.OverlapThreshold <= 0 || c.Vector.OverlapThreshold > 1 {
		return fmt.Errorf("overlap threshold must be in (0, 1], got %v", c.Vector.OverlapThreshold)
	}
	if c.Vector.MarginAllowance < 0 {
		return fmt.Errorf("margin allowance must be >= 0, got %v", c.Vector.MarginAllowance)
	}
	return nil
}
