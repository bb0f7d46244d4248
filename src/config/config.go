// Package config loads the viewer settings file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iafilius/BuildTimings/src/logging"
)

// Config holds the viewer's defaults. Command-line flags override what is loaded here.
type Config struct {
	Trace   string        `yaml:"trace"`
	Render  RenderConfig  `yaml:"render"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`

	traceSet bool
}

// RenderConfig holds the control values the graphs are first drawn with.
type RenderConfig struct {
	MinUnitTime float64 `yaml:"min_unit_time"`
	Scale       float64 `yaml:"scale"`
	PixelRatio  float64 `yaml:"pixel_ratio"`
	ShowHints   bool    `yaml:"show_hints"`
}

// ExportConfig controls headless PNG export.
type ExportConfig struct {
	ScreenshotsDir string `yaml:"screenshots_dir"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Trace:   "cargo-timing.json",
		Render:  RenderConfig{MinUnitTime: 0, Scale: 20, PixelRatio: 1, ShowHints: true},
		Export:  ExportConfig{ScreenshotsDir: "screenshots"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads filename over the defaults; keys absent from the file keep their default.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	var keys struct {
		Trace *string `yaml:"trace"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.traceSet = keys.Trace != nil
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}
	return cfg, nil
}

// TraceSet reports whether the loaded file named a trace explicitly.
func (c *Config) TraceSet() bool { return c.traceSet }

// Validate rejects values the renderers cannot use.
func (c *Config) Validate() error {
	if c.Render.MinUnitTime < 0 {
		return fmt.Errorf("render.min_unit_time must be >= 0, got %v", c.Render.MinUnitTime)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be > 0, got %v", c.Render.Scale)
	}
	if c.Render.PixelRatio <= 0 {
		return fmt.Errorf("render.pixel_ratio must be > 0, got %v", c.Render.PixelRatio)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// Print displays the configuration
func (c *Config) Print() {
	fmt.Printf("Trace: %s\n", c.Trace)
	fmt.Printf("Render: min_unit_time=%gs scale=%gpx/s pixel_ratio=%g hints=%v\n",
		c.Render.MinUnitTime, c.Render.Scale, c.Render.PixelRatio, c.Render.ShowHints)
	fmt.Printf("Export: %s\n", c.Export.ScreenshotsDir)
	fmt.Printf("Logging: %s\n", c.Logging.Level)
}
