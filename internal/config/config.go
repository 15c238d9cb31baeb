package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ColorMode controls when the renderer emits ANSI styling.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds renderer and CLI options. All fields have working defaults;
// a config file only overrides what it mentions.
type Config struct {
	// Color selects when diagnostic output is styled.
	Color ColorMode `yaml:"color"`
	// ContextLines is the number of source lines shown around a labeled
	// line in a rendered report.
	ContextLines int `yaml:"context_lines"`
	// TabWidth is the display width used when expanding tabs in snippets.
	TabWidth int `yaml:"tab_width"`
}

// DefaultFileName is the config file probed in the working directory.
const DefaultFileName = "calyx.yaml"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Color:        ColorAuto,
		ContextLines: 1,
		TabWidth:     4,
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return cfg, fmt.Errorf("config: invalid color mode %q", cfg.Color)
	}
	if cfg.ContextLines < 0 {
		return cfg, fmt.Errorf("config: context_lines must not be negative")
	}
	if cfg.TabWidth <= 0 {
		return cfg, fmt.Errorf("config: tab_width must be positive")
	}
	return cfg, nil
}
