// Package config loads the optional CLI defaults file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pixveil/lsb"
)

// Config holds per-user defaults for the CLI. Flags override every field.
type Config struct {
	// OutputFormat is the container the stego image is written as,
	// "png" or "bmp". Lossy formats are not allowed here.
	OutputFormat string `yaml:"output_format"`

	// Channels names the color channels used by the 1-bit scheme,
	// e.g. "rgb" or "gb".
	Channels string `yaml:"channels"`

	// LegacyDelimiter switches text payloads to the "<<END>>"-terminated
	// framing, for interoperability with images embedded by that scheme.
	LegacyDelimiter bool `yaml:"legacy_delimiter"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		OutputFormat: "png",
		Channels:     "rgb",
	}
}

// Load reads the configuration from path. A missing file is not an
// error; defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OutputFormat != "png" && c.OutputFormat != "bmp" {
		return fmt.Errorf("output_format %q: must be png or bmp", c.OutputFormat)
	}
	if _, err := lsb.ParseChannelMask(c.Channels); err != nil {
		return err
	}
	return nil
}
