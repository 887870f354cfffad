// Package config handles conversion options and their YAML file form.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls how KML documents are converted and serialized.
type Config struct {
	// Separator joins ancestor folder names into a layer path.
	Separator string `yaml:"separator,omitempty" json:"separator,omitempty"`
	// Unnamed substitutes for folders without a name element.
	Unnamed string `yaml:"unnamed,omitempty" json:"unnamed,omitempty"`
	// BasePrefix overrides the archive entry prefix; empty means use the
	// document's name, falling back to "layers".
	BasePrefix string `yaml:"base_prefix,omitempty" json:"base_prefix,omitempty"`
	// Indent is the pretty-printing indentation unit.
	Indent string `yaml:"indent,omitempty" json:"indent,omitempty"`
	// Compact minifies output instead of pretty-printing it.
	Compact bool `yaml:"compact,omitempty" json:"compact,omitempty"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	return Config{
		Separator: "_",
		Unnamed:   "unnamed",
		Indent:    "  ",
	}
}

// Load reads and parses the YAML configuration file from the specified
// path, filling unset fields with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.Separator == "" {
		cfg.Separator = "_"
	}
	if cfg.Unnamed == "" {
		cfg.Unnamed = "unnamed"
	}

	return cfg, nil
}
