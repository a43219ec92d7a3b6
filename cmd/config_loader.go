package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML config file schema. Every field is optional; flags
// take precedence over anything set here.
type fileConfig struct {
	Theme   string `yaml:"theme,omitempty"`
	KeyMode string `yaml:"keymap,omitempty"`
	NoColor *bool  `yaml:"no_color,omitempty"`

	Indent            *int `yaml:"indent,omitempty"`
	Workers           *int `yaml:"workers,omitempty"`
	ParallelThreshold *int `yaml:"parallel_threshold,omitempty"`
	MaxValues         *int `yaml:"max_values,omitempty"`
}

// resolveConfigPath returns the explicit path if given, otherwise the default
// user config location when it exists, otherwise empty.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".config", "jsonpane", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// loadConfigFile reads and decodes a YAML config file.
func loadConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfigDefaults copies config file values into the run parameters for
// every knob whose flag was not set on the command line.
func applyConfigDefaults(cfg fileConfig, flags *pflag.FlagSet) {
	if cfg.Theme != "" && !flags.Changed("theme") {
		params.Theme = cfg.Theme
	}
	if cfg.KeyMode != "" && !flags.Changed("keymap") {
		params.KeyMode = cfg.KeyMode
	}
	if cfg.NoColor != nil && !flags.Changed("no-color") {
		params.NoColor = *cfg.NoColor
	}
	if cfg.Indent != nil && !flags.Changed("indent") {
		params.Indent = *cfg.Indent
	}
	if cfg.Workers != nil && !flags.Changed("workers") {
		params.Workers = *cfg.Workers
	}
	if cfg.ParallelThreshold != nil && !flags.Changed("parallel-threshold") {
		params.ParallelThreshold = *cfg.ParallelThreshold
	}
	if cfg.MaxValues != nil && !flags.Changed("max-values") {
		params.MaxValues = *cfg.MaxValues
	}
}
