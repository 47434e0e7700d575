// Package config provides configuration types and defaults for pyed.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for pyed.
type Config struct {
	Interpreter string            `mapstructure:"interpreter"` // Command used to run scripts
	TabSize     int               `mapstructure:"tab_size"`
	UseTabs     bool              `mapstructure:"use_tabs"` // Hard tabs instead of spaces
	AutoReload  bool              `mapstructure:"auto_reload"`
	Debug       bool              `mapstructure:"debug"`
	LogFile     string            `mapstructure:"log_file"`
	Colors      map[string]string `mapstructure:"colors"` // Syntax color overrides, hex values
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Interpreter: "python3",
		TabSize:     4,
		UseTabs:     false,
		AutoReload:  false,
		Debug:       false,
		LogFile:     defaultLogPath(),
		Colors:      map[string]string{},
	}
}

// DefaultConfigDir returns the directory pyed looks for its config file in.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pyed")
}

func defaultLogPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return "pyed.log"
	}
	return filepath.Join(dir, "pyed.log")
}

// WriteDefaultConfig writes the default configuration as YAML to path,
// creating parent directories as needed. It refuses to overwrite an
// existing file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(defaultsAsYAML())
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func defaultsAsYAML() map[string]any {
	d := Defaults()
	return map[string]any{
		"interpreter": d.Interpreter,
		"tab_size":    d.TabSize,
		"use_tabs":    d.UseTabs,
		"auto_reload": d.AutoReload,
		"log_file":    d.LogFile,
	}
}

// Validate checks the configuration for values pyed cannot run with.
func Validate(cfg Config) error {
	if cfg.Interpreter == "" {
		return fmt.Errorf("interpreter must not be empty")
	}
	if cfg.TabSize < 1 || cfg.TabSize > 16 {
		return fmt.Errorf("tab_size must be between 1 and 16, got %d", cfg.TabSize)
	}
	return nil
}
