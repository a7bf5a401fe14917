package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// validLogLevels lists the accepted log_level values.
var validLogLevels = map[string]bool{
	"trace":    true,
	"debug":    true,
	"info":     true,
	"warn":     true,
	"warning":  true,
	"error":    true,
	"disabled": true,
	"off":      true,
	"none":     true,
}

// Load reads and validates a configuration file.
// Files ending in .toml are parsed as TOML, everything else as YAML.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshal(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks a configuration for errors and normalizes its values.
func Validate(cfg *Config) error {
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	switch cfg.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output: invalid format %q (must be text, json, or yaml)", cfg.Output)
	}

	if cfg.OnMismatch == "" {
		cfg.OnMismatch = DefaultOnMismatch
	}
	switch cfg.OnMismatch {
	case MismatchPartial, MismatchDiscard:
	default:
		return fmt.Errorf("on_mismatch: invalid policy %q (must be partial or discard)", cfg.OnMismatch)
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extensions[%d]: %q must start with a dot", i, ext)
		}
	}

	if cfg.MaxFileSize < 0 {
		return errors.New("max_file_size: must not be negative")
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("log_level: invalid level %q", cfg.LogLevel)
	}

	return nil
}
