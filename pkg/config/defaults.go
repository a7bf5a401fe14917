package config

import (
	"os"
	"strings"
)

// Default values for configuration.
const (
	DefaultOutput     = OutputText
	DefaultOnMismatch = MismatchPartial
	DefaultLogLevel   = "warn"

	// DefaultMaxFileSize is the largest packet a header can describe
	// (24-byte header plus a full u32 payload) with some slack for
	// trailing bytes.
	DefaultMaxFileSize int64 = 0x18 + 0xFFFFFFFF + 512
)

// Environment variable names.
const (
	EnvOutput     = "LMREAD_OUTPUT"
	EnvOnMismatch = "LMREAD_ON_MISMATCH"
	EnvLogLevel   = "LMREAD_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:     DefaultOutput,
		OnMismatch: DefaultOnMismatch,
		Extensions: []string{},
		LogLevel:   DefaultLogLevel,
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvironmentOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOnMismatch)); v != "" {
		c.OnMismatch = MismatchPolicy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}
