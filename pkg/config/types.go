// Package config provides configuration loading and validation for lmread.
package config

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// Output selects the renderer: text, json or yaml.
	Output string `yaml:"output" toml:"output"`

	// ShowHeader adds the packet header fields to text output.
	ShowHeader bool `yaml:"show_header" toml:"show_header"`

	// OnMismatch decides what happens to chunks decoded before a
	// payload size mismatch was detected.
	OnMismatch MismatchPolicy `yaml:"on_mismatch" toml:"on_mismatch"`

	// Extensions limits discovery to these file extensions.
	// Empty means any extension.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// MaxFileSize caps the size of a single packet file in bytes.
	// Zero uses DefaultMaxFileSize.
	MaxFileSize int64 `yaml:"max_file_size,omitempty" toml:"max_file_size,omitempty"`

	// LogLevel sets the diagnostic log level written to stderr.
	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// MismatchPolicy determines how a payload size mismatch is reported.
type MismatchPolicy string

const (
	// MismatchPartial emits the chunks decoded so far, then the error (default).
	MismatchPartial MismatchPolicy = "partial"
	// MismatchDiscard drops the decoded chunks and reports only the error.
	MismatchDiscard MismatchPolicy = "discard"
)

// Output format names.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// EffectiveMaxFileSize returns MaxFileSize or the default when unset.
func (c *Config) EffectiveMaxFileSize() int64 {
	if c.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return c.MaxFileSize
}
