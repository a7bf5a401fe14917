package output

import (
	"fmt"
	"io"
)

// Formatter renders decode results in a specific format.
//
// Begin is called once before any result, Result once per file in
// processing order, and End once after the last file.
type Formatter interface {
	Begin(w io.Writer) error
	Result(w io.Writer, r *FileResult) error
	End(w io.Writer, s Summary) error

	// Name returns the format name (text, json, yaml).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// ShowHeader includes packet header fields in text output.
	ShowHeader bool

	// Verbose appends a run summary to text output.
	Verbose bool
}

// New returns the formatter registered under name.
func New(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	case "yaml":
		return NewYAMLFormatter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text, json, or yaml)", name)
	}
}
