// Package logging configures the diagnostic logger used by lmread.
//
// Diagnostics go to stderr so they never mix with decoded output.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AppName is attached to every log event.
const AppName = "lmread"

// New returns a console logger writing to w at the given level.
// Unknown level names fall back to warn.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, ok := ParseLevel(level)
	if !ok {
		lvl = zerolog.WarnLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", AppName).Logger()
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}
