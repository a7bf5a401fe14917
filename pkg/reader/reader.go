// Package reader drives the decode of discovered packet files, one file at
// a time, and hands each result to an output formatter.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/lmread/pkg/config"
	"github.com/ccollicutt/lmread/pkg/discovery"
	"github.com/ccollicutt/lmread/pkg/output"
	"github.com/ccollicutt/lmread/pkg/packet"
)

// ErrFileTooLarge is returned for files above the configured size cap.
var ErrFileTooLarge = errors.New("reader: file too large")

// Reader decodes packet files sequentially.
type Reader struct {
	formatter output.Formatter

	// Options
	policy      config.MismatchPolicy
	maxFileSize int64
	logger      zerolog.Logger
}

// Option configures reader behavior.
type Option func(*Reader)

// WithMismatchPolicy sets how payload size mismatches are reported.
func WithMismatchPolicy(p config.MismatchPolicy) Option {
	return func(r *Reader) {
		if p != "" {
			r.policy = p
		}
	}
}

// WithMaxFileSize caps the size of a single file. Non-positive values
// keep the default.
func WithMaxFileSize(n int64) Option {
	return func(r *Reader) {
		if n > 0 {
			r.maxFileSize = n
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Reader) {
		r.logger = l
	}
}

// New creates a reader that renders results with formatter.
func New(formatter output.Formatter, opts ...Option) *Reader {
	r := &Reader{
		formatter:   formatter,
		policy:      config.DefaultOnMismatch,
		maxFileSize: config.DefaultMaxFileSize,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run decodes every entry in order and writes the formatted results to w.
//
// A file that cannot be read or decoded is reported through the formatter
// and the run moves on to the next file. Run only returns an error when the
// context is cancelled or writing output fails.
func (r *Reader) Run(ctx context.Context, entries []discovery.Entry, w io.Writer) (output.Summary, error) {
	var summary output.Summary

	if err := r.formatter.Begin(w); err != nil {
		return summary, fmt.Errorf("writing output: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := r.ReadFile(entry)
		summary.Add(result)
		r.logResult(result)

		if err := r.formatter.Result(w, result); err != nil {
			return summary, fmt.Errorf("writing output: %w", err)
		}
	}

	if err := r.formatter.End(w, summary); err != nil {
		return summary, fmt.Errorf("writing output: %w", err)
	}
	return summary, nil
}

// ReadFile reads and decodes a single file, applying the mismatch policy.
func (r *Reader) ReadFile(entry discovery.Entry) *output.FileResult {
	result := &output.FileResult{Path: entry.Path, Key: entry.Key}

	data, err := r.load(entry.Path)
	if err != nil {
		result.Err = err
		return result
	}

	p, err := packet.Decode(data)
	result.Packet = p
	result.Err = err
	if errors.Is(err, packet.ErrPayloadSizeMismatch) && r.policy == config.MismatchDiscard {
		result.Packet = nil
	}
	return result
}

// load reads the whole file. The handle is closed before returning.
func (r *Reader) load(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- paths come from directory discovery
	if err != nil {
		return nil, fmt.Errorf("opening packet file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading packet file: %w", err)
	}
	if info.Size() > r.maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, info.Size(), r.maxFileSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, r.maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading packet file: %w", err)
	}
	if int64(len(data)) > r.maxFileSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFileTooLarge, r.maxFileSize)
	}
	return data, nil
}

func (r *Reader) logResult(res *output.FileResult) {
	switch res.Status() {
	case output.StatusDecoded:
		r.logger.Debug().
			Str("path", res.Path).
			Uint64("key", res.Key).
			Int("entries", len(res.Packet.Entries)).
			Msg("decoded packet")
	case output.StatusPartial:
		r.logger.Info().
			Str("path", res.Path).
			Str("reason", packet.Reason(res.Err)).
			Int("entries", len(res.Packet.Entries)).
			Msg("partial packet")
	default:
		ev := r.logger.Info().Str("path", res.Path).Err(res.Err)
		if reason := packet.Reason(res.Err); reason != "" {
			ev = ev.Str("reason", reason)
		}
		ev.Msg("decode failed")
	}
}
