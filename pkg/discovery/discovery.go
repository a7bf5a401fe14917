// Package discovery finds packet files under one or more directories and
// orders them by the hexadecimal key encoded in their file names.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Entry is a discovered packet file.
type Entry struct {
	Path string `json:"path" yaml:"path"`
	Key  uint64 `json:"key" yaml:"key"`
}

// Option configures discovery.
type Option func(*options)

type options struct {
	extensions map[string]bool // nil means any extension
}

// WithExtensions limits discovery to files with one of the given extensions
// (including the leading dot). Matching is case-insensitive.
func WithExtensions(exts []string) Option {
	return func(o *options) {
		if len(exts) == 0 {
			return
		}
		o.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			o.extensions[strings.ToLower(ext)] = true
		}
	}
}

// HexKey derives the ordering key from a file name. The stem (base name
// without its final extension) must be a hexadecimal integer, optionally
// prefixed with 0x.
func HexKey(name string) (uint64, bool) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimPrefix(strings.TrimPrefix(stem, "0x"), "0X")
	if stem == "" {
		return 0, false
	}
	key, err := strconv.ParseUint(stem, 16, 64)
	if err != nil {
		return 0, false
	}
	return key, true
}

// Discover walks every root recursively and returns the packet files found,
// sorted ascending by key. Files whose names carry no hex key are skipped.
//
// A root that cannot be walked does not stop discovery of the others; the
// errors of all failed roots are combined and returned with the entries
// that were found.
func Discover(ctx context.Context, roots []string, opts ...Option) ([]Entry, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	seen := make(map[string]bool)
	var entries []Entry
	var errs error

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if o.extensions != nil && !o.extensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}

			key, ok := HexKey(d.Name())
			if !ok {
				return nil
			}

			clean := filepath.Clean(path)
			if seen[clean] {
				return nil
			}
			seen[clean] = true
			entries = append(entries, Entry{Path: clean, Key: key})
			return nil
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			errs = multierr.Append(errs, fmt.Errorf("walking %s: %w", root, err))
		}
	}

	Sort(entries)
	return entries, errs
}

// Sort orders entries by key, then by path for equal keys.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Key != entries[j].Key {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Path < entries[j].Path
	})
}
