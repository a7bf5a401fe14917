package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter collects results and writes them as a single JSON document.
type JSONFormatter struct {
	opts FormatOptions
	doc  Document
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Begin resets the collected document.
func (f *JSONFormatter) Begin(w io.Writer) error {
	f.doc = Document{Files: []FileRecord{}}
	return nil
}

// Result records one file.
func (f *JSONFormatter) Result(w io.Writer, r *FileResult) error {
	f.doc.Files = append(f.doc.Files, NewFileRecord(r))
	return nil
}

// End writes the document.
func (f *JSONFormatter) End(w io.Writer, s Summary) error {
	f.doc.Summary = s
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(f.doc)
}
