package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter collects results and writes them as a single YAML document.
type YAMLFormatter struct {
	opts FormatOptions
	doc  Document
}

// NewYAMLFormatter creates a new YAML formatter with the given options.
func NewYAMLFormatter(opts FormatOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Name returns the format name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Begin resets the collected document.
func (f *YAMLFormatter) Begin(w io.Writer) error {
	f.doc = Document{Files: []FileRecord{}}
	return nil
}

// Result records one file.
func (f *YAMLFormatter) Result(w io.Writer, r *FileResult) error {
	f.doc.Files = append(f.doc.Files, NewFileRecord(r))
	return nil
}

// End writes the document.
func (f *YAMLFormatter) End(w io.Writer, s Summary) error {
	f.doc.Summary = s
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(f.doc); err != nil {
		return err
	}
	return encoder.Close()
}
