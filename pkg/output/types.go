// Package output provides formatting for decoded packet files.
package output

import (
	"github.com/ccollicutt/lmread/pkg/packet"
)

// FileResult is the outcome of decoding one packet file.
type FileResult struct {
	// Path is the file the packet was read from.
	Path string

	// Key is the ordering key derived from the file name.
	Key uint64

	// Packet is the decoded packet. It is nil when decoding failed,
	// except for partial results.
	Packet *packet.Packet

	// Err is the read or decode failure, if any.
	Err error
}

// Status values reported per file.
const (
	StatusDecoded = "decoded"
	StatusFailed  = "failed"
	StatusPartial = "partial"
)

// Status classifies the result.
func (r *FileResult) Status() string {
	switch {
	case r.Err == nil:
		return StatusDecoded
	case r.Packet != nil:
		return StatusPartial
	default:
		return StatusFailed
	}
}

// Summary provides aggregate statistics for a run.
type Summary struct {
	// Files is the number of files processed.
	Files int `json:"files" yaml:"files"`

	// Decoded is the number of files decoded without error.
	Decoded int `json:"decoded" yaml:"decoded"`

	// Failed is the number of files that failed, including partial ones.
	Failed int `json:"failed" yaml:"failed"`

	// Partial is the number of failed files whose chunks were still emitted.
	Partial int `json:"partial" yaml:"partial"`
}

// Add records one result in the summary.
func (s *Summary) Add(r *FileResult) {
	s.Files++
	switch r.Status() {
	case StatusDecoded:
		s.Decoded++
	case StatusPartial:
		s.Failed++
		s.Partial++
	default:
		s.Failed++
	}
}

// HasFailures returns true if any file failed to decode.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// HeaderRecord is the serialized form of a packet header.
type HeaderRecord struct {
	packet.Header `yaml:",inline"`

	Flags packet.Flags `json:"flags" yaml:"flags"`
}

// FileRecord is the serialized form of a FileResult.
type FileRecord struct {
	Path    string         `json:"path" yaml:"path"`
	Key     uint64         `json:"key" yaml:"key"`
	Status  string         `json:"status" yaml:"status"`
	Header  *HeaderRecord  `json:"header,omitempty" yaml:"header,omitempty"`
	Entries []packet.Entry `json:"entries,omitempty" yaml:"entries,omitempty"`
	Reason  string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error   string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Document is the complete structured output of a run.
type Document struct {
	Files   []FileRecord `json:"files" yaml:"files"`
	Summary Summary      `json:"summary" yaml:"summary"`
}

// NewFileRecord converts a result into its serialized form.
func NewFileRecord(r *FileResult) FileRecord {
	rec := FileRecord{
		Path:   r.Path,
		Key:    r.Key,
		Status: r.Status(),
	}
	if r.Packet != nil {
		rec.Header = &HeaderRecord{Header: r.Packet.Header, Flags: r.Packet.Header.Flags()}
		rec.Entries = r.Packet.Entries
	}
	if r.Err != nil {
		rec.Reason = packet.Reason(r.Err)
		rec.Error = r.Err.Error()
	}
	return rec
}
