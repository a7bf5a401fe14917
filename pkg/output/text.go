package output

import (
	"fmt"
	"io"

	"github.com/ccollicutt/lmread/pkg/packet"
)

// TextFormatter formats results as human-readable text blocks.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Begin writes nothing; text output has no preamble.
func (f *TextFormatter) Begin(w io.Writer) error {
	return nil
}

// Result writes one packet block, or an error line for failed files.
// Partial results get both.
func (f *TextFormatter) Result(w io.Writer, r *FileResult) error {
	if r.Packet != nil {
		if err := f.formatPacket(r.Packet, w); err != nil {
			return err
		}
	}
	if r.Err != nil {
		return formatError(r, w)
	}
	return nil
}

// End writes the summary line in verbose mode.
func (f *TextFormatter) End(w io.Writer, s Summary) error {
	if !f.opts.Verbose {
		return nil
	}
	_, err := fmt.Fprintf(w, "Summary: %d files, %d decoded, %d failed (%d partial)\n",
		s.Files, s.Decoded, s.Failed, s.Partial)
	return err
}

func (f *TextFormatter) formatPacket(p *packet.Packet, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "LogPacket {"); err != nil {
		return err
	}

	if f.opts.ShowHeader {
		h := p.Header
		if _, err := fmt.Fprintf(w, "  Header: pid=0x%016X tid=0x%016X severity=%s verbosity=%d flags=%s payload=%d\n",
			h.ProcessID, h.ThreadID, h.Severity, h.Verbosity, h.Flags(), h.PayloadSize); err != nil {
			return err
		}
	}

	for _, e := range p.Entries {
		if _, err := fmt.Fprintf(w, "  %s: '%s',\n", e.Kind, e.Value); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "}\n\n")
	return err
}

func formatError(r *FileResult, w io.Writer) error {
	if reason := packet.Reason(r.Err); reason != "" {
		_, err := fmt.Fprintf(w, "Error with %s: %s: %v\n", r.Path, reason, r.Err)
		return err
	}
	_, err := fmt.Fprintf(w, "Error with %s: %v\n", r.Path, r.Err)
	return err
}
