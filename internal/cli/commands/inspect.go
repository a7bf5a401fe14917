package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/lmread/pkg/packet"
)

// InspectOptions holds options for the inspect command
type InspectOptions struct {
	Verbose bool
}

// InspectResult represents a single line item of an inspection
type InspectResult struct {
	Check   string
	Status  string // "ok", "error"
	Message string
	Details []string
}

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the header and raw chunks of a single packet file",
		Long: `Show the header and raw chunks of a single packet file.

Every chunk is listed with its offset, kind, length and decoded value.
Decoding stops at the first structural error, which is reported with
the byte offset where it was found.

Example:
  lmread inspect logs/0x0000000000000001.bin
  lmread inspect -v logs/1f.bin  # include chunk bodies as hex`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show chunk bodies as hex")

	return cmd
}

func runInspect(w io.Writer, path string, opts *InspectOptions) error {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided packet path is expected
	if err != nil {
		return fmt.Errorf("reading packet file: %w", err)
	}

	results := []InspectResult{{
		Check:   "File",
		Status:  "ok",
		Message: fmt.Sprintf("Read %d bytes", len(data)),
	}}

	hdr, chunks, err := packet.Chunks(data)
	if errors.Is(err, packet.ErrTruncatedHeader) || errors.Is(err, packet.ErrInvalidSeverity) {
		results = append(results, failure("Header", err))
		printInspection(w, path, results)
		ExitCode = 1
		return nil
	}
	results = append(results, checkHeader(hdr))

	for i, c := range chunks {
		results = append(results, checkChunk(i, c, opts))
	}
	if err != nil {
		results = append(results, failure("Structure", err))
	}

	if printInspection(w, path, results) > 0 {
		ExitCode = 1
	}
	return nil
}

func checkHeader(h packet.Header) InspectResult {
	return InspectResult{
		Check:   "Header",
		Status:  "ok",
		Message: fmt.Sprintf("pid=0x%016X tid=0x%016X", h.ProcessID, h.ThreadID),
		Details: []string{
			fmt.Sprintf("flags:        %s (padding 0x%04X)", h.Flags(), h.Padding),
			fmt.Sprintf("severity:     %s", h.Severity),
			fmt.Sprintf("verbosity:    %d", h.Verbosity),
			fmt.Sprintf("payload_size: %d", h.PayloadSize),
		},
	}
}

func checkChunk(i int, c packet.Chunk, opts *InspectOptions) InspectResult {
	result := InspectResult{
		Check: fmt.Sprintf("Chunk %d @0x%04X %s (%d bytes)", i, c.Offset, c.Kind, c.Length),
	}
	if opts.Verbose {
		result.Details = []string{fmt.Sprintf("body: % x", c.Body)}
	}

	value, err := packet.FormatChunk(c.Kind, c.Body)
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		return result
	}
	result.Status = "ok"
	result.Message = fmt.Sprintf("'%s'", value)
	return result
}

func failure(check string, err error) InspectResult {
	msg := err.Error()
	if reason := packet.Reason(err); reason != "" {
		msg = reason + ": " + msg
	}
	return InspectResult{Check: check, Status: "error", Message: msg}
}

// printInspection writes the results and returns the number of failures.
func printInspection(w io.Writer, path string, results []InspectResult) int {
	_, _ = fmt.Fprintf(w, "=== Packet Inspection: %s ===\n\n", path)

	okCount := 0
	errCount := 0

	for _, r := range results {
		icon := "PASS"
		if r.Status == "error" {
			icon = "FAIL"
			errCount++
		} else {
			okCount++
		}

		_, _ = fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		_, _ = fmt.Fprintf(w, "    %s\n", r.Message)
		for _, d := range r.Details {
			_, _ = fmt.Fprintf(w, "      - %s\n", d)
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintln(w, "---")
	_, _ = fmt.Fprintf(w, "Summary: %d passed, %d errors\n", okCount, errCount)
	return errCount
}
