package packet

import (
	"errors"
	"fmt"
)

// Decode failures. Each one aborts the decode of the current packet only.
var (
	ErrTruncatedHeader      = errors.New("packet: truncated header")
	ErrInvalidSeverity      = errors.New("packet: invalid severity")
	ErrTruncatedChunkHeader = errors.New("packet: truncated chunk header")
	ErrInvalidChunkKind     = errors.New("packet: invalid chunk kind")
	ErrTruncatedChunkBody   = errors.New("packet: truncated chunk body")
	ErrMalformedChunk       = errors.New("packet: malformed chunk")
	ErrInvalidText          = errors.New("packet: invalid text")
	ErrPayloadSizeMismatch  = errors.New("packet: payload size mismatch")
)

var reasons = []struct {
	err  error
	name string
}{
	{ErrTruncatedHeader, "TruncatedHeader"},
	{ErrInvalidSeverity, "InvalidSeverity"},
	{ErrTruncatedChunkHeader, "TruncatedChunkHeader"},
	{ErrInvalidChunkKind, "InvalidChunkKind"},
	{ErrTruncatedChunkBody, "TruncatedChunkBody"},
	{ErrMalformedChunk, "MalformedChunk"},
	{ErrInvalidText, "InvalidText"},
	{ErrPayloadSizeMismatch, "PayloadSizeMismatch"},
}

// Reason returns the failure category name for a decode error,
// or an empty string if err is not a decode failure.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.name
		}
	}
	return ""
}

// DecodeError records where in the packet a decode failure happened.
type DecodeError struct {
	// Offset is the byte offset from the start of the packet.
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (at offset %d)", e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(offset int, err error) error {
	return &DecodeError{Offset: offset, Err: err}
}
