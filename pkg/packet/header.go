package packet

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the encoded size of a packet header in bytes.
const HeaderSize = 0x18

// Header field offsets.
const (
	offProcessID   = 0x00
	offThreadID    = 0x08
	offPadding     = 0x10
	offSeverity    = 0x12
	offVerbosity   = 0x13
	offPayloadSize = 0x14
)

// Header is the fixed-size prefix of every packet.
type Header struct {
	ProcessID uint64 `json:"process_id" yaml:"process_id"`
	ThreadID  uint64 `json:"thread_id" yaml:"thread_id"`

	// Padding is kept verbatim so the header re-encodes byte for byte.
	// Its low byte carries the packet flags.
	Padding uint16 `json:"padding" yaml:"padding"`

	Severity  Severity `json:"severity" yaml:"severity"`
	Verbosity uint8    `json:"verbosity" yaml:"verbosity"`

	// PayloadSize counts the chunk stream bytes after the header.
	PayloadSize uint32 `json:"payload_size" yaml:"payload_size"`
}

// ParseHeader decodes the first HeaderSize bytes of b.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, decodeErr(0, fmt.Errorf("%w: have %d bytes, need %d", ErrTruncatedHeader, len(b), HeaderSize))
	}

	sev, err := ParseSeverity(b[offSeverity])
	if err != nil {
		return Header{}, decodeErr(offSeverity, err)
	}

	return Header{
		ProcessID:   binary.LittleEndian.Uint64(b[offProcessID:]),
		ThreadID:    binary.LittleEndian.Uint64(b[offThreadID:]),
		Padding:     binary.LittleEndian.Uint16(b[offPadding:]),
		Severity:    sev,
		Verbosity:   b[offVerbosity],
		PayloadSize: binary.LittleEndian.Uint32(b[offPayloadSize:]),
	}, nil
}

// Flags returns the packet flag set.
func (h Header) Flags() Flags {
	return Flags(h.Padding & 0xff)
}

// AppendBinary appends the encoded header to b.
func (h Header) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint64(b, h.ProcessID)
	b = binary.LittleEndian.AppendUint64(b, h.ThreadID)
	b = binary.LittleEndian.AppendUint16(b, h.Padding)
	b = append(b, byte(h.Severity), h.Verbosity)
	return binary.LittleEndian.AppendUint32(b, h.PayloadSize)
}

// MarshalBinary encodes the header into its 24-byte form.
func (h Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize)), nil
}
