// Package packet decodes binary log packets written by the lm log manager.
//
// A packet is a 24-byte little-endian header followed by a stream of
// tag/length/value chunks. Decoding is a pure function of the input bytes.
package packet

import (
	"fmt"
	"strings"
)

// ChunkKind identifies the meaning of a chunk within a packet's payload.
type ChunkKind uint8

const (
	KindSessionBegin ChunkKind = iota
	KindSessionEnd
	KindTextLog
	KindLineNumber
	KindFileName
	KindFunctionName
	KindModuleName
	KindThreadName
	KindLogPacketDropCount
	KindUserSystemClock
	KindProcessName

	// kindCount is the number of known chunk kinds.
	kindCount
)

var kindNames = [kindCount]string{
	KindSessionBegin:       "SessionBegin",
	KindSessionEnd:         "SessionEnd",
	KindTextLog:            "TextLog",
	KindLineNumber:         "LineNumber",
	KindFileName:           "FileName",
	KindFunctionName:       "FunctionName",
	KindModuleName:         "ModuleName",
	KindThreadName:         "ThreadName",
	KindLogPacketDropCount: "LogPacketDropCount",
	KindUserSystemClock:    "UserSystemClock",
	KindProcessName:        "ProcessName",
}

// Kinds returns every known chunk kind in tag order.
func Kinds() []ChunkKind {
	kinds := make([]ChunkKind, 0, kindCount)
	for k := ChunkKind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseChunkKind maps a raw tag byte to a ChunkKind.
func ParseChunkKind(tag byte) (ChunkKind, error) {
	k := ChunkKind(tag)
	if !k.Valid() {
		return 0, fmt.Errorf("%w: tag %d", ErrInvalidChunkKind, tag)
	}
	return k, nil
}

// Valid reports whether k is one of the known chunk kinds.
func (k ChunkKind) Valid() bool {
	return k < kindCount
}

// String returns the kind name, or Kind(n) for out-of-range values.
func (k ChunkKind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k ChunkKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Severity is the importance level carried in a packet header.
type Severity uint8

const (
	SeverityTrace Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal

	severityCount
)

var severityNames = [severityCount]string{
	SeverityTrace: "Trace",
	SeverityInfo:  "Info",
	SeverityWarn:  "Warn",
	SeverityError: "Error",
	SeverityFatal: "Fatal",
}

// ParseSeverity maps a raw header byte to a Severity.
func ParseSeverity(b byte) (Severity, error) {
	s := Severity(b)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: value %d", ErrInvalidSeverity, b)
	}
	return s, nil
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	return s < severityCount
}

func (s Severity) String() string {
	if s.Valid() {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Flags is the packet flag set stored in the low byte of the header padding.
type Flags uint8

const (
	FlagHead         Flags = 1 << 0
	FlagTail         Flags = 1 << 1
	FlagLittleEndian Flags = 1 << 2
)

// Has reports whether all bits in f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for _, flag := range []struct {
		bit  Flags
		name string
	}{
		{FlagHead, "Head"},
		{FlagTail, "Tail"},
		{FlagLittleEndian, "LittleEndian"},
	} {
		if f.Has(flag.bit) {
			parts = append(parts, flag.name)
			f &^= flag.bit
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("0x%02x", uint8(f)))
	}
	return strings.Join(parts, "|")
}

// MarshalText encodes the flag set in its String form.
func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
