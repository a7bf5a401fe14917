package packet

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// UnknownData is the formatted value of chunks that have no interpretation.
const UnknownData = "<unknown-data>"

// FormatChunk renders a chunk body as text according to its kind.
//
// Fixed-width kinds must have exactly the width of their integer type.
// String kinds must be valid UTF-8. Kinds without an interpretation,
// including out-of-range values, format to UnknownData and never fail.
func FormatChunk(kind ChunkKind, body []byte) (string, error) {
	switch kind {
	case KindUserSystemClock:
		v, err := readU64LE(body)
		if err != nil {
			return "", fmt.Errorf("%s: %w", kind, err)
		}
		return strconv.FormatUint(v, 10), nil

	case KindLineNumber, KindLogPacketDropCount:
		v, err := readU32LE(body)
		if err != nil {
			return "", fmt.Errorf("%s: %w", kind, err)
		}
		return strconv.FormatUint(uint64(v), 10), nil

	case KindTextLog, KindFileName, KindFunctionName, KindModuleName, KindProcessName, KindThreadName:
		return readString(kind, body)

	case KindSessionBegin, KindSessionEnd:
		return UnknownData, nil

	default:
		return UnknownData, nil
	}
}

func readU32LE(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: u32 needs 4 bytes, got %d", ErrMalformedChunk, len(b))
	}
	return binary.LittleEndian.Uint32(b), nil
}

func readU64LE(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("%w: u64 needs 8 bytes, got %d", ErrMalformedChunk, len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}

func readString(kind ChunkKind, b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", kind, ErrInvalidText)
	}
	return string(b), nil
}
