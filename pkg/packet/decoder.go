package packet

import (
	"errors"
	"fmt"
)

// chunkHeaderSize is the size of a chunk's tag/length pair.
const chunkHeaderSize = 2

// Chunk is one undecoded tag/length/value unit from a packet payload.
type Chunk struct {
	Kind   ChunkKind
	Length uint8
	Body   []byte

	// Offset is the position of the chunk's tag byte within the packet.
	Offset int
}

// Entry is a chunk rendered as text.
type Entry struct {
	Kind  ChunkKind `json:"kind" yaml:"kind"`
	Value string    `json:"value" yaml:"value"`
}

// Packet is a fully decoded log packet.
type Packet struct {
	Header  Header  `json:"header" yaml:"header"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Decode decodes one packet from b.
//
// On ErrPayloadSizeMismatch the returned packet is non-nil and holds every
// entry decoded before the overrun was detected. On any other error the
// packet is nil.
func Decode(b []byte) (*Packet, error) {
	var entries []Entry
	hdr, err := walk(b, func(c Chunk) error {
		v, err := FormatChunk(c.Kind, c.Body)
		if err != nil {
			return decodeErr(c.Offset, err)
		}
		entries = append(entries, Entry{Kind: c.Kind, Value: v})
		return nil
	})
	if err != nil && !isMismatch(err) {
		return nil, err
	}
	return &Packet{Header: hdr, Entries: entries}, err
}

// Chunks splits b into its header and raw chunks without interpreting the
// chunk bodies. The same structural checks as Decode apply. On failure the
// chunks read before the failing one are returned with the error, which
// makes Chunks suitable for inspecting damaged packets.
func Chunks(b []byte) (Header, []Chunk, error) {
	var chunks []Chunk
	hdr, err := walk(b, func(c Chunk) error {
		chunks = append(chunks, c)
		return nil
	})
	return hdr, chunks, err
}

// walk parses the header and calls fn for each chunk until the declared
// payload size has been consumed.
func walk(b []byte, fn func(Chunk) error) (Header, error) {
	hdr, err := ParseHeader(b)
	if err != nil {
		return Header{}, err
	}

	cursor := HeaderSize
	var consumed uint64
	for consumed < uint64(hdr.PayloadSize) {
		if len(b)-cursor < chunkHeaderSize {
			return hdr, decodeErr(cursor, fmt.Errorf("%w: %d bytes left", ErrTruncatedChunkHeader, len(b)-cursor))
		}

		kind, err := ParseChunkKind(b[cursor])
		if err != nil {
			return hdr, decodeErr(cursor, err)
		}
		length := b[cursor+1]

		start := cursor + chunkHeaderSize
		if len(b)-start < int(length) {
			return hdr, decodeErr(start, fmt.Errorf("%w: %s needs %d bytes, %d left", ErrTruncatedChunkBody, kind, length, len(b)-start))
		}

		consumed += chunkHeaderSize + uint64(length)
		c := Chunk{
			Kind:   kind,
			Length: length,
			Body:   b[start : start+int(length) : start+int(length)],
			Offset: cursor,
		}
		cursor = start + int(length)

		if err := fn(c); err != nil {
			return hdr, err
		}
	}

	if consumed > uint64(hdr.PayloadSize) {
		return hdr, decodeErr(cursor, fmt.Errorf("%w: consumed %d bytes, header declares %d",
			ErrPayloadSizeMismatch, consumed, hdr.PayloadSize))
	}
	return hdr, nil
}

func isMismatch(err error) bool {
	return errors.Is(err, ErrPayloadSizeMismatch)
}
