package oead

import "github.com/zeldamods/oead/internal/yaz0core"

// Yaz0Header is the fixed 16-byte preamble of a Yaz0 stream: magic,
// big-endian uncompressed size, and 8 reserved bytes. Yaz0GetHeader reports
// the reserved bytes exactly as stored; Yaz0Compress always writes them as
// zero, so non-zero reserved bytes are not carried through a
// decompress/compress cycle.
type Yaz0Header struct {
	Magic            [4]byte
	UncompressedSize uint32
	Reserved         [8]byte
}

// Yaz0GetHeader parses just the header of a Yaz0 stream without
// decompressing the payload.
func Yaz0GetHeader(data []byte) (Yaz0Header, error) {
	h, err := yaz0core.GetHeader(data)
	if err != nil {
		return Yaz0Header{}, err
	}
	return Yaz0Header{Magic: h.Magic, UncompressedSize: h.UncompressedSize, Reserved: h.Reserved}, nil
}

// Yaz0Decompress decompresses a Yaz0-wrapped buffer, validating every
// back-reference against the bytes emitted so far.
func Yaz0Decompress(data []byte) ([]byte, error) {
	return yaz0core.Decompress(data)
}

// Yaz0DecompressUnsafe skips per-copy bounds checks once the header-declared
// output length is accepted. Use only on input already trusted (e.g.
// produced by this process).
func Yaz0DecompressUnsafe(data []byte) ([]byte, error) {
	return yaz0core.DecompressUnsafe(data)
}

// Yaz0Compress compresses data at the given quality level, clamped to
// [6,9]: higher levels search deeper hash chains and enable one-step lazy
// matching (spec §4.2).
func Yaz0Compress(data []byte, level int) []byte {
	return yaz0core.Compress(data, level)
}
