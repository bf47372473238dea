// Package yaz0core implements the Yaz0 compression codec: a run-length/LZ77
// style scheme used to wrap SARC archives and other EAD asset payloads.
//
// The bitstream groups 8 decisions under one leading flag byte (MSB first):
// a set bit copies one literal byte from the input, a clear bit reads a
// 16-bit back-reference code word. The decoder never needs to distinguish
// "copying from output already written" versus "copying from output about to
// be written" — both are the same byte-by-byte loop, which is what makes
// overlapping runs (length > distance) fall out for free.
package yaz0core

import (
	"encoding/binary"

	"github.com/zeldamods/oead/internal/utils"
)

// HeaderSize is the fixed Yaz0 header: magic + size + 8 reserved bytes.
const HeaderSize = 16

// Magic is the 4-byte signature every Yaz0 stream starts with.
const Magic = "Yaz0"

const (
	minMatchLen      = 3
	maxMatchLen      = 273
	maxBackDistance  = 4096
	shortLenNibbleLo = 2  // length = nibble + shortLenNibbleLo when nibble != 0
	longLenBase      = 18 // length = extra byte + longLenBase when nibble == 0
)

// Header is the fixed 16-byte Yaz0 preamble.
type Header struct {
	Magic            [4]byte
	UncompressedSize uint32
	Reserved         [8]byte
}

// GetHeader parses just the header of a Yaz0 stream without decompressing
// the payload.
func GetHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, utils.WrapError("yaz0 header", utils.ErrTruncated)
	}
	if string(data[:4]) != Magic {
		return h, utils.WrapError("yaz0 header", utils.ErrBadMagic)
	}
	copy(h.Magic[:], data[:4])
	h.UncompressedSize = binary.BigEndian.Uint32(data[4:8])
	copy(h.Reserved[:], data[8:16])
	return h, nil
}

// Decompress validates every read and write against buffer bounds.
func Decompress(data []byte) ([]byte, error) {
	return decompress(data, true)
}

// DecompressUnsafe skips per-copy bound checks once the header-declared
// output length has been accepted; callers that trust the input (e.g.
// re-decompressing an archive this process just produced) can use it to
// avoid the bookkeeping cost of the safe path.
func DecompressUnsafe(data []byte) ([]byte, error) {
	return decompress(data, false)
}

func decompress(data []byte, checked bool) ([]byte, error) {
	h, err := GetHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(h.UncompressedSize) > utils.MaxYaz0Output {
		return nil, utils.WrapError("yaz0 decompress", utils.ErrOutputOverflow)
	}

	out := make([]byte, 0, h.UncompressedSize)
	in := data[HeaderSize:]
	pos := 0

	readByte := func() (byte, error) {
		if pos >= len(in) {
			return 0, utils.ErrTruncated
		}
		b := in[pos]
		pos++
		return b, nil
	}

	for len(out) < int(h.UncompressedSize) {
		flags, err := readByte()
		if err != nil {
			return nil, utils.WrapOffset("yaz0 group flag", pos, err)
		}

		for bit := 0; bit < 8 && len(out) < int(h.UncompressedSize); bit++ {
			if flags&0x80 != 0 {
				b, err := readByte()
				if err != nil {
					return nil, utils.WrapOffset("yaz0 literal", pos, err)
				}
				out = append(out, b)
			} else {
				hi, err := readByte()
				if err != nil {
					return nil, utils.WrapOffset("yaz0 back-ref", pos, err)
				}
				lo, err := readByte()
				if err != nil {
					return nil, utils.WrapOffset("yaz0 back-ref", pos, err)
				}
				code := uint16(hi)<<8 | uint16(lo)
				nibble := hi >> 4

				var length int
				if nibble != 0 {
					length = int(nibble) + shortLenNibbleLo
				} else {
					extra, err := readByte()
					if err != nil {
						return nil, utils.WrapOffset("yaz0 back-ref length", pos, err)
					}
					length = int(extra) + longLenBase
				}

				distance := int(code&0x0FFF) + 1
				if checked && distance > len(out) {
					return nil, utils.WrapOffset("yaz0 back-ref", pos, utils.ErrBackRefOutOfRange)
				}
				if checked && len(out)+length > int(h.UncompressedSize) {
					return nil, utils.WrapOffset("yaz0 back-ref", pos, utils.ErrOutputOverflow)
				}

				start := len(out) - distance
				for i := 0; i < length; i++ {
					out = append(out, out[start+i])
				}
			}
			flags <<= 1
		}
	}

	return out, nil
}
