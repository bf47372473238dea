package yaz0core

import (
	"encoding/binary"

	"github.com/zeldamods/oead/internal/utils"
)

// hashChainDepth scales the match-finder search depth with the requested
// quality level: higher levels walk further down each hash chain before
// settling for the best match found so far.
var hashChainDepth = map[int]int{
	6: 16,
	7: 32,
	8: 64,
	9: 128,
}

// lazyMatchMinLevel is the quality level at which lazy matching (look one
// position ahead before committing to a length-3 match) kicks in.
const lazyMatchMinLevel = 7

const hashBits = 15
const hashSize = 1 << hashBits

func hash3(b0, b1, b2 byte) uint32 {
	h := uint32(b0)<<16 | uint32(b1)<<8 | uint32(b2)
	h *= 2654435761
	return h >> (32 - hashBits)
}

// matchFinder is a hash-chain LZ77 searcher over a single input buffer: head
// maps a 3-byte prefix hash to the most recent position with that prefix,
// and prev chains each position back to the previous one sharing the hash.
type matchFinder struct {
	data  []byte
	head  []int32
	prev  []int32
	depth int
}

func newMatchFinder(data []byte, level int) *matchFinder {
	depth := hashChainDepth[level]
	if depth == 0 {
		depth = hashChainDepth[9]
	}
	head := make([]int32, hashSize)
	for i := range head {
		head[i] = -1
	}
	return &matchFinder{
		data:  data,
		head:  head,
		prev:  make([]int32, len(data)),
		depth: depth,
	}
}

// insert records pos in the hash chain for the 3-byte prefix starting there.
func (m *matchFinder) insert(pos int) {
	if pos+minMatchLen > len(m.data) {
		return
	}
	h := hash3(m.data[pos], m.data[pos+1], m.data[pos+2])
	m.prev[pos] = m.head[h]
	m.head[h] = int32(pos)
}

// bestMatch returns the longest match at pos within the last maxBackDistance
// bytes, or (0, 0) if none reaches minMatchLen.
func (m *matchFinder) bestMatch(pos int) (length, distance int) {
	if pos+minMatchLen > len(m.data) {
		return 0, 0
	}
	h := hash3(m.data[pos], m.data[pos+1], m.data[pos+2])
	cand := m.head[h]
	limit := pos - maxBackDistance
	if limit < 0 {
		limit = 0
	}

	maxLen := len(m.data) - pos
	if maxLen > maxMatchLen {
		maxLen = maxMatchLen
	}

	for tries := 0; cand >= int32(limit) && tries < m.depth; tries++ {
		c := int(cand)
		l := matchLength(m.data, c, pos, maxLen)
		if l > length {
			length = l
			distance = pos - c
			if length >= maxLen {
				break
			}
		}
		cand = m.prev[c]
	}

	if length < minMatchLen {
		return 0, 0
	}
	return length, distance
}

func matchLength(data []byte, a, b, maxLen int) int {
	n := 0
	for n < maxLen && data[a+n] == data[b+n] {
		n++
	}
	return n
}

// Compress encodes data at the given quality level (6..9). Higher levels
// search deeper hash chains and, from level 7 up, apply one-step lazy
// matching: a length-3 match is deferred as a literal if the very next
// position offers a strictly longer one.
func Compress(data []byte, level int) []byte {
	if level < 6 {
		level = 6
	}
	if level > 9 {
		level = 9
	}

	// The working buffer starts life as pool scratch (mirrors the teacher's
	// GetBuffer/ReleaseBuffer pattern for ephemeral read/write buffers); it
	// may outgrow the pooled capacity via append for incompressible input,
	// in which case the final copy below still returns a right-sized slice.
	scratch := utils.GetBuffer(HeaderSize + len(data)/2 + 16)
	defer utils.ReleaseBuffer(scratch)

	out := scratch[:HeaderSize]
	copy(out[0:4], Magic)
	binary.BigEndian.PutUint32(out[4:8], uint32(len(data)))
	// Reserved bytes are left zero for output this module produces; inputs
	// with non-zero reserved bytes are only round-tripped through
	// Decompress/Header, never re-synthesised by Compress.

	mf := newMatchFinder(data, level)
	lazy := level >= lazyMatchMinLevel

	var groupFlags byte
	var groupBits int
	groupOffset := len(out)
	out = append(out, 0) // placeholder flag byte

	flushLiteral := func(b byte) {
		groupFlags = (groupFlags << 1) | 1
		groupBits++
		out = append(out, b)
	}
	flushMatch := func(length, distance int) {
		groupFlags <<= 1
		groupBits++
		d := distance - 1
		if length <= 17 {
			nibble := byte(length - shortLenNibbleLo)
			code := uint16(nibble)<<12 | uint16(d&0x0FFF)
			out = append(out, byte(code>>8), byte(code))
		} else {
			code := uint16(d & 0x0FFF)
			out = append(out, byte(code>>8), byte(code), byte(length-longLenBase))
		}
	}
	startGroup := func() {
		if groupBits > 0 {
			out[groupOffset] = groupFlags << (8 - groupBits)
		}
		groupFlags = 0
		groupBits = 0
		groupOffset = len(out)
		out = append(out, 0)
	}

	pos := 0
	for pos < len(data) {
		if groupBits == 8 {
			startGroup()
		}

		length, distance := mf.bestMatch(pos)
		mf.insert(pos)

		if length >= minMatchLen && lazy && length == minMatchLen && pos+1 < len(data) {
			nextLen, _ := mf.bestMatch(pos + 1)
			if nextLen >= minMatchLen+1 {
				length = 0 // defer: next position offers a strictly longer match
			}
		}

		if length >= minMatchLen {
			flushMatch(length, distance)
			for i := 1; i < length; i++ {
				mf.insert(pos + i)
			}
			pos += length
		} else {
			flushLiteral(data[pos])
			pos++
		}
	}
	startGroup()
	// Drop the trailing placeholder group the loop always appends.
	out = out[:len(out)-1]

	result := make([]byte, len(out))
	copy(result, out)
	return result
}
