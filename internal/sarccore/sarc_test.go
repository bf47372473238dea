package sarccore

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameHash(t *testing.T) {
	// h = h*mul + b over each byte, unsigned 32-bit, mul = 0x65.
	h := NameHash("a", DefaultHashMultiplier)
	require.Equal(t, uint32('a'), h)

	h2 := NameHash("ab", DefaultHashMultiplier)
	require.Equal(t, uint32('a')*DefaultHashMultiplier+uint32('b'), h2)
}

// TestE2TwoFileArchive is spec.md scenario E2: two files, default 4-byte
// alignment, SFAT records in strictly ascending hash order.
func TestE2TwoFileArchive(t *testing.T) {
	w := NewWriter(binary.LittleEndian, 0)
	w.Add("a", []byte{1, 2, 3, 4}, 0)
	w.Add("b", []byte{5, 6, 7, 8}, 0)

	alignment, data, err := w.Write()
	require.NoError(t, err)
	require.Equal(t, uint32(4), alignment)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, doc.Files(), 2)

	hashes := make([]uint32, len(doc.Files()))
	for i, f := range doc.Files() {
		hashes[i] = NameHash(f.Name, DefaultHashMultiplier)
	}
	require.True(t, hashes[0] < hashes[1], "SFAT records must be in strictly ascending hash order")

	a, ok := doc.Get("a")
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3, 4}, a)

	b, ok := doc.Get("b")
	require.True(t, ok)
	require.Equal(t, []byte{5, 6, 7, 8}, b)
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := Parse([]byte("NOPE"))
	require.Error(t, err)
}

func TestWriterBigEndianRoundTrip(t *testing.T) {
	w := NewWriter(binary.BigEndian, 0)
	w.Add("deeply/nested/path.txt", []byte("hello world"), 0)

	_, data, err := w.Write()
	require.NoError(t, err)
	require.Equal(t, byte(0xFE), data[6])
	require.Equal(t, byte(0xFF), data[7])

	doc, err := Parse(data)
	require.NoError(t, err)
	got, ok := doc.Get("deeply/nested/path.txt")
	require.True(t, ok)
	require.Equal(t, []byte("hello world"), got)
}

func TestSniffAlignment(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"bntx", []byte("BNTX00000000"), 0x1000},
		{"bnsh", []byte("BNSH00000000"), 0x1000},
		{"fres", []byte("FRES00000000"), 0x2000},
		{"gfx2", []byte("Gfx200000000"), 0x2000},
		{"nested sarc", []byte("SARC00000000"), 0x2000},
		{"aamp", []byte("AAMP00000000"), 8},
		{"byml be", []byte("BY0000000000"), 4},
		{"byml le", []byte("YB0000000000"), 4},
		{"unknown", []byte("????00000000"), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sniffAlignment(tt.data))
		})
	}
}

func TestPerFileAlignmentRespected(t *testing.T) {
	w := NewWriter(binary.LittleEndian, 0)
	w.Add("tex.bntx", append([]byte("BNTX"), make([]byte, 32)...), 0)
	w.Add("plain.bin", []byte{0xAA}, 0)

	alignment, data, err := w.Write()
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), alignment)

	doc, err := Parse(data)
	require.NoError(t, err)

	// Locate each file's bytes in the raw archive and check that offset
	// against the file's sniffed alignment.
	for _, f := range doc.Files() {
		align := sniffAlignment(f.Data)
		if align < DefaultMinAlignment {
			align = DefaultMinAlignment
		}
		// Offset of the first occurrence of the file's bytes in data.
		off := findOffset(data, f.Data)
		require.GreaterOrEqual(t, off, 0)
		require.Equal(t, 0, off%int(align))
	}
}

func findOffset(haystack, needle []byte) int {
	if len(needle) == 0 {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func TestFromDocumentPreservesFiles(t *testing.T) {
	w := NewWriter(binary.LittleEndian, 0)
	w.Add("a", []byte{1}, 0)
	w.Add("b", []byte{2}, 0)
	_, data, err := w.Write()
	require.NoError(t, err)

	doc, err := Parse(data)
	require.NoError(t, err)

	w2 := FromDocument(doc)
	_, data2, err := w2.Write()
	require.NoError(t, err)

	doc2, err := Parse(data2)
	require.NoError(t, err)
	require.Len(t, doc2.Files(), 2)
	a, _ := doc2.Get("a")
	require.Equal(t, []byte{1}, a)
}
