package oead

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestE1Yaz0FourKiBOf0x41 is spec.md scenario E1 exercised through the
// public API.
func TestE1Yaz0FourKiBOf0x41(t *testing.T) {
	src := bytes.Repeat([]byte{0x41}, 4096)
	compressed := Yaz0Compress(src, 7)

	want := []byte{0x59, 0x61, 0x7A, 0x30, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	require.Equal(t, want, compressed[:16])

	out, err := Yaz0Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestYaz0HeaderAndUnsafeDecompress(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog")
	compressed := Yaz0Compress(src, 9)

	h, err := Yaz0GetHeader(compressed)
	require.NoError(t, err)
	require.Equal(t, uint32(len(src)), h.UncompressedSize)

	out, err := Yaz0DecompressUnsafe(compressed)
	require.NoError(t, err)
	require.Equal(t, src, out)
}
