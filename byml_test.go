package oead

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestE3HashAndArrayRoundTrip is spec.md scenario E3: a hash containing an
// array value, round-tripped through binary in both byte orders.
func TestE3HashAndArrayRoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		h := NewBymlHashMap()
		h.Set("Name", NewBymlString("Link"))
		h.Set("Items", NewBymlArray([]*BymlValue{
			NewBymlString("Sword"),
			NewBymlString("Shield"),
			NewBymlInt32(3),
		}))
		root := NewBymlHash(h)

		data, err := BymlToBinary(root, bigEndian, 2)
		require.NoError(t, err)

		got, err := BymlFromBinary(data)
		require.NoError(t, err)
		require.True(t, root.Equal(got), "big_endian=%v", bigEndian)
	}
}

// TestE5UnsignedRoundTrip is spec.md scenario E5: UInt32/UInt64 values retain
// their distinct type across a binary round trip rather than collapsing into
// the signed arms.
func TestE5UnsignedRoundTrip(t *testing.T) {
	h := NewBymlHashMap()
	h.Set("u32max", NewBymlUInt32(0xFFFFFFFF))
	h.Set("u64max", NewBymlUInt64(0xFFFFFFFFFFFFFFFF))
	h.Set("i32min", NewBymlInt32(-2147483648))
	root := NewBymlHash(h)

	data, err := BymlToBinary(root, false, 2)
	require.NoError(t, err)

	got, err := BymlFromBinary(data)
	require.NoError(t, err)

	gotHash, ok := got.HashValue()
	require.True(t, ok)

	u32v, ok := gotHash.Get("u32max")
	require.True(t, ok)
	u32, matched := u32v.UInt32()
	require.True(t, matched)
	require.Equal(t, uint32(0xFFFFFFFF), u32)

	u64v, ok := gotHash.Get("u64max")
	require.True(t, ok)
	u64, matched := u64v.UInt64()
	require.True(t, matched)
	require.Equal(t, uint64(0xFFFFFFFFFFFFFFFF), u64)
}

func TestBymlTextRoundTrip(t *testing.T) {
	h := NewBymlHashMap()
	h.Set("flag", NewBymlBool(true))
	h.Set("empty", NewBymlString(""))
	root := NewBymlHash(h)

	text, err := BymlToText(root)
	require.NoError(t, err)

	got, err := BymlFromText([]byte(text))
	require.NoError(t, err)
	require.True(t, root.Equal(got))
}

func TestBymlCrossFormatRoundTrip(t *testing.T) {
	root := NewBymlArray([]*BymlValue{
		NewBymlFloat32(1.5),
		NewBymlFloat64(2.5),
		NewBymlBinary([]byte{0xDE, 0xAD, 0xBE, 0xEF}),
	})

	data, err := BymlToBinary(root, false, 4)
	require.NoError(t, err)
	fromBinary, err := BymlFromBinary(data)
	require.NoError(t, err)

	text, err := BymlToText(fromBinary)
	require.NoError(t, err)
	fromText, err := BymlFromText([]byte(text))
	require.NoError(t, err)

	require.True(t, root.Equal(fromText))
}
