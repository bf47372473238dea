package bymlcore

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSample() *Value {
	h := NewHashMap()
	h.Set("key", NewInt32(1))
	h.Set("arr", NewArray([]*Value{NewBool(true), NewNull(), NewFloat32(3.5)}))
	return NewHash(h)
}

// TestE3HashArrayRoundTrip is spec.md scenario E3: a hash with a nested
// array round-trips through binary in both byte orders to an equal tree
// (Equal ignores key order), with both keys present after parsing.
func TestE3HashArrayRoundTrip(t *testing.T) {
	root := buildSample()

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		data, err := ToBinary(root, order, 4)
		require.NoError(t, err)

		got, err := FromBinary(data)
		require.NoError(t, err)
		require.True(t, root.Equal(got))

		h, ok := got.HashValue()
		require.True(t, ok)
		require.Equal(t, []string{"arr", "key"}, h.SortedKeys())
	}
}

func TestTextRoundTripPreservesKeyOrder(t *testing.T) {
	h := NewHashMap()
	h.Set("zebra", NewInt32(1))
	h.Set("alpha", NewInt32(2))
	root := NewHash(h)

	text, err := ToText(root)
	require.NoError(t, err)

	got, err := FromText([]byte(text))
	require.NoError(t, err)
	require.True(t, root.Equal(got))

	gh, _ := got.HashValue()
	require.Equal(t, []string{"zebra", "alpha"}, gh.Keys())
}

// TestE5UnsignedRoundTrip is spec.md scenario E5: UInt32 max value must
// round-trip as unsigned, never reinterpreted as a signed -1.
func TestE5UnsignedRoundTrip(t *testing.T) {
	root := NewUInt32(4294967295)
	text, err := ToText(root)
	require.NoError(t, err)
	require.Contains(t, text, "!u")

	got, err := FromText([]byte(text))
	require.NoError(t, err)
	u, ok := got.UInt32()
	require.True(t, ok)
	require.Equal(t, uint32(4294967295), u)

	data, err := ToBinary(NewHash(mustHash("v", root)), binary.LittleEndian, 4)
	require.NoError(t, err)
	back, err := FromBinary(data)
	require.NoError(t, err)
	bh, _ := back.HashValue()
	bv, _ := bh.Get("v")
	bu, _ := bv.UInt32()
	require.Equal(t, uint32(4294967295), bu)
}

func mustHash(k string, v *Value) *Hash {
	h := NewHashMap()
	h.Set(k, v)
	return h
}

func TestStringDisambiguatedFromNumber(t *testing.T) {
	h := NewHashMap()
	h.Set("looks_numeric", NewString("12345"))
	root := NewHash(h)

	text, err := ToText(root)
	require.NoError(t, err)
	got, err := FromText([]byte(text))
	require.NoError(t, err)
	require.True(t, root.Equal(got))
}

func TestContainerDeduplication(t *testing.T) {
	shared := NewArray([]*Value{NewInt32(1), NewInt32(2)})
	h := NewHashMap()
	h.Set("a", shared)
	h.Set("b", NewArray([]*Value{NewInt32(1), NewInt32(2)}))
	root := NewHash(h)

	data, err := ToBinary(root, binary.LittleEndian, 4)
	require.NoError(t, err)

	got, err := FromBinary(data)
	require.NoError(t, err)
	require.True(t, root.Equal(got))
}

func TestDuplicateKeyRejectedInText(t *testing.T) {
	yamlText := "a: 1\na: 2\n"
	_, err := FromText([]byte(yamlText))
	require.Error(t, err)
}

func TestBinaryRejectsBadMagic(t *testing.T) {
	_, err := FromBinary([]byte("XXXXXXXXXXXXXXXX"))
	require.Error(t, err)
}

func TestBinaryRejectsUnsupportedVersion(t *testing.T) {
	data := []byte{'Y', 'B', 99, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	_, err := FromBinary(data)
	require.Error(t, err)
}

func TestToBinaryRejectsNonContainerRoot(t *testing.T) {
	_, err := ToBinary(NewInt32(1), binary.LittleEndian, 4)
	require.Error(t, err)
}

func TestBinaryValue(t *testing.T) {
	h := NewHashMap()
	h.Set("blob", NewBinary([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	root := NewHash(h)

	data, err := ToBinary(root, binary.LittleEndian, 4)
	require.NoError(t, err)
	got, err := FromBinary(data)
	require.NoError(t, err)
	require.True(t, root.Equal(got))
}
