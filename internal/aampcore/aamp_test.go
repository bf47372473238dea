package aampcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSamplePio() *ParameterIO {
	root := NewParameterList()
	obj := NewParameterObject()
	obj.SetNamed("TestInt", NewInt(42))
	obj.SetNamed("TestBool", NewBool(true))
	obj.SetNamed("TestVec3", NewVec3(1, 2, 3))
	root.SetObjectNamed("TestContent", obj)

	child := NewParameterList()
	childObj := NewParameterObject()
	childObj.SetNamed("Nested", NewU32(7))
	child.SetObjectNamed("NestedContent", childObj)
	root.SetListNamed("Child", child)

	return &ParameterIO{Type: "oead_test", Version: 10, Root: root}
}

// TestE4EmptyFixedStringsRoundTrip is spec.md scenario E4: empty fixed-width
// strings must survive binary and text round-trips as empty strings, never
// as null.
func TestE4EmptyFixedStringsRoundTrip(t *testing.T) {
	root := NewParameterList()
	obj := NewParameterObject()
	obj.SetNamed("Str64_empty", NewString64(""))
	obj.SetNamed("Str64_empty2", NewString64(""))
	root.SetObjectNamed("TestContent", obj)
	pio := &ParameterIO{Type: "oead_test", Version: 10, Root: root}

	text, err := ToText(pio)
	require.NoError(t, err)
	got, err := FromText([]byte(text))
	require.NoError(t, err)
	require.True(t, pio.Equal(got))

	o, ok := got.Root.GetObjectNamed("TestContent")
	require.True(t, ok)
	p, ok := o.GetNamed("Str64_empty")
	require.True(t, ok)
	s, isStr := p.Str()
	require.True(t, isStr)
	assert.Equal(t, "", s)

	data, err := ToBinary(pio)
	require.NoError(t, err)
	backBin, err := FromBinary(data)
	require.NoError(t, err)
	require.True(t, pio.Equal(backBin))
}

func TestBinaryRoundTrip(t *testing.T) {
	pio := buildSamplePio()
	data, err := ToBinary(pio)
	require.NoError(t, err)

	got, err := FromBinary(data)
	require.NoError(t, err)
	require.True(t, pio.Equal(got))
}

func TestTextRoundTrip(t *testing.T) {
	pio := buildSamplePio()
	text, err := ToText(pio)
	require.NoError(t, err)

	got, err := FromText([]byte(text))
	require.NoError(t, err)
	require.True(t, pio.Equal(got))
}

func TestCrossFormatRoundTrip(t *testing.T) {
	pio := buildSamplePio()
	data, err := ToBinary(pio)
	require.NoError(t, err)

	fromBin, err := FromBinary(data)
	require.NoError(t, err)

	text, err := ToText(fromBin)
	require.NoError(t, err)

	fromText, err := FromText([]byte(text))
	require.NoError(t, err)
	require.True(t, fromBin.Equal(fromText))
}

// TestE6UnknownNameHashFallback is spec.md scenario E6: a parameter whose
// name is not in the name table emits textually as !h 0x... and parses back
// to the same hash.
func TestE6UnknownNameHashFallback(t *testing.T) {
	root := NewParameterList()
	obj := NewParameterObject()
	const unknownName = "ZzzNotInAnyDictionary_qqq123"
	obj.SetNamed(unknownName, NewU32(1))
	root.SetObjectNamed("TestContent", obj)
	pio := &ParameterIO{Type: "oead_test", Version: 1, Root: root}

	text, err := ToText(pio)
	require.NoError(t, err)
	assert.Contains(t, text, "!h 0x")

	got, err := FromText([]byte(text))
	require.NoError(t, err)

	o, ok := got.Root.GetObjectNamed("TestContent")
	require.True(t, ok)
	_, ok = o.GetNamed(unknownName)
	require.True(t, ok, "hash of unknown name must still resolve the same param")
}

// TestE6NameHashStability matches spec.md invariant 6: CRC32("Foo_Bar")
// matches a published reference vector.
func TestE6NameHashStability(t *testing.T) {
	assert.Equal(t, uint32(0x7aeace82), Hash("Foo_Bar"))
}

func TestBufferTypesRoundTrip(t *testing.T) {
	root := NewParameterList()
	obj := NewParameterObject()
	obj.SetNamed("BufI", NewBufferInt([]int32{1, -2, 3}))
	obj.SetNamed("BufF", NewBufferF32([]float32{1.5, -2.5}))
	obj.SetNamed("BufU", NewBufferU32([]uint32{1, 2, 3}))
	obj.SetNamed("BufB", NewBufferBinary([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	root.SetObjectNamed("Buffers", obj)
	pio := &ParameterIO{Type: "oead_test", Version: 1, Root: root}

	data, err := ToBinary(pio)
	require.NoError(t, err)
	got, err := FromBinary(data)
	require.NoError(t, err)
	require.True(t, pio.Equal(got))

	text, err := ToText(pio)
	require.NoError(t, err)
	gotText, err := FromText([]byte(text))
	require.NoError(t, err)
	require.True(t, pio.Equal(gotText))
}

func TestBinaryRejectsBadMagic(t *testing.T) {
	_, err := FromBinary([]byte("XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"))
	require.Error(t, err)
}

func TestBinaryRejectsBadVersion(t *testing.T) {
	data := make([]byte, 48)
	copy(data, []byte("AAMP"))
	data[4] = 99 // version
	_, err := FromBinary(data)
	require.Error(t, err)
}
