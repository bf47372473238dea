package oead

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildPublicSamplePio() *AampParameterIO {
	obj := NewAampParameterObject()
	obj.SetNamed("Hp", NewAampInt(100))
	obj.SetNamed("Speed", NewAampF32(1.5))
	obj.SetNamed("Pos", NewAampVec3(1, 2, 3))

	root := NewAampParameterList()
	root.SetObjectNamed("Content", obj)

	return &AampParameterIO{Type: "test_pio", Version: 0, Root: root}
}

func TestAampBinaryRoundTrip(t *testing.T) {
	pio := buildPublicSamplePio()

	data, err := AampToBinary(pio)
	require.NoError(t, err)

	got, err := AampFromBinary(data)
	require.NoError(t, err)
	require.True(t, pio.Equal(got))
}

func TestAampTextRoundTrip(t *testing.T) {
	pio := buildPublicSamplePio()

	text, err := AampToText(pio)
	require.NoError(t, err)
	// None of this sample's names ("Content", "Hp", "Speed", "Pos") are in
	// internal/nametable's dictionary, so every key falls back to the
	// explicit hex hash form per spec §4.6/E6 rather than the bare name.
	require.True(t, strings.Contains(text, fmt.Sprintf("0x%08X", AampHash("Hp"))))

	got, err := AampFromText([]byte(text))
	require.NoError(t, err)
	require.True(t, pio.Equal(got))
}

func TestAampCrossFormatRoundTrip(t *testing.T) {
	pio := buildPublicSamplePio()

	data, err := AampToBinary(pio)
	require.NoError(t, err)
	fromBinary, err := AampFromBinary(data)
	require.NoError(t, err)

	text, err := AampToText(fromBinary)
	require.NoError(t, err)
	fromText, err := AampFromText([]byte(text))
	require.NoError(t, err)

	require.True(t, pio.Equal(fromText))
}

// TestE4EmptyFixedStringRoundTrip is spec.md scenario E4: an empty fixed-width
// string parameter must not collapse into a YAML null on the text round trip.
func TestE4EmptyFixedStringRoundTrip(t *testing.T) {
	obj := NewAampParameterObject()
	obj.SetNamed("Label", NewAampString64(""))

	root := NewAampParameterList()
	root.SetObjectNamed("Content", obj)
	pio := &AampParameterIO{Type: "test_pio", Version: 0, Root: root}

	text, err := AampToText(pio)
	require.NoError(t, err)
	require.NotContains(t, text, "~")

	got, err := AampFromText([]byte(text))
	require.NoError(t, err)
	require.True(t, pio.Equal(got))

	data, err := AampToBinary(pio)
	require.NoError(t, err)
	gotBinary, err := AampFromBinary(data)
	require.NoError(t, err)
	require.True(t, pio.Equal(gotBinary))
}

func TestAampHashStability(t *testing.T) {
	require.Equal(t, uint32(0x7aeace82), AampHash("Foo_Bar"))
}

func TestAampBufferTypesRoundTrip(t *testing.T) {
	obj := NewAampParameterObject()
	obj.SetNamed("Ints", NewAampBufferInt([]int32{1, -2, 3}))
	obj.SetNamed("Floats", NewAampBufferF32([]float32{1.5, -2.5}))
	obj.SetNamed("U32s", NewAampBufferU32([]uint32{1, 2, 3}))
	obj.SetNamed("Bin", NewAampBufferBinary([]byte{0xDE, 0xAD, 0xBE, 0xEF}))

	root := NewAampParameterList()
	root.SetObjectNamed("Content", obj)
	pio := &AampParameterIO{Type: "test_pio", Version: 0, Root: root}

	data, err := AampToBinary(pio)
	require.NoError(t, err)
	gotBinary, err := AampFromBinary(data)
	require.NoError(t, err)
	require.True(t, pio.Equal(gotBinary))

	text, err := AampToText(pio)
	require.NoError(t, err)
	gotText, err := AampFromText([]byte(text))
	require.NoError(t, err)
	require.True(t, pio.Equal(gotText))
}
