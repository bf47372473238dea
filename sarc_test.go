package oead

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sarcNameHash(name string, mul uint32) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*mul + uint32(name[i])
	}
	return h
}

// TestE2TwoFileArchive is spec.md scenario E2: a two-file archive using the
// default 4-byte alignment and 0x65 hash multiplier, with SFAT nodes in
// strictly ascending hash order (spec §8 invariant 7).
func TestE2TwoFileArchive(t *testing.T) {
	w := NewSarcWriter(false, 4)
	w.Add("a", []byte{0x01, 0x02, 0x03, 0x04}, 0)
	w.Add("b", []byte{0x05, 0x06, 0x07, 0x08}, 0)

	alignment, data, err := w.Write()
	require.NoError(t, err)
	require.GreaterOrEqual(t, alignment, uint32(4))

	doc, err := SarcParse(data)
	require.NoError(t, err)
	files := doc.Files()
	require.Len(t, files, 2)

	got, ok := doc.Get("a")
	require.True(t, ok)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, got)
	got, ok = doc.Get("b")
	require.True(t, ok)
	require.Equal(t, []byte{0x05, 0x06, 0x07, 0x08}, got)

	hashA := sarcNameHash("a", 0x65)
	hashB := sarcNameHash("b", 0x65)
	wantFirst := "a"
	if hashB < hashA {
		wantFirst = "b"
	}
	require.Equal(t, wantFirst, files[0].Name)
}

func TestSarcRoundTripAlignment(t *testing.T) {
	w := NewSarcWriter(false, 4)
	w.Add("model.bntx", append([]byte("BNTX"), make([]byte, 12)...), 0)
	w.Add("params.aamp", append([]byte("AAMP"), make([]byte, 12)...), 0)

	alignment, data, err := w.Write()
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), alignment)

	doc, err := SarcParse(data)
	require.NoError(t, err)
	require.Len(t, doc.Files(), 2)
}

func TestSarcFromSarcRoundTrip(t *testing.T) {
	w := NewSarcWriter(false, 4)
	w.Add("x", []byte{1, 2, 3}, 0)
	_, data, err := w.Write()
	require.NoError(t, err)

	doc, err := SarcParse(data)
	require.NoError(t, err)

	w2 := FromSarc(doc)
	_, data2, err := w2.Write()
	require.NoError(t, err)

	doc2, err := SarcParse(data2)
	require.NoError(t, err)
	got, ok := doc2.Get("x")
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, got)
}
