package nametable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownName(t *testing.T) {
	h := Hash("ActorRoot")
	name, ok := Lookup(h)
	require.True(t, ok)
	assert.Equal(t, "ActorRoot", name)
}

func TestLookupUnknownHash(t *testing.T) {
	_, ok := Lookup(0xDEADBEEF)
	assert.False(t, ok)
}

func TestLookupNumberedSuffixes(t *testing.T) {
	for _, name := range []string{"ItemRow0", "ItemRow_0", "ItemRow999", "RecipeData_42"} {
		got, ok := Lookup(Hash(name))
		require.True(t, ok, name)
		assert.Equal(t, name, got)
	}
}

func TestLookupConcurrentSafe(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Lookup(Hash("ActorRoot"))
		}()
	}
	wg.Wait()
}
