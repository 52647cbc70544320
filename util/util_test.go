package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomEdges(t *testing.T) {
	t.Run("InRange", func(t *testing.T) {
		rng := NewRNG(42)

		sources, targets := rng.GenerateRandomEdges(1000, 16)
		require.Len(t, sources, 1000)
		require.Len(t, targets, 1000)

		for i := range sources {
			assert.Less(t, uint32(sources[i]), uint32(16))
			assert.Less(t, uint32(targets[i]), uint32(16))
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		s1, t1 := NewRNG(7).GenerateRandomEdges(100, 32)
		s2, t2 := NewRNG(7).GenerateRandomEdges(100, 32)

		assert.Equal(t, s1, s2)
		assert.Equal(t, t1, t2)
	})
}
