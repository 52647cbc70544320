package buffer

import (
	"testing"

	"github.com/hupe1980/graphstore/core"
	"github.com/stretchr/testify/assert"
)

func TestEdgeBuffer(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		b := New[string]()

		b.Add(0, 1, "a")
		b.Add(1, 2, "b")
		b.Add(0, 1, "a2") // parallel edge stays distinct
		b.Add(2, 2, "loop")

		assert.Equal(t, 4, b.Len())
		assert.Equal(t, []string{"a", "b", "a2", "loop"}, b.Data)
	})

	t.Run("AddMany", func(t *testing.T) {
		b := New[string]()
		b.Add(0, 1, "a")

		b.AddMany(
			[]core.VertexID{1, 2},
			[]core.VertexID{2, 0},
			[]string{"b", "c"},
		)

		assert.Equal(t, 3, b.Len())
		assert.Equal(t, []core.VertexID{0, 1, 2}, b.Sources)
		assert.Equal(t, []core.VertexID{1, 2, 0}, b.Targets)
		assert.Equal(t, []string{"a", "b", "c"}, b.Data)
	})

	t.Run("Reserve", func(t *testing.T) {
		b := New[int]()
		b.Add(0, 1, 7)

		b.Reserve(128)

		assert.Equal(t, 1, b.Len())
		assert.GreaterOrEqual(t, cap(b.Sources), 128)
		assert.Equal(t, 7, b.Data[0])
	})

	t.Run("Clear", func(t *testing.T) {
		b := New[int]()
		b.Add(0, 1, 1)
		b.Add(1, 0, 2)

		b.Clear()

		assert.Equal(t, 0, b.Len())
	})
}
