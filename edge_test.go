package graphstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeRange(t *testing.T) {
	g := newTestGraph(t)

	t.Run("LenAndAt", func(t *testing.T) {
		out := g.OutEdges(0)

		require.Equal(t, 2, out.Len())
		assert.False(t, out.IsEmpty())

		assert.Equal(t, "a", out.At(0).Data())
		assert.Equal(t, "c", out.At(1).Data())

		assert.Panics(t, func() { out.At(2) })
		assert.Panics(t, func() { out.At(-1) })
	})

	t.Run("Empty", func(t *testing.T) {
		out := g.OutEdges(2)

		assert.Equal(t, 0, out.Len())
		assert.True(t, out.IsEmpty())

		begin, end := out.Begin(), out.End()
		eq, err := begin.Equal(end)
		require.NoError(t, err)
		assert.True(t, eq)
	})
}

func TestEdgeIterator(t *testing.T) {
	g := newTestGraph(t)

	t.Run("Walk", func(t *testing.T) {
		out := g.OutEdges(0)

		it := out.Begin()
		assert.Equal(t, "a", it.Edge().Data())

		it.Next()
		assert.Equal(t, "c", it.Edge().Data())

		it.Prev()
		assert.Equal(t, "a", it.Edge().Data())

		it.Advance(2)
		eq, err := it.Equal(out.End())
		require.NoError(t, err)
		assert.True(t, eq)

		it.Advance(-2)
		assert.Equal(t, "a", it.Edge().Data())
	})

	t.Run("DistanceTo", func(t *testing.T) {
		out := g.OutEdges(0)

		d, err := out.Begin().DistanceTo(out.End())
		require.NoError(t, err)
		assert.Equal(t, 2, d)

		d, err = out.End().DistanceTo(out.Begin())
		require.NoError(t, err)
		assert.Equal(t, -2, d)
	})

	t.Run("DirectionMismatch", func(t *testing.T) {
		out := g.OutEdges(1).Begin()
		in := g.InEdges(2).Begin()

		_, err := out.Equal(in)
		var mismatch *ErrDirectionMismatch
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, DirectionOut, mismatch.A)
		assert.Equal(t, DirectionIn, mismatch.B)

		_, err = out.DistanceTo(in)
		assert.ErrorAs(t, err, &mismatch)
	})

	t.Run("SamePositionDifferentDirection", func(t *testing.T) {
		// Both iterators sit at position 0 of their index; they must not
		// compare equal just because the positions coincide.
		out := g.OutEdges(0).Begin()
		in := g.InEdges(1).Begin()

		_, err := out.Equal(in)
		assert.Error(t, err)
	})

	t.Run("ReverseFlavor", func(t *testing.T) {
		in := g.InEdges(2)

		it := in.Begin()
		e := it.Edge()
		assert.Equal(t, "c", e.Data())
		assert.Equal(t, uint32(0), uint32(e.Source()))
		assert.Equal(t, uint32(2), uint32(e.Target()))

		it.Next()
		e = it.Edge()
		assert.Equal(t, "b", e.Data())
		assert.Equal(t, uint32(1), uint32(e.Source()))
	})
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "out", DirectionOut.String())
	assert.Equal(t, "in", DirectionIn.String())
	assert.Equal(t, "direction(9)", Direction(9).String())
}
