package graphstore

import (
	"fmt"
	"iter"

	"github.com/hupe1980/graphstore/core"
)

// Direction selects which adjacency index an edge handle walks.
type Direction uint8

const (
	// DirectionOut walks the forward index: edges leaving a vertex.
	DirectionOut Direction = iota
	// DirectionIn walks the reverse index: edges arriving at a vertex.
	DirectionIn
)

func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "out"
	case DirectionIn:
		return "in"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Edge is a lightweight handle to a single edge. Endpoints and payload are
// resolved on demand from the owning storage, never stored in the handle, so
// a handle stays valid as long as its storage does.
//
// For an in-edge handle the payload lives in the forward index; Data follows
// the back-reference edge id stored in the reverse index.
type Edge[E any] struct {
	store  *Storage[E]
	dir    Direction
	vertex core.VertexID // the fixed endpoint: source for out, target for in
	pos    uint32        // position within the index selected by dir
}

// Source returns the edge's source vertex.
func (e Edge[E]) Source() core.VertexID {
	if e.dir == DirectionOut {
		return e.vertex
	}
	return e.store.rev.Values()[e.pos].Source
}

// Target returns the edge's target vertex.
func (e Edge[E]) Target() core.VertexID {
	if e.dir == DirectionOut {
		return e.store.fwd.Values()[e.pos].Target
	}
	return e.vertex
}

// ID returns the edge's canonical identifier: its position in the
// source-sorted forward index.
func (e Edge[E]) ID() core.EdgeID {
	if e.dir == DirectionOut {
		return core.EdgeID(e.pos)
	}
	return e.store.rev.Values()[e.pos].Edge
}

// Data returns the edge payload. For in-edges this is one indirection
// through the forward index.
func (e Edge[E]) Data() E {
	return e.store.fwd.Values()[e.ID()].Data
}

// EdgeIterator is a random-access cursor over one adjacency index. A value
// carries exactly one direction; operations combining two iterators reject
// mismatched directions instead of silently comparing unrelated positions.
type EdgeIterator[E any] struct {
	store  *Storage[E]
	dir    Direction
	vertex core.VertexID
	pos    uint32
}

// Edge returns the handle at the current position.
func (it *EdgeIterator[E]) Edge() Edge[E] {
	return Edge[E]{store: it.store, dir: it.dir, vertex: it.vertex, pos: it.pos}
}

// Next advances the iterator by one position.
func (it *EdgeIterator[E]) Next() {
	it.pos++
}

// Prev steps the iterator back by one position.
func (it *EdgeIterator[E]) Prev() {
	it.pos--
}

// Advance moves the iterator by a signed offset.
func (it *EdgeIterator[E]) Advance(n int) {
	it.pos = uint32(int(it.pos) + n)
}

// Equal reports whether both iterators are at the same position of the same
// index. Iterators of different directions are never equal; comparing them
// is a contract violation and returns ErrDirectionMismatch.
func (it *EdgeIterator[E]) Equal(other *EdgeIterator[E]) (bool, error) {
	if it.dir != other.dir {
		return false, &ErrDirectionMismatch{A: it.dir, B: other.dir}
	}
	return it.store == other.store && it.pos == other.pos, nil
}

// DistanceTo returns the signed number of positions from it to other.
// Defined only between iterators of the same direction.
func (it *EdgeIterator[E]) DistanceTo(other *EdgeIterator[E]) (int, error) {
	if it.dir != other.dir {
		return 0, &ErrDirectionMismatch{A: it.dir, B: other.dir}
	}
	return int(other.pos) - int(it.pos), nil
}

// EdgeRange is a view of the edges incident to one vertex in one direction.
// Ranges are cheap values; they borrow the storage's arrays rather than
// copying them.
type EdgeRange[E any] struct {
	store      *Storage[E]
	dir        Direction
	vertex     core.VertexID
	begin, end uint32
}

// Len returns the number of edges in the range.
func (r EdgeRange[E]) Len() int {
	return int(r.end - r.begin)
}

// IsEmpty reports whether the range contains no edges.
func (r EdgeRange[E]) IsEmpty() bool {
	return r.begin == r.end
}

// At returns the i-th edge of the range. i must be in [0, Len()).
func (r EdgeRange[E]) At(i int) Edge[E] {
	if i < 0 || i >= r.Len() {
		panic(fmt.Sprintf("graphstore: range index %d out of bounds [0, %d)", i, r.Len()))
	}
	return Edge[E]{store: r.store, dir: r.dir, vertex: r.vertex, pos: r.begin + uint32(i)}
}

// Begin returns an iterator at the first edge of the range.
func (r EdgeRange[E]) Begin() *EdgeIterator[E] {
	return &EdgeIterator[E]{store: r.store, dir: r.dir, vertex: r.vertex, pos: r.begin}
}

// End returns an iterator one past the last edge of the range.
func (r EdgeRange[E]) End() *EdgeIterator[E] {
	return &EdgeIterator[E]{store: r.store, dir: r.dir, vertex: r.vertex, pos: r.end}
}

// All returns an iterator over the edges of the range, for use with
// range-over-func.
func (r EdgeRange[E]) All() iter.Seq[Edge[E]] {
	return func(yield func(Edge[E]) bool) {
		for pos := r.begin; pos < r.end; pos++ {
			if !yield(Edge[E]{store: r.store, dir: r.dir, vertex: r.vertex, pos: pos}) {
				return
			}
		}
	}
}
