// Package buffer provides the append-only staging area that accumulates raw
// edge insertions before a graph is finalized.
package buffer

import "github.com/hupe1980/graphstore/core"

// EdgeBuffer accumulates edges as three parallel slices. Insertion order is
// arbitrary; parallel edges and self-loops are distinct entries and are
// never merged.
//
// The buffer is handed to finalization with exclusive access. Finalization
// reorders the slices in place, so the buffer is not usable afterwards
// except through Clear.
type EdgeBuffer[E any] struct {
	Sources []core.VertexID
	Targets []core.VertexID
	Data    []E
}

// New creates an empty edge buffer.
func New[E any]() *EdgeBuffer[E] {
	return &EdgeBuffer[E]{}
}

// Add appends a single edge.
func (b *EdgeBuffer[E]) Add(source, target core.VertexID, data E) {
	b.Sources = append(b.Sources, source)
	b.Targets = append(b.Targets, target)
	b.Data = append(b.Data, data)
}

// AddMany appends a batch of edges from parallel slices. All three slices
// must have the same length.
func (b *EdgeBuffer[E]) AddMany(sources, targets []core.VertexID, data []E) {
	b.Sources = append(b.Sources, sources...)
	b.Targets = append(b.Targets, targets...)
	b.Data = append(b.Data, data...)
}

// Len returns the number of staged edges.
func (b *EdgeBuffer[E]) Len() int {
	return len(b.Sources)
}

// Reserve grows the buffer's capacity to hold at least n edges without
// further allocation.
func (b *EdgeBuffer[E]) Reserve(n int) {
	if cap(b.Sources) >= n {
		return
	}
	sources := make([]core.VertexID, len(b.Sources), n)
	copy(sources, b.Sources)
	b.Sources = sources

	targets := make([]core.VertexID, len(b.Targets), n)
	copy(targets, b.Targets)
	b.Targets = targets

	data := make([]E, len(b.Data), n)
	copy(data, b.Data)
	b.Data = data
}

// Clear discards all staged edges, keeping the allocated capacity.
func (b *EdgeBuffer[E]) Clear() {
	b.Sources = b.Sources[:0]
	b.Targets = b.Targets[:0]
	b.Data = b.Data[:0]
}
