// Package graphstore provides the storage core of a graph-parallel engine:
// an immutable, dual-indexed adjacency structure for a large static graph.
//
// A graph is staged as an unordered batch of edge insertions, finalized once
// into two compressed-sparse indexes sharing a single canonical edge-identity
// space, and then queried repeatedly for forward (outgoing) and reverse
// (incoming) neighbor traversal:
//
//   - The forward index is keyed by source vertex and stores (target, payload).
//     An edge's position in its flattened value array is the edge's canonical
//     EdgeID.
//   - The reverse index is keyed by target vertex and stores (source, EdgeID).
//     It never duplicates payload; in-edge payload access follows the
//     back-reference into the forward index.
//
// # Quick Start
//
//	buf := buffer.New[string]()
//	buf.Add(0, 1, "a")
//	buf.Add(1, 2, "b")
//	buf.Add(0, 2, "c")
//
//	g := graphstore.New[string]()
//	if err := g.Finalize(buf, 3); err != nil {
//	    panic(err)
//	}
//
//	for e := range g.OutEdges(0).All() {
//	    fmt.Println(e.Source(), e.Target(), e.Data())
//	}
//
// Finalization runs in O(V+E) time: a stable counting sort by source, an
// in-place cyclic reorder of the staging buffer, a second stable counting
// sort by target, and an out-of-place gather for the reverse index.
//
// Once finalized the structure is immutable. Reads (counts, neighbor ranges,
// payload access) need no synchronization; Finalize, Clear and Swap require
// exclusive access. Mutating the graph means re-staging and re-finalizing.
package graphstore

import (
	"context"
	"time"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/graphstore/buffer"
	"github.com/hupe1980/graphstore/core"
	"github.com/hupe1980/graphstore/csr"
	"github.com/hupe1980/graphstore/internal/shuffle"
)

// halfedge is a forward-index value: the target endpoint plus the payload.
// Its position in the forward value array is the edge's canonical EdgeID.
type halfedge[E any] struct {
	Target core.VertexID
	Data   E
}

// backref is a reverse-index value: the source endpoint plus the canonical
// EdgeID of the same edge in the forward index. No payload copy.
type backref struct {
	Source core.VertexID
	Edge   core.EdgeID
}

// Storage composes the forward and reverse adjacency indexes of one
// finalized graph partition.
//
// The zero value is not usable; construct with New.
type Storage[E any] struct {
	fwd *csr.Storage[halfedge[E]]
	rev *csr.Storage[backref]

	// Bitmaps of vertices with at least one out-edge (in-edge). Built at
	// finalize time so schedulers can skip isolated vertices.
	activeOut *roaring.Bitmap
	activeIn  *roaring.Bitmap

	opts options
}

// New creates an empty storage (zero vertices, zero edges).
func New[E any](optFns ...Option) *Storage[E] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Storage[E]{
		fwd:       &csr.Storage[halfedge[E]]{},
		rev:       &csr.Storage[backref]{},
		activeOut: roaring.New(),
		activeIn:  roaring.New(),
		opts:      opts,
	}
}

// NumVertices returns the number of vertices.
func (s *Storage[E]) NumVertices() int {
	return s.fwd.NumKeys()
}

// NumEdges returns the number of edges.
func (s *Storage[E]) NumEdges() int {
	return s.fwd.NumValues()
}

// NumOutEdges returns the out-degree of v. v must be in [0, NumVertices()).
func (s *Storage[E]) NumOutEdges(v core.VertexID) int {
	begin, end := s.fwd.Range(uint32(v))
	return int(end - begin)
}

// NumInEdges returns the in-degree of v. v must be in [0, NumVertices()).
func (s *Storage[E]) NumInEdges(v core.VertexID) int {
	begin, end := s.rev.Range(uint32(v))
	return int(end - begin)
}

// OutEdges returns the range of edges leaving v, ordered by staging order
// among edges sharing the source. v must be in [0, NumVertices()).
func (s *Storage[E]) OutEdges(v core.VertexID) EdgeRange[E] {
	begin, end := s.fwd.Range(uint32(v))
	return EdgeRange[E]{store: s, dir: DirectionOut, vertex: v, begin: begin, end: end}
}

// InEdges returns the range of edges arriving at v, ordered by canonical
// EdgeID. v must be in [0, NumVertices()).
func (s *Storage[E]) InEdges(v core.VertexID) EdgeRange[E] {
	begin, end := s.rev.Range(uint32(v))
	return EdgeRange[E]{store: s, dir: DirectionIn, vertex: v, begin: begin, end: end}
}

// EdgeData returns the payload of the edge with the given canonical id.
// Returns ErrEdgeOutOfRange when eid >= NumEdges().
func (s *Storage[E]) EdgeData(eid core.EdgeID) (E, error) {
	if int(eid) >= s.NumEdges() {
		var zero E
		return zero, &ErrEdgeOutOfRange{Edge: eid, NumEdges: s.NumEdges()}
	}
	return s.fwd.Values()[eid].Data, nil
}

// ActiveSources returns the set of vertices with at least one out-edge.
// The returned bitmap is shared and must not be mutated.
func (s *Storage[E]) ActiveSources() *roaring.Bitmap {
	return s.activeOut
}

// ActiveTargets returns the set of vertices with at least one in-edge.
// The returned bitmap is shared and must not be mutated.
func (s *Storage[E]) ActiveTargets() *roaring.Bitmap {
	return s.activeIn
}

// SizeInBytes estimates the in-memory footprint of both indexes and the
// active-vertex bitmaps. Payload bytes are counted shallowly; memory
// referenced by pointer-bearing payload types is not followed.
func (s *Storage[E]) SizeInBytes() uint64 {
	var fv halfedge[E]
	var rv backref

	size := uint64(len(s.fwd.Offsets())+len(s.rev.Offsets())) * 4
	size += uint64(s.fwd.NumValues()) * uint64(unsafe.Sizeof(fv))
	size += uint64(s.rev.NumValues()) * uint64(unsafe.Sizeof(rv))
	size += s.activeOut.GetSizeInBytes() + s.activeIn.GetSizeInBytes()
	return size
}

// Finalize consumes the staging buffer and builds both adjacency indexes.
// Requires exclusive access to s and to buf.
//
// Calling Finalize on a non-empty storage discards the previous indexes;
// this is a documented overwrite, not an error. The buffer's slices are
// reordered in place and must not be used afterwards except through Clear.
//
// Any staged vertex id >= numVertices aborts with ErrVertexOutOfRange and
// leaves the storage cleared. An empty buffer is valid and yields
// numVertices isolated vertices.
func (s *Storage[E]) Finalize(buf *buffer.EdgeBuffer[E], numVertices int) error {
	start := time.Now()
	numEdges := buf.Len()
	err := s.finalize(buf, numVertices)
	elapsed := time.Since(start)
	s.opts.metrics.RecordFinalize(numVertices, numEdges, elapsed, err)
	s.opts.logger.LogFinalize(context.Background(), numVertices, numEdges, elapsed, err)
	return err
}

func (s *Storage[E]) finalize(buf *buffer.EdgeBuffer[E], numVertices int) error {
	if len(buf.Sources) != len(buf.Targets) || len(buf.Sources) != len(buf.Data) {
		return ErrBufferLengthMismatch
	}
	for _, v := range buf.Sources {
		if int(v) >= numVertices {
			s.Clear()
			return &ErrVertexOutOfRange{Vertex: v, NumVertices: numVertices}
		}
	}
	for _, v := range buf.Targets {
		if int(v) >= numVertices {
			s.Clear()
			return &ErrVertexOutOfRange{Vertex: v, NumVertices: numVertices}
		}
	}

	workers := s.opts.parallelism
	numEdges := buf.Len()

	// Group by source. The in-place reorder establishes the canonical
	// EdgeID of every edge: its position in the source-sorted arrays.
	perm1, srcOffsets := shuffle.CountingSort(buf.Sources, numVertices, workers)
	shuffle.Apply3(perm1, buf.Sources, buf.Targets, buf.Data)

	// Group by target. perm2[j] is the canonical EdgeID of the edge at
	// target-sorted position j, which is exactly the back-reference the
	// reverse index stores. The canonical arrays stay untouched; only a
	// copy of the source column is gathered into target order.
	perm2, dstOffsets := shuffle.CountingSort(buf.Targets, numVertices, workers)
	shuffledSources := shuffle.Gather(perm2, buf.Sources)

	fwdValues := make([]halfedge[E], numEdges)
	for i := 0; i < numEdges; i++ {
		fwdValues[i] = halfedge[E]{Target: buf.Targets[i], Data: buf.Data[i]}
	}

	revValues := make([]backref, numEdges)
	for j := 0; j < numEdges; j++ {
		revValues[j] = backref{Source: shuffledSources[j], Edge: core.EdgeID(perm2[j])}
	}

	s.install(csr.Wrap(srcOffsets, fwdValues), csr.Wrap(dstOffsets, revValues))
	return nil
}

// install atomically replaces both indexes and rebuilds the active-vertex
// bitmaps from the new offsets.
func (s *Storage[E]) install(fwd *csr.Storage[halfedge[E]], rev *csr.Storage[backref]) {
	s.fwd = fwd
	s.rev = rev
	s.activeOut = activeKeys(fwd.Offsets())
	s.activeIn = activeKeys(rev.Offsets())
}

func activeKeys(offsets []uint32) *roaring.Bitmap {
	bm := roaring.New()
	for k := 0; k+1 < len(offsets); k++ {
		if offsets[k+1] > offsets[k] {
			bm.Add(uint32(k))
		}
	}
	return bm
}

// Clear releases both indexes, returning to the empty state. Requires
// exclusive access. Clearing an empty storage is a no-op.
func (s *Storage[E]) Clear() {
	s.fwd.Clear()
	s.rev.Clear()
	s.activeOut = roaring.New()
	s.activeIn = roaring.New()
}

// Swap exchanges both indexes with another storage in O(1). Requires
// exclusive access to both storages. Options are not exchanged.
func (s *Storage[E]) Swap(other *Storage[E]) {
	s.fwd.Swap(other.fwd)
	s.rev.Swap(other.rev)
	s.activeOut, other.activeOut = other.activeOut, s.activeOut
	s.activeIn, other.activeIn = other.activeIn, s.activeIn
}
