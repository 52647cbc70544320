package graphstore

import (
	"errors"
	"fmt"

	"github.com/hupe1980/graphstore/core"
)

var (
	// ErrBufferLengthMismatch is returned by Finalize when the staging
	// buffer's parallel slices differ in length.
	ErrBufferLengthMismatch = errors.New("edge buffer parallel slices differ in length")
)

// ErrVertexOutOfRange indicates that a staged edge references a vertex id
// outside the declared vertex range. Finalization aborts and leaves the
// storage cleared.
type ErrVertexOutOfRange struct {
	Vertex      core.VertexID
	NumVertices int
}

func (e *ErrVertexOutOfRange) Error() string {
	return fmt.Sprintf("vertex %d out of range [0, %d)", e.Vertex, e.NumVertices)
}

// ErrEdgeOutOfRange indicates an edge id at or beyond the number of edges.
type ErrEdgeOutOfRange struct {
	Edge     core.EdgeID
	NumEdges int
}

func (e *ErrEdgeOutOfRange) Error() string {
	return fmt.Sprintf("edge %d out of range [0, %d)", e.Edge, e.NumEdges)
}

// ErrDirectionMismatch indicates that two edge iterators of different
// directions were compared or subtracted. This is a programming-contract
// violation; the operation is rejected rather than silently miscomputed.
type ErrDirectionMismatch struct {
	A, B Direction
}

func (e *ErrDirectionMismatch) Error() string {
	return fmt.Sprintf("iterator direction mismatch: %s vs %s", e.A, e.B)
}
