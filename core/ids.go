package core

// VertexID is a dense, internal identifier for a vertex within a single graph
// partition. It is strictly 32-bit, allowing for max 4 Billion vertices per
// partition. Used for all hot-path structures (adjacency arrays, bitmaps).
type VertexID uint32

// EdgeID is a dense identifier for an edge within a single graph partition.
// Its value is the edge's position in the source-sorted edge array produced
// by finalization, and is the canonical identity used wherever edge payload
// is addressed.
type EdgeID uint32

// MaxVertexID is the maximum possible value for a VertexID.
const MaxVertexID = ^VertexID(0)

// MaxEdgeID is the maximum possible value for an EdgeID.
const MaxEdgeID = ^EdgeID(0)
