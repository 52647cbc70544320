package util

import (
	"math/rand"

	"github.com/hupe1980/graphstore/core"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// GenerateRandomEdges generates num random (source, target) pairs over a
// vertex range of the given size. Self-loops and duplicate edges may occur,
// as they do in real staged input.
func (r *RNG) GenerateRandomEdges(num int, numVertices int) (sources, targets []core.VertexID) {
	sources = make([]core.VertexID, num)
	targets = make([]core.VertexID, num)

	for i := 0; i < num; i++ {
		sources[i] = core.VertexID(r.rand.Intn(numVertices))
		targets[i] = core.VertexID(r.rand.Intn(numVertices))
	}

	return sources, targets
}
