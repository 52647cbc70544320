package shuffle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPerm(rng *rand.Rand, n int) []uint32 {
	perm := make([]uint32, n)
	for i, p := range rng.Perm(n) {
		perm[i] = uint32(p)
	}
	return perm
}

func TestCountingSort(t *testing.T) {
	t.Run("GroupsAndOffsets", func(t *testing.T) {
		keys := []uint32{2, 0, 1, 2, 0}

		perm, offsets := CountingSort(keys, 3, 1)

		require.Equal(t, []uint32{0, 2, 3, 5}, offsets)

		sorted := Gather(perm, keys)
		assert.Equal(t, []uint32{0, 0, 1, 2, 2}, sorted)
	})

	t.Run("Stability", func(t *testing.T) {
		// Three edges share key 1; their original order must survive.
		keys := []uint32{1, 0, 1, 1}

		perm, offsets := CountingSort(keys, 2, 1)

		require.Equal(t, []uint32{0, 1, 4}, offsets)
		assert.Equal(t, []uint32{1, 0, 2, 3}, perm)
	})

	t.Run("Empty", func(t *testing.T) {
		perm, offsets := CountingSort([]uint32(nil), 4, 1)

		assert.Empty(t, perm)
		assert.Equal(t, []uint32{0, 0, 0, 0, 0}, offsets)
	})

	t.Run("ParallelMatchesSequential", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4711))
		const numKeys = 97

		keys := make([]uint32, 10000)
		for i := range keys {
			keys[i] = uint32(rng.Intn(numKeys))
		}

		wantPerm, wantOffsets := countingSortSequential(keys, numKeys)

		for _, workers := range []int{2, 3, 4, 7} {
			gotPerm, gotOffsets := countingSortParallel(keys, numKeys, workers)
			assert.Equal(t, wantOffsets, gotOffsets, "workers=%d", workers)
			assert.Equal(t, wantPerm, gotPerm, "workers=%d", workers)
		}
	})
}

func TestApply(t *testing.T) {
	t.Run("MatchesGather", func(t *testing.T) {
		rng := rand.New(rand.NewSource(23))

		for trial := 0; trial < 50; trial++ {
			n := rng.Intn(64)
			perm := randomPerm(rng, n)

			items := make([]int, n)
			for i := range items {
				items[i] = rng.Int()
			}

			want := Gather(perm, items)

			permCopy := make([]uint32, n)
			copy(permCopy, perm)
			Apply(permCopy, items)

			assert.Equal(t, want, items)
		}
	})

	t.Run("ConsumesPermToIdentity", func(t *testing.T) {
		// Every position is visited exactly once: after Apply the
		// permutation has collapsed to the identity.
		rng := rand.New(rand.NewSource(42))
		perm := randomPerm(rng, 32)
		items := make([]int, 32)

		Apply(perm, items)

		for i, p := range perm {
			assert.Equal(t, uint32(i), p)
		}
	})

	t.Run("SingleCycle", func(t *testing.T) {
		perm := []uint32{1, 2, 3, 0}
		items := []string{"a", "b", "c", "d"}

		Apply(perm, items)

		assert.Equal(t, []string{"b", "c", "d", "a"}, items)
	})
}

func TestApply3(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 20; trial++ {
		n := rng.Intn(64)
		perm := randomPerm(rng, n)

		a := make([]uint32, n)
		b := make([]uint32, n)
		c := make([]string, n)
		for i := range a {
			a[i] = rng.Uint32()
			b[i] = rng.Uint32()
			c[i] = string(rune('a' + i%26))
		}

		wantA := Gather(perm, a)
		wantB := Gather(perm, b)
		wantC := Gather(perm, c)

		permCopy := make([]uint32, n)
		copy(permCopy, perm)
		Apply3(permCopy, a, b, c)

		assert.Equal(t, wantA, a)
		assert.Equal(t, wantB, b)
		assert.Equal(t, wantC, c)
	}
}

func TestIsPermutation(t *testing.T) {
	assert.True(t, IsPermutation([]uint32{}))
	assert.True(t, IsPermutation([]uint32{0}))
	assert.True(t, IsPermutation([]uint32{2, 0, 1}))
	assert.False(t, IsPermutation([]uint32{0, 0, 1}), "duplicate index")
	assert.False(t, IsPermutation([]uint32{0, 3}), "index out of range")
}

func BenchmarkCountingSort(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	keys := make([]uint32, 1<<20)
	for i := range keys {
		keys[i] = uint32(rng.Intn(1 << 16))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CountingSort(keys, 1<<16, 1)
	}
}
