// Package shuffle implements the array-reordering primitives used during
// graph finalization: stable counting sort over dense integer keys,
// in-place permutation via cycle decomposition, and out-of-place gather.
package shuffle

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Key constrains the key types accepted by CountingSort. Keys are dense
// small integers (vertex identifiers).
type Key interface {
	~uint32
}

// minParallelKeys is the smallest input for which the parallel counting
// path is worth the goroutine overhead.
const minParallelKeys = 1 << 16

// CountingSort computes a stable gather permutation that groups keys in
// ascending order, together with prefix-sum offsets.
//
// The returned perm satisfies sorted[j] = input[perm[j]]; ties are broken
// by original position, so the sort is stable. offsets has length numKeys+1
// and offsets[k+1]-offsets[k] is the number of occurrences of key k.
//
// Precondition: every key is < numKeys. Callers validate their input before
// sorting; the function does not re-check.
//
// If workers > 1 the histogram and scatter phases run on up to workers
// goroutines. The output is identical to the sequential result regardless
// of how the input is partitioned.
func CountingSort[K Key](keys []K, numKeys int, workers int) (perm []uint32, offsets []uint32) {
	if workers > runtime.GOMAXPROCS(0) {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > 1 && len(keys) >= minParallelKeys {
		return countingSortParallel(keys, numKeys, workers)
	}
	return countingSortSequential(keys, numKeys)
}

func countingSortSequential[K Key](keys []K, numKeys int) (perm []uint32, offsets []uint32) {
	offsets = make([]uint32, numKeys+1)
	for _, k := range keys {
		offsets[k+1]++
	}
	for k := 0; k < numKeys; k++ {
		offsets[k+1] += offsets[k]
	}

	perm = make([]uint32, len(keys))
	next := make([]uint32, numKeys)
	copy(next, offsets[:numKeys])
	for i, k := range keys {
		perm[next[k]] = uint32(i)
		next[k]++
	}
	return perm, offsets
}

// countingSortParallel splits the input into one contiguous chunk per worker.
// Each worker histograms its chunk; the bases are merged sequentially in
// chunk order, which preserves stability; then each worker scatters its chunk
// into disjoint regions of perm.
func countingSortParallel[K Key](keys []K, numKeys int, workers int) (perm []uint32, offsets []uint32) {
	chunk := (len(keys) + workers - 1) / workers

	counts := make([][]uint32, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		counts[w] = make([]uint32, numKeys)
		lo := w * chunk
		hi := min(lo+chunk, len(keys))
		c := counts[w]
		g.Go(func() error {
			for _, k := range keys[lo:hi] {
				c[k]++
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	// Prefix sums across keys, then across chunks within each key. After
	// this pass counts[w][k] holds the first output position for chunk w's
	// occurrences of key k.
	offsets = make([]uint32, numKeys+1)
	for k := 0; k < numKeys; k++ {
		pos := offsets[k]
		for w := 0; w < workers; w++ {
			n := counts[w][k]
			counts[w][k] = pos
			pos += n
		}
		offsets[k+1] = pos
	}

	perm = make([]uint32, len(keys))
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(keys))
		next := counts[w]
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				k := keys[i]
				perm[next[k]] = uint32(i)
				next[k]++
			}
			return nil
		})
	}
	_ = g.Wait()

	return perm, offsets
}

// Apply reorders items in place according to a gather permutation, so that
// afterwards items[j] holds the element previously at perm[j]. Each
// permutation cycle is rotated through a single scratch slot and every
// position is written at most once.
//
// Precondition: perm is a bijection on [0, len(items)); use IsPermutation to
// check untrusted input. Apply consumes perm, leaving it equal to the
// identity permutation.
func Apply[T any](perm []uint32, items []T) {
	for i := range perm {
		if perm[i] == uint32(i) {
			continue
		}
		j := uint32(i)
		tmp := items[i]
		for perm[j] != j {
			next := perm[j]
			if next != uint32(i) {
				items[j] = items[next]
				perm[j] = j
				j = next
			} else {
				items[j] = tmp
				perm[j] = j
				break
			}
		}
	}
}

// Apply3 is Apply over three parallel slices, rotating all three through
// each cycle in a single pass so that elements that belong together move
// together. All slices must have len(perm) elements.
func Apply3[A, B, C any](perm []uint32, a []A, b []B, c []C) {
	for i := range perm {
		if perm[i] == uint32(i) {
			continue
		}
		j := uint32(i)
		tmpA, tmpB, tmpC := a[i], b[i], c[i]
		for perm[j] != j {
			next := perm[j]
			if next != uint32(i) {
				a[j], b[j], c[j] = a[next], b[next], c[next]
				perm[j] = j
				j = next
			} else {
				a[j], b[j], c[j] = tmpA, tmpB, tmpC
				perm[j] = j
				break
			}
		}
	}
}

// Gather returns a new slice with result[j] = items[perm[j]], leaving both
// inputs untouched.
func Gather[T any](perm []uint32, items []T) []T {
	result := make([]T, len(perm))
	for j, p := range perm {
		result[j] = items[p]
	}
	return result
}

// IsPermutation reports whether perm is a bijection on [0, len(perm)).
func IsPermutation(perm []uint32) bool {
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if int(p) >= len(perm) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
