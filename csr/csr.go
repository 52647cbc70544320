// Package csr provides a generic compressed-sparse container: a flattened
// value array indexed by prefix-sum offsets over dense integer keys. It is
// the building block for both the forward (source-keyed) and reverse
// (target-keyed) adjacency indexes of a finalized graph.
package csr

// Storage holds values grouped by key. The half-open range
// [offsets[k], offsets[k+1]) of the value array belongs to key k, so a key
// lookup is direct indexing, not a search.
//
// A Storage is immutable after Wrap. Concurrent readers need no
// synchronization; Clear and Swap require exclusive access.
type Storage[V any] struct {
	offsets []uint32
	values  []V
}

// Wrap takes ownership of already-sorted arrays without copying.
//
// Precondition: offsets has length numKeys+1, is non-decreasing, starts at 0
// and ends at len(values). Wrap is called with the output of finalization,
// which guarantees this.
func Wrap[V any](offsets []uint32, values []V) *Storage[V] {
	return &Storage[V]{offsets: offsets, values: values}
}

// NumKeys returns the number of keys.
func (s *Storage[V]) NumKeys() int {
	if len(s.offsets) == 0 {
		return 0
	}
	return len(s.offsets) - 1
}

// NumValues returns the total number of stored values.
func (s *Storage[V]) NumValues() int {
	return len(s.values)
}

// Range returns the [begin, end) bounds into the value array for the given
// key. key must be in [0, NumKeys()).
func (s *Storage[V]) Range(key uint32) (begin, end uint32) {
	return s.offsets[key], s.offsets[key+1]
}

// Values exposes the flattened value array. A value's position in this array
// is its identity; callers must not mutate it.
func (s *Storage[V]) Values() []V {
	return s.values
}

// Offsets exposes the prefix-sum offset array (length NumKeys()+1, or nil
// for an empty storage). Callers must not mutate it.
func (s *Storage[V]) Offsets() []uint32 {
	return s.offsets
}

// Clear releases both arrays, returning the storage to the empty state.
func (s *Storage[V]) Clear() {
	s.offsets = nil
	s.values = nil
}

// Swap exchanges ownership of the underlying arrays with other in O(1).
func (s *Storage[V]) Swap(other *Storage[V]) {
	s.offsets, other.offsets = other.offsets, s.offsets
	s.values, other.values = other.values, s.values
}
