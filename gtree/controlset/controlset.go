// Package controlset implements a trivially-correct inner-set S: a sorted
// slice, kept descending to match klist's storage order so that tests can
// exercise the exact same left/right join/split conventions against either
// S implementation. It exists purely as a test oracle; nothing about it is
// optimized.
package controlset

import (
	"fmt"

	"github.com/niceyeti/gtrees/gtree"
	"golang.org/x/exp/constraints"
)

type entry[I constraints.Ordered] struct {
	item I
	left *gtree.GTree[I, *Set[I]]
}

// Set is a descending-ordered slice of (item, left-subtree) pairs: index 0
// holds the greatest item, matching klist's storage order.
type Set[I constraints.Ordered] struct {
	items []entry[I]
}

func invariantViolation(format string, args ...any) {
	panic(fmt.Errorf("controlset: invariant violation: "+format, args...))
}

// NewSingleton is the entry point usable as a gtree.Tree's newSet
// constructor.
func NewSingleton[I constraints.Ordered](item I, left *gtree.GTree[I, *Set[I]]) *Set[I] {
	return &Set[I]{items: []entry[I]{{item: item, left: left}}}
}

func (s *Set[I]) Singleton(item I, left *gtree.GTree[I, *Set[I]]) *Set[I] {
	return NewSingleton[I](item, left)
}

func (s *Set[I]) InsertMin(item I, left *gtree.GTree[I, *Set[I]]) *Set[I] {
	if len(s.items) > 0 && item >= s.items[len(s.items)-1].item {
		invariantViolation("InsertMin: %v is not strictly less than current min", item)
	}
	out := make([]entry[I], len(s.items)+1)
	copy(out, s.items)
	out[len(s.items)] = entry[I]{item: item, left: left}
	return &Set[I]{items: out}
}

func (s *Set[I]) RemoveMin() (item I, left *gtree.GTree[I, *Set[I]], rest *Set[I], hasRest bool) {
	n := len(s.items)
	if n == 0 {
		invariantViolation("RemoveMin: called on an empty set")
	}
	min := s.items[n-1]
	if n == 1 {
		return min.item, min.left, nil, false
	}
	return min.item, min.left, &Set[I]{items: s.items[:n-1]}, true
}

// Split partitions the receiver by key, following the convention that left
// holds items < key and right holds items > key. Because the slice is kept
// descending, right is a prefix and left is a suffix of it.
func (s *Set[I]) Split(key I) (left *Set[I], hasLeft bool, mid *gtree.GTree[I, *Set[I]], hasMid bool, right *Set[I], hasRight bool) {
	i, hit := s.searchSlice(key)

	if hit {
		if i > 0 {
			right, hasRight = &Set[I]{items: append([]entry[I]{}, s.items[:i]...)}, true
		}
		mid, hasMid = s.items[i].left, true
		if i+1 < len(s.items) {
			left, hasLeft = &Set[I]{items: append([]entry[I]{}, s.items[i+1:]...)}, true
		}
		return left, hasLeft, mid, hasMid, right, hasRight
	}

	if i > 0 {
		right, hasRight = &Set[I]{items: append([]entry[I]{}, s.items[:i]...)}, true
	}
	if i < len(s.items) {
		left, hasLeft = &Set[I]{items: append([]entry[I]{}, s.items[i:]...)}, true
	}
	return left, hasLeft, nil, false, right, hasRight
}

// Join concatenates the receiver (lesser items) after right (greater
// items), producing a single descending slice.
func (s *Set[I]) Join(right *Set[I]) *Set[I] {
	out := make([]entry[I], 0, len(s.items)+len(right.items))
	out = append(out, right.items...)
	out = append(out, s.items...)
	return &Set[I]{items: out}
}

func (s *Set[I]) Search(key I) (item I, left *gtree.GTree[I, *Set[I]], found bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].item >= key {
			return s.items[i].item, s.items[i].left, true
		}
	}
	return item, nil, false
}

func (s *Set[I]) GetMin() (item I, left *gtree.GTree[I, *Set[I]]) {
	e := s.items[len(s.items)-1]
	return e.item, e.left
}

func (s *Set[I]) GetMax() (item I, left *gtree.GTree[I, *Set[I]]) {
	e := s.items[0]
	return e.item, e.left
}

func (s *Set[I]) Len() int {
	return len(s.items)
}

// ItemSlotCount is equal to Len for the control set: there is no preallocated
// capacity beyond the items actually stored.
func (s *Set[I]) ItemSlotCount() int {
	return len(s.items)
}

// Equal implements gtree.NonemptySet by comparing items and their left
// subtrees position by position in the shared descending order; a control
// set has no bucket layout, so this is the same set equality klist.List uses.
func (s *Set[I]) Equal(other *Set[I]) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for i := range s.items {
		if s.items[i].item != other.items[i].item {
			return false
		}
		if !gtree.Equal[I, *Set[I]](s.items[i].left, other.items[i].left) {
			return false
		}
	}
	return true
}

// searchSlice finds the insertion index of key in the descending slice; hit
// reports an exact match.
func (s *Set[I]) searchSlice(key I) (index int, hit bool) {
	lo, hi := 0, len(s.items)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s.items[mid].item == key:
			return mid, true
		case key > s.items[mid].item:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return lo, false
}
