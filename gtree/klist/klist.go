// Package klist implements the k-list inner set: a persistent, reverse
// (descending) ordered, bounded-bucket singly-linked sequence. Plugged into
// gtree.GTree as the inner set S, it makes the tree behave like a
// (1,2k+1)-tree variant with expected O(log n / log k) height.
//
// Items are stored in descending order across the bucket chain: the head
// bucket holds the k greatest items (slot 0 is the maximum), the next
// bucket the next k, and so on. Only the tail bucket may have empty slots,
// and those empties always sit at the high-index end of that bucket. This
// layout makes insert_min/remove_min, the operations a G-tree calls most,
// O(1) amortised: both touch only the tail.
package klist

import (
	"fmt"

	"github.com/niceyeti/gtrees/gtree"
	"golang.org/x/exp/constraints"
)

// slot holds one (item, left-subtree) pair, or nothing.
type slot[I constraints.Ordered] struct {
	item I
	left *gtree.GTree[I, *List[I]]
	set  bool
}

// List is one bucket of a k-list plus the (possibly absent) remainder of
// the chain. A *List[I] is always non-empty: bucket data holds at least
// one occupied slot at index 0.
type List[I constraints.Ordered] struct {
	k    int
	data []slot[I]
	next *List[I]
}

func invariantViolation(format string, args ...any) {
	panic(fmt.Errorf("klist: invariant violation: "+format, args...))
}

// NewSingleton builds a one-bucket, one-item list of bucket width k. This
// is the entry point used as a gtree.Tree's newSet constructor, since it is
// the only place a k-list can be built with no existing list to take k
// from.
func NewSingleton[I constraints.Ordered](k int, item I, left *gtree.GTree[I, *List[I]]) *List[I] {
	if k < 1 {
		invariantViolation("bucket width k must be >= 1, got %d", k)
	}
	data := make([]slot[I], k)
	data[0] = slot[I]{item: item, left: left, set: true}
	return &List[I]{k: k, data: data}
}

// Singleton implements gtree.NonemptySet; it builds a new one-item list
// with the same bucket width as the receiver. The receiver's own contents
// are otherwise irrelevant.
func (l *List[I]) Singleton(item I, left *gtree.GTree[I, *List[I]]) *List[I] {
	return NewSingleton[I](l.k, item, left)
}

// FromDescending builds a k-list from items already in strictly descending
// order, by repeated InsertMin.
func FromDescending[I constraints.Ordered](k int, items []I) *List[I] {
	if len(items) == 0 {
		invariantViolation("FromDescending: items must be non-empty")
	}
	l := NewSingleton[I](k, items[0], nil)
	for _, item := range items[1:] {
		l = l.InsertMin(item, nil)
	}
	return l
}

// occupancy returns the number of occupied slots in this bucket (not
// counting next).
func (l *List[I]) occupancy() int {
	n := 0
	for n < l.k && l.data[n].set {
		n++
	}
	return n
}

// InsertMin returns a new list with (item, left) as the new minimum pair.
// Precondition: item is less than every item already stored.
func (l *List[I]) InsertMin(item I, left *gtree.GTree[I, *List[I]]) *List[I] {
	if l.next != nil {
		newNext := l.next.InsertMin(item, left)
		return &List[I]{k: l.k, data: l.data, next: newNext}
	}

	for i := 0; i < l.k; i++ {
		if !l.data[i].set {
			newData := make([]slot[I], l.k)
			copy(newData, l.data)
			newData[i] = slot[I]{item: item, left: left, set: true}
			return &List[I]{k: l.k, data: newData}
		}
	}

	// No free slot in the tail bucket: append a new tail.
	return &List[I]{k: l.k, data: l.data, next: NewSingleton[I](l.k, item, left)}
}

// RemoveMin implements gtree.NonemptySet.
func (l *List[I]) RemoveMin() (item I, left *gtree.GTree[I, *List[I]], rest *List[I], hasRest bool) {
	if l.next != nil {
		minItem, minLeft, newNext, hasNewNext := l.next.RemoveMin()
		var nextPtr *List[I]
		if hasNewNext {
			nextPtr = newNext
		}
		return minItem, minLeft, &List[I]{k: l.k, data: l.data, next: nextPtr}, true
	}

	for i := l.k - 1; i >= 0; i-- {
		if !l.data[i].set {
			continue
		}
		min := l.data[i]
		if i == 0 {
			// Removing the last item empties this bucket.
			return min.item, min.left, nil, false
		}
		newData := make([]slot[I], l.k)
		copy(newData, l.data)
		newData[i] = slot[I]{}
		return min.item, min.left, &List[I]{k: l.k, data: newData}, true
	}

	invariantViolation("RemoveMin: tail bucket has no occupied slot")
	panic("unreachable")
}

// Split implements gtree.NonemptySet. It binary-searches the head bucket
// with a reverse comparison (items descend), then falls into one of the
// cases commented below.
func (l *List[I]) Split(key I) (left *List[I], hasLeft bool, mid *gtree.GTree[I, *List[I]], hasMid bool, right *List[I], hasRight bool) {
	i, hit := l.searchBucket(key)
	occ := l.occupancy()

	if hit {
		// slots 0..i-1 (if any) hold items > key: the right return.
		if i > 0 {
			right = &List[I]{k: l.k, data: l.headSlice(i)}
			hasRight = true
		}
		mid = l.data[i].left
		hasMid = true
		// Dropping the first i+1 positions (the hit and everything
		// bigger) leaves the items < key: the left return.
		_, leftRemainder, hasLeftRemainder := l.removeNMax(i + 1)
		if hasLeftRemainder {
			left, hasLeft = leftRemainder, true
		}
		return left, hasLeft, mid, hasMid, right, hasRight
	}

	if i == 0 {
		// Every item in this bucket, and (by the descending invariant)
		// every following bucket, is less than key.
		return l, true, nil, false, nil, false
	}

	if i == occ {
		// Every occupied item in this bucket exceeds key; items < key,
		// if any, can only come from further down the chain.
		if l.next == nil {
			return nil, false, nil, false, l, true
		}
		leftRec, hasLeftRec, midRec, hasMidRec, rightRec, hasRightRec := l.next.Split(key)
		// Only this bucket, without its chain, goes into the right return.
		head := &List[I]{k: l.k, data: l.data}
		var newRight *List[I]
		hasNewRight := true
		if hasRightRec {
			// rightRec holds items smaller than everything in this bucket
			// but still > key, so rightRec is the lesser operand.
			newRight = rightRec.Join(head)
		} else {
			newRight = head
		}
		return leftRec, hasLeftRec, midRec, hasMidRec, newRight, hasNewRight
	}

	// 0 < i < occ: slots 0..i-1 hold items > key (the right return);
	// dropping the first i positions leaves items < key (the left return).
	right = &List[I]{k: l.k, data: l.headSlice(i)}
	hasRight = true
	_, leftRemainder, hasLeftRemainder := l.removeNMax(i)
	if hasLeftRemainder {
		left, hasLeft = leftRemainder, true
	}
	return left, hasLeft, nil, false, right, hasRight
}

// headSlice copies the first n slots of this bucket (only) into a new
// bucket-sized slice, the rest empty. Used for the "right" return of Split,
// which is always a single non-full bucket with no next.
func (l *List[I]) headSlice(n int) []slot[I] {
	out := make([]slot[I], l.k)
	copy(out[:n], l.data[:n])
	return out
}

// searchBucket binary-searches this bucket's occupied prefix with reverse
// comparison (data descends). hit reports an exact match at the returned
// index; otherwise the index is the position key would be inserted at.
func (l *List[I]) searchBucket(key I) (index int, hit bool) {
	lo, hi := 0, l.occupancy()
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case l.data[mid].item == key:
			return mid, true
		case key > l.data[mid].item:
			hi = mid
		default:
			lo = mid + 1
		}
	}
	return lo, false
}

// removeNMax removes the n greatest items from the list, 1 <= n <= k,
// returning the remainder (or hasRemainder=false if it would be empty).
func (l *List[I]) removeNMax(n int) (removed []slot[I], remainder *List[I], hasRemainder bool) {
	if n < 1 || n > l.k {
		invariantViolation("removeNMax: n=%d out of range for k=%d", n, l.k)
	}

	if n == l.k {
		return l.data, l.next, l.next != nil
	}

	removed = make([]slot[I], l.k)
	copy(removed, l.data[:n])

	newData := make([]slot[I], l.k)
	copy(newData, l.data[n:])

	if l.next == nil {
		if l.occupancy()-n <= 0 {
			return removed, nil, false
		}
		return removed, &List[I]{k: l.k, data: newData}, true
	}

	if l.next.next == nil && l.next.occupancy() <= n {
		// The tail can't fully supply the n items needed to refill this
		// bucket (or supplies exactly enough to empty itself doing so):
		// absorb everything it has and drop it, leaving this bucket as
		// the new, possibly shorter, tail.
		m := l.next.occupancy()
		copy(newData[l.k-n:], l.next.data[:m])
		return removed, &List[I]{k: l.k, data: newData}, true
	}

	removedRec, remainingRec, _ := l.next.removeNMax(n)
	copy(newData[l.k-n:], removedRec[:n])

	return removed, &List[I]{k: l.k, data: newData, next: remainingRec}, true
}

// Join implements gtree.NonemptySet: the receiver holds the lesser items,
// right the greater, so right's buckets must precede the receiver's in the
// descending chain.
func (l *List[I]) Join(right *List[I]) *List[I] {
	if right.next != nil {
		return &List[I]{k: right.k, data: right.data, next: l.Join(right.next)}
	}

	occ := right.occupancy()
	if occ == right.k {
		return &List[I]{k: right.k, data: right.data, next: l}
	}

	toMove := right.k - occ
	moved, remaining, hasRemaining := l.removeNMax(toMove)
	newData := make([]slot[I], right.k)
	copy(newData[:occ], right.data[:occ])
	copy(newData[occ:], moved[:toMove])

	var next *List[I]
	if hasRemaining {
		next = remaining
	}
	return &List[I]{k: right.k, data: newData, next: next}
}

// Search implements gtree.NonemptySet.
func (l *List[I]) Search(key I) (item I, left *gtree.GTree[I, *List[I]], found bool) {
	i, hit := l.searchBucket(key)
	if hit {
		return l.data[i].item, l.data[i].left, true
	}

	occ := l.occupancy()
	switch {
	case i == 0:
		// key exceeds every item in this bucket.
		return item, nil, false
	case i == occ:
		// key is smaller than every filled slot; recurse.
		if l.next == nil {
			s := l.data[occ-1]
			return s.item, s.left, true
		}
		if nextItem, nextLeft, ok := l.next.Search(key); ok {
			return nextItem, nextLeft, true
		}
		s := l.data[occ-1]
		return s.item, s.left, true
	default:
		s := l.data[i-1]
		return s.item, s.left, true
	}
}

func (l *List[I]) GetMin() (item I, left *gtree.GTree[I, *List[I]]) {
	if l.next != nil {
		return l.next.GetMin()
	}
	occ := l.occupancy()
	s := l.data[occ-1]
	return s.item, s.left
}

func (l *List[I]) GetMax() (item I, left *gtree.GTree[I, *List[I]]) {
	s := l.data[0]
	return s.item, s.left
}

func (l *List[I]) Len() int {
	n := l.occupancy()
	if l.next != nil {
		n += l.next.Len()
	}
	return n
}

func (l *List[I]) ItemSlotCount() int {
	n := l.k
	if l.next != nil {
		n += l.next.ItemSlotCount()
	}
	return n
}

// Equal implements gtree.NonemptySet. Two lists are equal when they hold
// the same items, each with structurally equal left subtrees, regardless of
// how those items are distributed across buckets: a list rebuilt by a
// different sequence of inserts can have different bucket boundaries and
// still be the same set.
func (l *List[I]) Equal(other *List[I]) bool {
	item, left, rest, hasRest := l.RemoveMin()
	otherItem, otherLeft, otherRest, otherHasRest := other.RemoveMin()

	if hasRest != otherHasRest || item != otherItem {
		return false
	}
	if !gtree.Equal[I, *List[I]](left, otherLeft) {
		return false
	}
	if !hasRest {
		return true
	}
	return rest.Equal(otherRest)
}

// ChainLen reports the number of buckets in this list's chain. stats.
// PhysicalHeight uses it, via a type assertion, to account for the extra
// hop depth a bucket chain adds beyond the G-tree node itself.
func (l *List[I]) ChainLen() int {
	if l.next == nil {
		return 1
	}
	return 1 + l.next.ChainLen()
}
