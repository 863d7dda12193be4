package gtree

import "golang.org/x/exp/constraints"

// Empty returns the empty tree for a given (I, S) instantiation.
func Empty[I constraints.Ordered, S NonemptySet[I, S]]() *GTree[I, S] {
	return nil
}

// Unzip partitions t into the subtree of items strictly less than key and
// the subtree of items strictly greater than key. An item equal to key, if
// present, is removed.
func Unzip[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], key I) (left, right *GTree[I, S]) {
	if t == nil {
		return nil, nil
	}

	leftSet, hasLeftSet, mid, hasMid, rightSet, hasRightSet := t.Set.Split(key)

	if hasMid {
		// key lives at t; its own left subtree is mid.
		left = lift(leftSet, hasLeftSet, mid, t.Rank)
		right = lift(rightSet, hasRightSet, t.Right, t.Rank)
		return left, right
	}

	if !hasRightSet {
		// Every item of t.Set is < key; key, if present, is in t.Right.
		l, r := Unzip[I, S](t.Right, key)
		left = &GTree[I, S]{Rank: t.Rank, Set: t.Set, Right: l}
		right = r
		return left, right
	}

	// Some items of t.Set exceed key; key, if present, is in the left
	// subtree of the least such item.
	minItem, minSub, rest, hasRest := rightSet.RemoveMin()
	l, r := Unzip[I, S](minSub, key)

	left = lift(leftSet, hasLeftSet, l, t.Rank)

	var newRightSet S
	if hasRest {
		newRightSet = rest.InsertMin(minItem, r)
	} else {
		newRightSet = rightSet.Singleton(minItem, r)
	}
	right = &GTree[I, S]{Rank: t.Rank, Set: newRightSet, Right: t.Right}
	return left, right
}

// Zip2 merges two G-trees whose items are already ordered: every item of
// left is strictly less than every item of right.
func Zip2[I constraints.Ordered, S NonemptySet[I, S]](left, right *GTree[I, S]) *GTree[I, S] {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}

	lr, rr := rankOf[I, S](left), rankOf[I, S](right)

	switch {
	case lr < rr:
		minItem, minSub, rest, hasRest := right.Set.RemoveMin()
		z := Zip2[I, S](left, minSub)
		var newSet S
		if hasRest {
			newSet = rest.InsertMin(minItem, z)
		} else {
			newSet = right.Set.Singleton(minItem, z)
		}
		return &GTree[I, S]{Rank: right.Rank, Set: newSet, Right: right.Right}

	case lr > rr:
		z := Zip2[I, S](left.Right, right)
		return &GTree[I, S]{Rank: left.Rank, Set: left.Set, Right: z}

	default:
		// Equal ranks: the two nodes fuse into one.
		minItem, minSub, rest, hasRest := right.Set.RemoveMin()
		z := Zip2[I, S](left.Right, minSub)
		var rightSet S
		if hasRest {
			rightSet = rest.InsertMin(minItem, z)
		} else {
			rightSet = right.Set.Singleton(minItem, z)
		}
		joined := left.Set.Join(rightSet)
		return &GTree[I, S]{Rank: left.Rank, Set: joined, Right: right.Right}
	}
}

// Zip3 builds a rank-rank singleton node holding item (with an empty left
// subtree) and zips it between left and right. newSet constructs a
// brand-new S holding only that singleton pair; it is needed because, when
// left and right are both empty, there is no live S instance anywhere to
// use as a Singleton prototype.
func Zip3[I constraints.Ordered, S NonemptySet[I, S]](left *GTree[I, S], item I, rank uint8, right *GTree[I, S], newSet func(I, *GTree[I, S]) S) *GTree[I, S] {
	mid := &GTree[I, S]{Rank: rank, Set: newSet(item, nil)}
	return Zip2[I, S](Zip2[I, S](left, mid), right)
}

// Insert returns the tree obtained by inserting item with the given rank.
// Re-inserting an item already present with the same rank yields a
// structurally identical tree.
func Insert[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], item I, rank uint8, newSet func(I, *GTree[I, S]) S) *GTree[I, S] {
	left, right := Unzip[I, S](t, item)
	return Zip3[I, S](left, item, rank, right, newSet)
}

// Delete returns the tree obtained by removing item, or t unchanged
// (structurally) if item was absent.
func Delete[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], item I) *GTree[I, S] {
	left, right := Unzip[I, S](t, item)
	return Zip2[I, S](left, right)
}

// Has reports whether key is present in t.
func Has[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], key I) bool {
	item, ok := Search[I, S](t, key)
	return ok && item == key
}

// Search returns the least item >= key, if any.
func Search[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], key I) (item I, ok bool) {
	var best I
	haveBest := false

	for t != nil {
		found, leftOfFound, hit := t.Set.Search(key)
		if !hit {
			t = t.Right
			continue
		}
		if found == key {
			return found, true
		}
		best, haveBest = found, true
		t = leftOfFound
	}

	if haveBest {
		return best, true
	}
	var zero I
	return zero, false
}
