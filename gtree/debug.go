package gtree

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

var ErrNoSuchTraversalOrder = errors.New("no such traversal order")

// TraversalOrder selects how Format walks a tree.
type TraversalOrder int

const (
	InOrder TraversalOrder = iota + 1
	PreOrder
	Indented
)

// entryVisitor is called once per (item, rank) pair encountered by a
// traversal, in that traversal's order.
type entryVisitor[I constraints.Ordered] func(item I, rank uint8)

// Format renders t as a string using the requested traversal. InOrder and
// PreOrder print a flat "(item,rank) " sequence in which rank is always 0
// (see rankFromSet); Indented prints a nested outline showing each node's
// rank, each pair's left subtree and the node's right subtree, useful for
// manual inspection of small trees during debugging.
func Format[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], order TraversalOrder) (string, error) {
	var sb strings.Builder

	switch order {
	case InOrder:
		visitInOrder[I, S](t, func(item I, rank uint8) {
			fmt.Fprintf(&sb, "(%v,%d) ", item, rank)
		})
	case PreOrder:
		visitPreOrder[I, S](t, func(item I, rank uint8) {
			fmt.Fprintf(&sb, "(%v,%d) ", item, rank)
		})
	case Indented:
		writeIndented[I, S](&sb, t, 0)
	default:
		return "", ErrNoSuchTraversalOrder
	}

	return sb.String(), nil
}

// visitInOrder walks each pair's left subtree, then the pair, then (after
// exhausting the set) the node's right subtree.
func visitInOrder[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], fn entryVisitor[I]) {
	if t == nil {
		return
	}
	walkSetInOrder[I, S](t.Set, fn)
	visitInOrder[I, S](t.Right, fn)
}

func walkSetInOrder[I constraints.Ordered, S NonemptySet[I, S]](set S, fn entryVisitor[I]) {
	item, left, rest, hasRest := set.RemoveMin()
	visitInOrder[I, S](left, fn)
	fn(item, rankFromSet[I, S](set, item))
	if hasRest {
		walkSetInOrder[I, S](rest, fn)
	}
}

// rankFromSet has no way to recover a rank from an arbitrary S (a pair's
// rank lives on the owning GTree node, not the set), so InOrder/PreOrder
// visitors over raw sets report rank 0 as a placeholder. Indented mode,
// which always knows its enclosing node, reports the real rank.
func rankFromSet[I constraints.Ordered, S NonemptySet[I, S]](_ S, _ I) uint8 {
	return 0
}

func visitPreOrder[I constraints.Ordered, S NonemptySet[I, S]](t *GTree[I, S], fn entryVisitor[I]) {
	if t == nil {
		return
	}
	walkSetPreOrder[I, S](t.Set, fn)
	visitPreOrder[I, S](t.Right, fn)
}

func walkSetPreOrder[I constraints.Ordered, S NonemptySet[I, S]](set S, fn entryVisitor[I]) {
	item, left, rest, hasRest := set.RemoveMin()
	fn(item, rankFromSet[I, S](set, item))
	visitPreOrder[I, S](left, fn)
	if hasRest {
		walkSetPreOrder[I, S](rest, fn)
	}
}

func writeIndented[I constraints.Ordered, S NonemptySet[I, S]](sb *strings.Builder, t *GTree[I, S], depth int) {
	pad := strings.Repeat("  ", depth)
	if t == nil {
		fmt.Fprintf(sb, "%s-\n", pad)
		return
	}
	fmt.Fprintf(sb, "%srank=%d len=%d/%d\n", pad, t.Rank, t.Set.Len(), t.Set.ItemSlotCount())
	writeIndentedSet[I, S](sb, t.Set, depth+1)
	fmt.Fprintf(sb, "%sright:\n", pad)
	writeIndented[I, S](sb, t.Right, depth+1)
}

func writeIndentedSet[I constraints.Ordered, S NonemptySet[I, S]](sb *strings.Builder, set S, depth int) {
	pad := strings.Repeat("  ", depth)
	item, left, rest, hasRest := set.RemoveMin()
	fmt.Fprintf(sb, "%sitem=%v\n", pad, item)
	writeIndented[I, S](sb, left, depth+1)
	if hasRest {
		writeIndentedSet[I, S](sb, rest, depth)
	}
}
