package gtree

import "golang.org/x/exp/constraints"

// Tree is a stateful convenience wrapper around the free Insert/Delete/Has/
// Search functions, storing the newSet constructor once at construction
// rather than threading it through every call site. This mirrors how the
// teacher's Skiplist stores its level count r once in NewSkiplist rather
// than passing it to every operation.
type Tree[I constraints.Ordered, S NonemptySet[I, S]] struct {
	root   *GTree[I, S]
	newSet func(I, *GTree[I, S]) S
}

// NewTree returns an empty Tree. newSet must build a singleton S from a
// bare (item, left) pair; Insert invokes it (through Zip3) once per call to
// build the new item's singleton set, since an empty tree offers no live S
// instance to call Singleton on.
func NewTree[I constraints.Ordered, S NonemptySet[I, S]](newSet func(item I, left *GTree[I, S]) S) *Tree[I, S] {
	if newSet == nil {
		invariantViolation("NewTree: newSet constructor must not be nil")
	}
	return &Tree[I, S]{newSet: newSet}
}

func (t *Tree[I, S]) Insert(item I, rank uint8) {
	t.root = Insert[I, S](t.root, item, rank, t.newSet)
}

func (t *Tree[I, S]) Delete(item I) {
	t.root = Delete[I, S](t.root, item)
}

func (t *Tree[I, S]) Has(key I) bool {
	return Has[I, S](t.root, key)
}

func (t *Tree[I, S]) Search(key I) (I, bool) {
	return Search[I, S](t.root, key)
}

// Root exposes the underlying immutable tree value, e.g. for passing to the
// stats package.
func (t *Tree[I, S]) Root() *GTree[I, S] {
	return t.root
}

func (t *Tree[I, S]) Format(order TraversalOrder) (string, error) {
	return Format[I, S](t.root, order)
}
