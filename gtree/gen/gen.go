// Package gen builds gtree.GTree and inner-set values deterministically,
// either from a scripted sequence of construction operations or from random
// (item, rank) streams with ranks drawn from the geometric distribution the
// statistics component uses. It exists for tests: the core itself never
// constructs random trees on its own.
package gen

import (
	"math/rand"

	"github.com/niceyeti/gtrees/gtree"
	"golang.org/x/exp/constraints"
)

// SetOpKind tags a SetOp node.
type SetOpKind int

const (
	// OpSingleton builds a one-pair set out of nothing.
	OpSingleton SetOpKind = iota
	// OpInsertMin inserts Item as the new minimum of the set Rec builds.
	OpInsertMin
	// OpRemoveMin removes the minimum pair of the set Rec builds (and
	// discards it); used to script structures exercising RemoveMin.
	OpRemoveMin
)

// SetOp is a scripted construction step for an inner set, mirroring the
// original statistics/fuzzing code's operation-sequence builder. A SetOp
// tree is read bottom-up: Rec is built first, then this op is applied.
type SetOp[I constraints.Ordered] struct {
	Kind SetOpKind
	Item I
	Rec  *SetOp[I]
}

// Singleton builds a scripted OpSingleton step.
func Singleton[I constraints.Ordered](item I) *SetOp[I] {
	return &SetOp[I]{Kind: OpSingleton, Item: item}
}

// InsertMin builds a scripted OpInsertMin step on top of rec.
func InsertMin[I constraints.Ordered](item I, rec *SetOp[I]) *SetOp[I] {
	return &SetOp[I]{Kind: OpInsertMin, Item: item, Rec: rec}
}

// RemoveMin builds a scripted OpRemoveMin step on top of rec.
func RemoveMin[I constraints.Ordered](rec *SetOp[I]) *SetOp[I] {
	return &SetOp[I]{Kind: OpRemoveMin, Rec: rec}
}

// BuildSet executes a scripted SetOp, returning the resulting set and
// whether the script was well-formed (e.g. it never calls RemoveMin on a
// singleton past the point it becomes empty). newSet is the same
// from-nothing constructor a gtree.Tree would use.
func BuildSet[I constraints.Ordered, S gtree.NonemptySet[I, S]](op *SetOp[I], newSet func(I, *gtree.GTree[I, S]) S) (result S, ok bool) {
	switch op.Kind {
	case OpSingleton:
		return newSet(op.Item, nil), true

	case OpInsertMin:
		rec, recOk := BuildSet[I, S](op.Rec, newSet)
		if !recOk {
			var zero S
			return zero, false
		}
		return rec.InsertMin(op.Item, nil), true

	case OpRemoveMin:
		rec, recOk := BuildSet[I, S](op.Rec, newSet)
		if !recOk {
			var zero S
			return zero, false
		}
		_, _, rest, hasRest := rec.RemoveMin()
		return rest, hasRest

	default:
		var zero S
		return zero, false
	}
}

// GeometricRank draws a rank from the distribution the statistics component
// uses: success parameter 1 - 1/(targetNodeSize+1), implemented as repeated
// coin flips (rank increments while the flip succeeds), so the expected
// number of items sharing a rank, and hence the mean occupied node size,
// is targetNodeSize.
func GeometricRank(rng *rand.Rand, targetNodeSize int) uint8 {
	p := 1.0 - 1.0/float64(targetNodeSize+1)
	var rank uint8
	for rng.Float64() < p {
		rank++
		if rank == 255 {
			break
		}
	}
	return rank
}

// RandomTree builds a tree of n items drawn from items (without
// replacement, in the order given) with ranks from GeometricRank, using the
// supplied rng so callers control reproducibility. targetNodeSize should
// match the inner set's intended bucket width / mean occupancy.
func RandomTree[I constraints.Ordered, S gtree.NonemptySet[I, S]](rng *rand.Rand, items []I, targetNodeSize int, newSet func(I, *gtree.GTree[I, S]) S) *gtree.GTree[I, S] {
	var t *gtree.GTree[I, S]
	for _, item := range items {
		rank := GeometricRank(rng, targetNodeSize)
		t = gtree.Insert[I, S](t, item, rank, newSet)
	}
	return t
}
