package gtree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/niceyeti/gtrees/gtree"
	"github.com/niceyeti/gtrees/gtree/klist"
)

func newSet(item int, left *gtree.GTree[int, *klist.List[int]]) *klist.List[int] {
	return klist.NewSingleton[int](3, item, left)
}

// inorderItems walks n ascending by item, independent of bucket layout.
// gtree.Format's InOrder mode reports a flat "(item,rank) " sequence too,
// but this avoids depending on its string rendering for assertions.
func inorderItems(t *gtree.GTree[int, *klist.List[int]]) []int {
	var out []int
	var walk func(n *gtree.GTree[int, *klist.List[int]])
	walk = func(n *gtree.GTree[int, *klist.List[int]]) {
		if n == nil {
			return
		}
		for cur, ok := n.Set, true; ok; {
			item, left, rest, hasRest := cur.RemoveMin()
			walk(left)
			out = append(out, item)
			cur, ok = rest, hasRest
		}
		walk(n.Right)
	}
	walk(t)
	return out
}

func TestInsertAndSearch(t *testing.T) {
	Convey("Given K=3 and items inserted as (10,r=2),(20,r=0),(5,r=1)", t, func() {
		var root *gtree.GTree[int, *klist.List[int]]
		root = gtree.Insert[int, *klist.List[int]](root, 10, 2, newSet)
		root = gtree.Insert[int, *klist.List[int]](root, 20, 0, newSet)
		root = gtree.Insert[int, *klist.List[int]](root, 5, 1, newSet)

		Convey("every inserted item is present", func() {
			So(gtree.Has[int, *klist.List[int]](root, 5), ShouldBeTrue)
			So(gtree.Has[int, *klist.List[int]](root, 10), ShouldBeTrue)
			So(gtree.Has[int, *klist.List[int]](root, 20), ShouldBeTrue)
		})

		Convey("an absent item is not found", func() {
			So(gtree.Has[int, *klist.List[int]](root, 15), ShouldBeFalse)
		})

		Convey("Search returns the least item >= key", func() {
			item, ok := gtree.Search[int, *klist.List[int]](root, 6)
			So(ok, ShouldBeTrue)
			So(item, ShouldEqual, 10)
		})

		Convey("Search past the max finds nothing", func() {
			_, ok := gtree.Search[int, *klist.List[int]](root, 21)
			So(ok, ShouldBeFalse)
		})

		Convey("Deleting an item removes only that item", func() {
			root = gtree.Delete[int, *klist.List[int]](root, 10)
			So(gtree.Has[int, *klist.List[int]](root, 10), ShouldBeFalse)
			So(inorderItems(root), ShouldResemble, []int{5, 20})

			item, ok := gtree.Search[int, *klist.List[int]](root, 6)
			So(ok, ShouldBeTrue)
			So(item, ShouldEqual, 20)
		})
	})
}

func TestInsertCoversZeroToFifteen(t *testing.T) {
	Convey("Given K=3 and items 0..15 inserted with varied ranks", t, func() {
		ranks := []uint8{1, 3, 0, 2, 4, 1, 0, 2, 3, 1, 0, 5, 2, 1, 0, 3}
		var root *gtree.GTree[int, *klist.List[int]]
		want := map[int]bool{}
		for item := 0; item <= 15; item++ {
			root = gtree.Insert[int, *klist.List[int]](root, item, ranks[item], newSet)
			want[item] = true
		}

		Convey("Has agrees with the inserted set for every query in -1..17", func() {
			for q := -1; q <= 17; q++ {
				So(gtree.Has[int, *klist.List[int]](root, q), ShouldEqual, want[q])
			}
		})

		Convey("in-order traversal is exactly 0..15 ascending", func() {
			expect := make([]int, 16)
			for i := range expect {
				expect[i] = i
			}
			So(inorderItems(root), ShouldResemble, expect)
		})
	})
}

func TestHistoryIndependence(t *testing.T) {
	Convey("Given the same (item, rank) pairs inserted in opposite orders", t, func() {
		pairs := []struct {
			item int
			rank uint8
		}{
			{10, 2}, {20, 0}, {5, 1}, {7, 3}, {1, 0}, {15, 1},
		}

		var forward *gtree.GTree[int, *klist.List[int]]
		for _, p := range pairs {
			forward = gtree.Insert[int, *klist.List[int]](forward, p.item, p.rank, newSet)
		}

		var backward *gtree.GTree[int, *klist.List[int]]
		for i := len(pairs) - 1; i >= 0; i-- {
			p := pairs[i]
			backward = gtree.Insert[int, *klist.List[int]](backward, p.item, p.rank, newSet)
		}

		Convey("the resulting trees are structurally equal", func() {
			So(gtree.Equal[int, *klist.List[int]](forward, backward), ShouldBeTrue)
			So(cmp.Equal(forward, backward), ShouldBeTrue)
		})
	})
}

func TestDeleteOfAbsentKeyIsNoOp(t *testing.T) {
	Convey("Given a singleton tree", t, func() {
		var root *gtree.GTree[int, *klist.List[int]]
		root = gtree.Insert[int, *klist.List[int]](root, 42, 3, newSet)

		Convey("deleting a key that was never present changes nothing", func() {
			after := gtree.Delete[int, *klist.List[int]](root, 7)
			So(gtree.Equal[int, *klist.List[int]](root, after), ShouldBeTrue)
			So(cmp.Equal(root, after), ShouldBeTrue)
		})
	})
}

func TestReinsertSameRankIsIdempotent(t *testing.T) {
	Convey("Given an item already present with a given rank", t, func() {
		var root *gtree.GTree[int, *klist.List[int]]
		root = gtree.Insert[int, *klist.List[int]](root, 10, 2, newSet)
		root = gtree.Insert[int, *klist.List[int]](root, 20, 0, newSet)

		Convey("re-inserting it with the same rank is a no-op", func() {
			again := gtree.Insert[int, *klist.List[int]](root, 10, 2, newSet)
			So(gtree.Equal[int, *klist.List[int]](root, again), ShouldBeTrue)
		})
	})
}
