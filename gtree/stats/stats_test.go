package stats

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/niceyeti/gtrees/gtree"
	"github.com/niceyeti/gtrees/gtree/controlset"
	"github.com/niceyeti/gtrees/gtree/gen"
	"github.com/niceyeti/gtrees/gtree/klist"
)

func klistNewSet(item int, left *gtree.GTree[int, *klist.List[int]]) *klist.List[int] {
	return klist.NewSingleton[int](3, item, left)
}

func controlNewSet(item int, left *gtree.GTree[int, *controlset.Set[int]]) *controlset.Set[int] {
	return controlset.NewSingleton[int](item, left)
}

func TestComputeOnEmptyTree(t *testing.T) {
	Convey("Given the empty tree", t, func() {
		var root *gtree.GTree[int, *klist.List[int]]

		Convey("Compute reports an empty, order-holding summary", func() {
			s := Compute[int, *klist.List[int]](root)
			So(s.HasItems, ShouldBeFalse)
			So(s.NodeCount, ShouldEqual, 0)
			So(s.ItemCount, ShouldEqual, 0)
			So(s.HeapOrderHolds, ShouldBeTrue)
			So(s.SearchOrderHolds, ShouldBeTrue)
			So(s.Rank, ShouldEqual, int(gtree.EmptyRank))
		})
	})
}

func TestComputeOnKnownTree(t *testing.T) {
	Convey("Given K=3 items 0..15 with varied ranks", t, func() {
		ranks := []uint8{1, 3, 0, 2, 4, 1, 0, 2, 3, 1, 0, 5, 2, 1, 0, 3}
		var root *gtree.GTree[int, *klist.List[int]]
		for item := 0; item <= 15; item++ {
			root = gtree.Insert[int, *klist.List[int]](root, item, ranks[item], klistNewSet)
		}

		Convey("item and rank accounting matches the inserted set", func() {
			s := Compute[int, *klist.List[int]](root)
			So(s.ItemCount, ShouldEqual, 16)
			So(s.HasItems, ShouldBeTrue)
			So(s.Min, ShouldEqual, 0)
			So(s.Max, ShouldEqual, 15)
			So(s.SearchOrderHolds, ShouldBeTrue)
			So(s.HeapOrderHolds, ShouldBeTrue)

			total := 0
			for _, n := range s.RankHistogram {
				total += n
			}
			So(total, ShouldEqual, 16)
		})

		Convey("PhysicalHeight is at least NodeHeight, since buckets add hops", func() {
			s := Compute[int, *klist.List[int]](root)
			ph := PhysicalHeight[int, *klist.List[int]](root)
			So(ph, ShouldBeGreaterThanOrEqualTo, s.NodeHeight)
		})
	})
}

func TestPhysicalHeightEqualsNodeHeightForControlSet(t *testing.T) {
	Convey("Given a tree built over controlset.Set, which has no bucket chain", t, func() {
		var root *gtree.GTree[int, *controlset.Set[int]]
		for _, item := range []int{10, 20, 5, 7, 1, 15} {
			root = gtree.Insert[int, *controlset.Set[int]](root, item, uint8(item%3), controlNewSet)
		}

		Convey("PhysicalHeight falls back to NodeHeight", func() {
			s := Compute[int, *controlset.Set[int]](root)
			ph := PhysicalHeight[int, *controlset.Set[int]](root)
			So(ph, ShouldEqual, s.NodeHeight)
		})
	})
}

func TestPerfectHeight(t *testing.T) {
	Convey("PerfectHeight of the empty set is zero", t, func() {
		So(PerfectHeight(0, 3), ShouldEqual, 0)
	})

	Convey("PerfectHeight grows logarithmically with base k+1", t, func() {
		h1 := PerfectHeight(16, 3)
		h2 := PerfectHeight(256, 3)
		So(h2, ShouldBeGreaterThan, h1)
	})
}

func TestRepeat(t *testing.T) {
	Convey("Given many random trees of the same target size", t, func() {
		rng := rand.New(rand.NewSource(1))
		items := make([]int, 100)
		for i := range items {
			items[i] = i
		}

		trees := make([]*gtree.GTree[int, *klist.List[int]], 20)
		for i := range trees {
			rng.Shuffle(len(items), func(a, b int) { items[a], items[b] = items[b], items[a] })
			cp := append([]int(nil), items...)
			trees[i] = gen.RandomTree[int, *klist.List[int]](rng, cp, 3, klistNewSet)
		}

		Convey("Repeat aggregates without panicking and reports sane means", func() {
			agg := Repeat[int, *klist.List[int]](trees, 100, 3)
			So(agg.ItemCount.Mean, ShouldEqual, 100)
			So(agg.GNodeCount.Mean, ShouldBeGreaterThan, 0)
			So(agg.SpaceAmplification.Mean, ShouldBeGreaterThanOrEqualTo, 1)
			So(agg.PerfectHeight, ShouldBeGreaterThan, 0)
		})
	})
}
