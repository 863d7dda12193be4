package gen

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/niceyeti/gtrees/gtree"
	"github.com/niceyeti/gtrees/gtree/klist"
)

func klistNewSet(item int, left *gtree.GTree[int, *klist.List[int]]) *klist.List[int] {
	return klist.NewSingleton[int](3, item, left)
}

func TestBuildSet(t *testing.T) {
	Convey("Given a scripted singleton-then-insert sequence", t, func() {
		script := InsertMin(7, InsertMin(8, Singleton(9)))

		Convey("BuildSet replays it into a descending list", func() {
			s, ok := BuildSet[int, *klist.List[int]](script, klistNewSet)
			So(ok, ShouldBeTrue)
			item, _, rest, hasRest := s.RemoveMin()
			So(item, ShouldEqual, 7)
			So(hasRest, ShouldBeTrue)
			item, _, rest, hasRest = rest.RemoveMin()
			So(item, ShouldEqual, 8)
			So(hasRest, ShouldBeTrue)
			item, _, _, hasRest = rest.RemoveMin()
			So(item, ShouldEqual, 9)
			So(hasRest, ShouldBeFalse)
		})
	})

	Convey("Given a script that removes past empty", t, func() {
		script := RemoveMin(RemoveMin(Singleton(9)))

		Convey("BuildSet reports ok=false", func() {
			_, ok := BuildSet[int, *klist.List[int]](script, klistNewSet)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestGeometricRank(t *testing.T) {
	Convey("Given many samples with a fixed seed", t, func() {
		rng := rand.New(rand.NewSource(7))
		const target = 3
		const n = 20000

		var sum int
		for i := 0; i < n; i++ {
			sum += int(GeometricRank(rng, target))
		}
		mean := float64(sum) / float64(n)

		Convey("the mean is close to the target node size", func() {
			So(mean, ShouldBeBetween, float64(target)-0.5, float64(target)+0.5)
		})
	})
}

func TestRandomTree(t *testing.T) {
	Convey("Given a random tree built over a known item set", t, func() {
		rng := rand.New(rand.NewSource(42))
		items := make([]int, 50)
		for i := range items {
			items[i] = i
		}
		rng.Shuffle(len(items), func(a, b int) { items[a], items[b] = items[b], items[a] })

		root := RandomTree[int, *klist.List[int]](rng, items, 3, klistNewSet)

		Convey("Has agrees with the input set for every item and a few absent keys", func() {
			for _, item := range items {
				So(gtree.Has[int, *klist.List[int]](root, item), ShouldBeTrue)
			}
			So(gtree.Has[int, *klist.List[int]](root, -1), ShouldBeFalse)
			So(gtree.Has[int, *klist.List[int]](root, 1000), ShouldBeFalse)
		})
	})
}
