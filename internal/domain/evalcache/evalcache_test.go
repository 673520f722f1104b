package evalcache_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/evalcache"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rec(move string, p float64) model.Recommendation {
	e := model.MoveEvaluation{Move: move, WinProbability: p}
	return model.Recommendation{Evaluations: []model.MoveEvaluation{e}, Best: &e}
}

func TestCache(t *testing.T) {
	Convey("Given an in-memory evaluation cache", t, func() {
		cache := evalcache.New(evalcache.WithMaxSize(3))
		ctx := context.Background()

		Convey("When getting a missing key", func() {
			_, ok := cache.Get(ctx, "missing")
			So(ok, ShouldBeFalse)
		})

		Convey("When putting and getting a recommendation", func() {
			cache.Put(ctx, "fp-1", rec("surf", 0.7))

			got, ok := cache.Get(ctx, "fp-1")
			So(ok, ShouldBeTrue)
			So(got.Best.Move, ShouldEqual, "surf")
			So(got.Best.WinProbability, ShouldEqual, 0.7)
			So(cache.Size(), ShouldEqual, 1)
		})

		Convey("When re-putting an existing key", func() {
			cache.Put(ctx, "fp-1", rec("surf", 0.7))
			cache.Put(ctx, "fp-1", rec("ice-beam", 0.8))

			got, ok := cache.Get(ctx, "fp-1")
			So(ok, ShouldBeTrue)
			So(got.Best.Move, ShouldEqual, "ice-beam")
			So(cache.Size(), ShouldEqual, 1)
		})

		Convey("When exceeding the bound", func() {
			for i := 0; i < 4; i++ {
				cache.Put(ctx, fmt.Sprintf("fp-%d", i), rec("surf", 0.5))
			}

			Convey("Then the oldest entry is evicted", func() {
				So(cache.Size(), ShouldEqual, 3)
				_, ok := cache.Get(ctx, "fp-0")
				So(ok, ShouldBeFalse)
				_, ok = cache.Get(ctx, "fp-3")
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When the cache is unbounded", func() {
			unbounded := evalcache.New(evalcache.WithMaxSize(0))
			for i := 0; i < 100; i++ {
				unbounded.Put(ctx, fmt.Sprintf("fp-%d", i), rec("surf", 0.5))
			}

			So(unbounded.Size(), ShouldEqual, 100)
			_, ok := unbounded.Get(ctx, "fp-0")
			So(ok, ShouldBeTrue)
		})

		Convey("When accessed concurrently", func() {
			done := make(chan struct{}, 10)
			for g := 0; g < 10; g++ {
				go func(g int) {
					defer func() { done <- struct{}{} }()
					for i := 0; i < 50; i++ {
						key := fmt.Sprintf("fp-%d-%d", g, i)
						cache.Put(ctx, key, rec("surf", 0.5))
						cache.Get(ctx, key)
					}
				}(g)
			}
			for g := 0; g < 10; g++ {
				<-done
			}

			Convey("Then the bound still holds", func() {
				So(cache.Size(), ShouldBeLessThanOrEqualTo, 3)
			})
		})
	})
}
