package ranking_test

import (
	"testing"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRank(t *testing.T) {
	Convey("Given a set of move evaluations", t, func() {
		evals := []model.MoveEvaluation{
			{Move: "surf", WinProbability: 0.72, Score: 270},
			{Move: "ice-beam", WinProbability: 0.81, Score: 180},
			{Move: "quick-attack", WinProbability: 0.35, Score: 90},
		}

		Convey("When ranking", func() {
			rec := ranking.Rank(evals)

			Convey("Then moves are ordered by probability descending", func() {
				So(len(rec.Evaluations), ShouldEqual, 3)
				So(rec.Evaluations[0].Move, ShouldEqual, "ice-beam")
				So(rec.Evaluations[1].Move, ShouldEqual, "surf")
				So(rec.Evaluations[2].Move, ShouldEqual, "quick-attack")
			})

			Convey("And the top entry is the recommendation", func() {
				So(rec.Best, ShouldNotBeNil)
				So(rec.Best.Move, ShouldEqual, "ice-beam")
			})

			Convey("And the input slice is not reordered", func() {
				So(evals[0].Move, ShouldEqual, "surf")
			})
		})

		Convey("When probabilities tie", func() {
			tied := []model.MoveEvaluation{
				{Move: "surf", WinProbability: 0.5, Score: 120},
				{Move: "ice-beam", WinProbability: 0.5, Score: 200},
			}

			rec := ranking.Rank(tied)

			Convey("Then the higher heuristic score wins", func() {
				So(rec.Evaluations[0].Move, ShouldEqual, "ice-beam")
			})
		})

		Convey("When probability and score both tie", func() {
			tied := []model.MoveEvaluation{
				{Move: "thunderbolt", WinProbability: 0.5, Score: 100},
				{Move: "flamethrower", WinProbability: 0.5, Score: 100},
				{Move: "energy-ball", WinProbability: 0.5, Score: 100},
			}

			rec := ranking.Rank(tied)

			Convey("Then the lexicographically smaller name comes first", func() {
				So(rec.Evaluations[0].Move, ShouldEqual, "energy-ball")
				So(rec.Evaluations[1].Move, ShouldEqual, "flamethrower")
				So(rec.Evaluations[2].Move, ShouldEqual, "thunderbolt")
			})
		})

		Convey("When ranking an empty list", func() {
			rec := ranking.Rank(nil)

			Convey("Then there is no recommendation and no error", func() {
				So(rec.Evaluations, ShouldBeEmpty)
				So(rec.Best, ShouldBeNil)
			})
		})

		Convey("When ranking twice", func() {
			first := ranking.Rank(evals)
			second := ranking.Rank(evals)

			Convey("Then the output is identical", func() {
				So(first.Evaluations, ShouldResemble, second.Evaluations)
			})
		})

		Convey("Then the output is a permutation of the input", func() {
			rec := ranking.Rank(evals)
			names := map[string]bool{}
			for _, e := range rec.Evaluations {
				names[e.Move] = true
			}
			So(len(names), ShouldEqual, len(evals))
			for _, e := range evals {
				So(names[e.Move], ShouldBeTrue)
			}
		})
	})
}
