package typechart_test

import (
	"testing"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/model"
	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/typechart"
	. "github.com/smartystreets/goconvey/convey"
)

func testVocabulary() []model.Type {
	return []model.Type{"electric", "fire", "flying", "grass", "ground", "normal", "rock", "water"}
}

func testSparse() map[model.Type]map[model.Type]float64 {
	return map[model.Type]map[model.Type]float64{
		"fire":     {"fire": 0.5, "water": 0.5, "grass": 2, "rock": 0.5},
		"water":    {"fire": 2, "water": 0.5, "grass": 0.5, "ground": 2, "rock": 2},
		"electric": {"water": 2, "electric": 0.5, "grass": 0.5, "ground": 0, "flying": 2},
		"ground":   {"fire": 2, "electric": 2, "grass": 0.5, "flying": 0, "rock": 2},
		"normal":   {"rock": 0.5},
	}
}

func TestChart_Multiplier(t *testing.T) {
	Convey("Given a materialized type chart", t, func() {
		chart, err := typechart.New(testVocabulary(), testSparse())
		So(err, ShouldBeNil)

		Convey("When looking up an explicit pair", func() {
			m, err := chart.Multiplier("water", "fire")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, 2.0)
		})

		Convey("When looking up a pair the sparse data omits", func() {
			m, err := chart.Multiplier("fire", "normal")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, 1.0)
		})

		Convey("When the defender is dual typed", func() {
			Convey("Then the multiplier is the product of both single multipliers", func() {
				// electric vs water/flying = 2 * 2
				m, err := chart.Multiplier("electric", "water", "flying")
				So(err, ShouldBeNil)
				So(m, ShouldEqual, 4.0)
			})

			Convey("And an immunity zeroes the product", func() {
				// ground vs electric/flying = 2 * 0
				m, err := chart.Multiplier("ground", "electric", "flying")
				So(err, ShouldBeNil)
				So(m, ShouldEqual, 0.0)
			})

			Convey("And the product rule holds for every pair", func() {
				vocab := chart.Vocabulary()
				for _, atk := range vocab {
					for _, d1 := range vocab {
						for _, d2 := range vocab {
							m1, err := chart.Single(atk, d1)
							So(err, ShouldBeNil)
							m2, err := chart.Single(atk, d2)
							So(err, ShouldBeNil)
							combined, err := chart.Multiplier(atk, d1, d2)
							So(err, ShouldBeNil)
							So(combined, ShouldEqual, m1*m2)
						}
					}
				}
			})
		})

		Convey("When the second defender type is absent", func() {
			m, err := chart.Multiplier("water", "fire", "")
			So(err, ShouldBeNil)
			So(m, ShouldEqual, 2.0)
		})

		Convey("When a type is outside the vocabulary", func() {
			_, err := chart.Multiplier("shadow", "fire")
			So(err, ShouldWrap, typechart.ErrUnknownType)

			_, err = chart.Multiplier("fire", "shadow")
			So(err, ShouldWrap, typechart.ErrUnknownType)
		})

		Convey("Then every single multiplier comes from the closed set", func() {
			allowed := map[float64]bool{0: true, 0.25: true, 0.5: true, 1: true, 2: true, 4: true}
			for _, atk := range chart.Vocabulary() {
				for _, def := range chart.Vocabulary() {
					m, err := chart.Single(atk, def)
					So(err, ShouldBeNil)
					So(allowed[m], ShouldBeTrue)
				}
			}
		})
	})
}

func TestChart_New(t *testing.T) {
	Convey("Given chart construction inputs", t, func() {
		Convey("When the vocabulary is empty", func() {
			_, err := typechart.New(nil, nil)
			So(err, ShouldWrap, typechart.ErrIncomplete)
		})

		Convey("When the vocabulary contains duplicates", func() {
			_, err := typechart.New([]model.Type{"fire", "fire"}, nil)
			So(err, ShouldWrap, typechart.ErrIncomplete)
		})

		Convey("When sparse data references an unknown attacking type", func() {
			_, err := typechart.New([]model.Type{"fire"}, map[model.Type]map[model.Type]float64{
				"shadow": {"fire": 2},
			})
			So(err, ShouldWrap, typechart.ErrUnknownType)
		})

		Convey("When sparse data references an unknown defending type", func() {
			_, err := typechart.New([]model.Type{"fire"}, map[model.Type]map[model.Type]float64{
				"fire": {"shadow": 2},
			})
			So(err, ShouldWrap, typechart.ErrUnknownType)
		})

		Convey("When construction succeeds", func() {
			chart, err := typechart.New([]model.Type{"water", "fire"}, nil)
			So(err, ShouldBeNil)

			Convey("Then the vocabulary is sorted and closed", func() {
				So(chart.Vocabulary(), ShouldResemble, []model.Type{"fire", "water"})
				So(chart.Contains("fire"), ShouldBeTrue)
				So(chart.Contains("shadow"), ShouldBeFalse)
			})
		})
	})
}
