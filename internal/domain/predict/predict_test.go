package predict_test

import (
	"context"
	"math"
	"testing"

	"github.com/benjsant/lets-go-predictiondex-sub004/internal/domain/predict"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogisticModel_Predict(t *testing.T) {
	Convey("Given a frozen logistic model", t, func() {
		model, err := predict.NewLogisticModel([]float64{2, -1, 0.5}, 0.25)
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When predicting a known vector", func() {
			p, err := model.Predict(ctx, []float64{1, 2, 4})
			So(err, ShouldBeNil)

			Convey("Then the probability is the sigmoid of the dot product", func() {
				// z = 0.25 + 2 - 2 + 2 = 2.25
				So(p, ShouldAlmostEqual, 1.0/(1.0+math.Exp(-2.25)))
			})
		})

		Convey("When predicting the zero vector", func() {
			p, err := model.Predict(ctx, []float64{0, 0, 0})
			So(err, ShouldBeNil)
			So(p, ShouldAlmostEqual, 1.0/(1.0+math.Exp(-0.25)))
		})

		Convey("Then the probability always stays inside [0,1]", func() {
			extremes := [][]float64{
				{1000, 0, 0},
				{-1000, 0, 0},
				{0, 1000, -1000},
			}
			for _, v := range extremes {
				p, err := model.Predict(ctx, v)
				So(err, ShouldBeNil)
				So(p, ShouldBeBetweenOrEqual, 0, 1)
			}
		})

		Convey("When predicting the same vector twice", func() {
			first, err1 := model.Predict(ctx, []float64{0.3, -0.2, 0.9})
			second, err2 := model.Predict(ctx, []float64{0.3, -0.2, 0.9})

			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(first, ShouldEqual, second)
		})

		Convey("When the vector width disagrees with the model", func() {
			_, err := model.Predict(ctx, []float64{1, 2})
			So(err, ShouldWrap, predict.ErrWidthMismatch)
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := model.Predict(cancelled, []float64{1, 2, 3})
			So(err, ShouldWrap, context.Canceled)
		})
	})
}

func TestNewLogisticModel(t *testing.T) {
	Convey("Given model artifact coefficients", t, func() {
		Convey("When the weights are empty", func() {
			_, err := predict.NewLogisticModel(nil, 0)
			So(err, ShouldWrap, predict.ErrBadArtifact)
		})

		Convey("When a weight is not finite", func() {
			_, err := predict.NewLogisticModel([]float64{1, math.NaN()}, 0)
			So(err, ShouldWrap, predict.ErrBadArtifact)

			_, err = predict.NewLogisticModel([]float64{math.Inf(1)}, 0)
			So(err, ShouldWrap, predict.ErrBadArtifact)
		})

		Convey("When the intercept is not finite", func() {
			_, err := predict.NewLogisticModel([]float64{1}, math.Inf(-1))
			So(err, ShouldWrap, predict.ErrBadArtifact)
		})

		Convey("When the artifact is valid", func() {
			model, err := predict.NewLogisticModel([]float64{1, 2, 3, 4}, -0.5)
			So(err, ShouldBeNil)
			So(model.Width(), ShouldEqual, 4)
		})
	})
}
