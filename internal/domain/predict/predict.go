// Package predict wraps the trained win-probability classifier behind a
// single-method capability interface.
//
// The pipeline makes no assumption about the model family beyond
// determinism and a calibrated probability for the positive class "A wins".
// Swapping model families means swapping the Estimator implementation; the
// feature pipeline stays untouched.
package predict

import (
	"context"
	"fmt"
	"math"
)

// Estimator produces P(A wins) in [0,1] for one feature vector.
type Estimator interface {
	Predict(ctx context.Context, vector []float64) (float64, error)
}

// LogisticModel is the reference Estimator: a frozen binary logistic
// regression applied to the standardized feature vector. Immutable after
// construction and safe for concurrent use.
type LogisticModel struct {
	weights   []float64
	intercept float64
}

// NewLogisticModel freezes a model from artifact coefficients. Weights must
// be finite and non-empty; the width check against the feature schema
// happens once at startup in the wiring layer.
func NewLogisticModel(weights []float64, intercept float64) (*LogisticModel, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no weights", ErrBadArtifact)
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is not finite", ErrBadArtifact, i)
		}
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, fmt.Errorf("%w: intercept is not finite", ErrBadArtifact)
	}

	m := &LogisticModel{
		weights:   append([]float64(nil), weights...),
		intercept: intercept,
	}
	return m, nil
}

// Width returns the input width the model was trained against.
func (m *LogisticModel) Width() int { return len(m.weights) }

// Predict applies the sigmoid over the dot product. A vector of the wrong
// length means the startup width validation was bypassed, so it is reported
// as an error rather than truncated.
func (m *LogisticModel) Predict(ctx context.Context, vector []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("prediction cancelled: %w", err)
	}
	if len(vector) != len(m.weights) {
		return 0, fmt.Errorf("%w: got %d features, model expects %d",
			ErrWidthMismatch, len(vector), len(m.weights))
	}

	z := m.intercept
	for i, w := range m.weights {
		z += w * vector[i]
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
