package estimator

import (
	"fmt"
	"math"
)

// Linear predicts intercept + Σ coefficients[i]*x[i].
type Linear struct {
	intercept    float64
	coefficients []float64
}

// NewLinear validates and copies the fitted parameters.
func NewLinear(intercept float64, coefficients []float64) (*Linear, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("linear: coefficients are empty")
	}
	if math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, fmt.Errorf("linear: intercept is not finite")
	}
	if err := validateCoeffs("linear: coefficients", coefficients); err != nil {
		return nil, err
	}
	return &Linear{
		intercept:    intercept,
		coefficients: append([]float64(nil), coefficients...),
	}, nil
}

func (m *Linear) NumFeatures() int { return len(m.coefficients) }

func (m *Linear) Kind() string { return KindLinear }

func (m *Linear) Predict(x []float64) float64 {
	y := m.intercept
	for i, c := range m.coefficients {
		y += c * x[i]
	}
	return y
}
