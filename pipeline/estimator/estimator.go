// Package estimator provides the estimator implementations a pipeline
// artifact can name. The Estimator interface is defined in pipeline/ (parent
// package). This package provides Linear (intercept + coefficients) and
// GradientBoosting (an additive ensemble of regression trees).
package estimator

import (
	"fmt"
	"math"

	"github.com/profitalyze/profit-predict/pipeline"
)

// Estimator kinds as named in artifacts.
const (
	KindLinear           = "linear"
	KindGradientBoosting = "gradient_boosting"
)

// validateCoeffs checks for NaN or Inf in a parameter slice.
func validateCoeffs(name string, coeffs []float64) error {
	for i, c := range coeffs {
		if math.IsNaN(c) {
			return fmt.Errorf("%s[%d] is NaN", name, i)
		}
		if math.IsInf(c, 0) {
			return fmt.Errorf("%s[%d] is Inf", name, i)
		}
	}
	return nil
}

// New creates the Estimator named by spec.Kind.
// Returns an error for unknown kinds or parameters that fail validation.
func New(spec pipeline.EstimatorSpec) (pipeline.Estimator, error) {
	switch spec.Kind {
	case KindLinear:
		return NewLinear(spec.Intercept, spec.Coefficients)
	case KindGradientBoosting:
		return NewGradientBoosting(spec.Init, spec.LearningRate, spec.NumFeatures, spec.Trees)
	case "":
		return nil, fmt.Errorf("estimator kind not set")
	default:
		return nil, fmt.Errorf("unknown estimator kind %q (want %s or %s)", spec.Kind, KindLinear, KindGradientBoosting)
	}
}
