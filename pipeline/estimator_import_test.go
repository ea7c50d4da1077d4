package pipeline_test

// Blank import triggers pipeline/estimator's init(), which registers NewEstimatorFunc.
// This allows package pipeline's internal test files to build pipelines
// without directly importing pipeline/estimator (which would create an import cycle).
import _ "github.com/profitalyze/profit-predict/pipeline/estimator"
