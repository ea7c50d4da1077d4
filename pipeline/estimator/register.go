// register.go wires the estimator constructors into the pipeline package's
// registration variable (NewEstimatorFunc). This init() runs when any package
// imports pipeline/estimator, breaking the import cycle between pipeline/
// (interface owner) and pipeline/estimator/ (implementation).
package estimator

import "github.com/profitalyze/profit-predict/pipeline"

func init() {
	pipeline.NewEstimatorFunc = New
}
