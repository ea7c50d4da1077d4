// Package pipeline loads a fitted regression pipeline from its persisted
// artifact and runs it on tabular input.
//
// # Reading Guide
//
// Start with these files:
//   - artifact.go: the artifact format and Load, the only way a Pipeline is built from disk
//   - record.go: ParseRecord, which turns one JSON object into a one-row Frame
//   - pipeline.go: Predict, which checks the frame against the fitted feature
//     schema, runs the preprocessing steps and hands the row to the estimator
//
// # Architecture
//
// The pipeline package defines the Estimator interface and the artifact types;
// estimator implementations live in pipeline/estimator/ and register themselves
// through the package-level factory variable NewEstimatorFunc from an init()
// function. Any binary that loads artifacts must import pipeline/estimator.
//
// A Pipeline is immutable once built. Predict may be called concurrently.
package pipeline
