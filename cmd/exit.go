package cmd

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/profitalyze/profit-predict/pipeline"
)

// Process exit statuses. Any failure outside the three pipeline classes,
// such as an unknown flag, exits with ExitFailure.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitArgument       = 2
	ExitArtifact       = 3
	ExitSchemaMismatch = 4
)

// ExitCode maps an error returned by the root command to a process status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, pipeline.ErrArgument):
		return ExitArgument
	case errors.Is(err, pipeline.ErrArtifact):
		return ExitArtifact
	case errors.Is(err, pipeline.ErrSchemaMismatch):
		return ExitSchemaMismatch
	default:
		return ExitFailure
	}
}

// reportError logs the final error to stderr and returns the exit status.
func reportError(err error) int {
	logrus.Error(err)
	return ExitCode(err)
}
