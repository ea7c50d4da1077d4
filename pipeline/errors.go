package pipeline

import "errors"

// Failure classes surfaced by the load → parse → predict chain. Callers
// classify with errors.Is; the wrapped message carries the detail.
var (
	// ErrArgument marks a missing argument or one that is not a JSON object.
	ErrArgument = errors.New("invalid argument")

	// ErrArtifact marks an artifact that is missing, unreadable, malformed or
	// of an incompatible format version.
	ErrArtifact = errors.New("invalid model artifact")

	// ErrSchemaMismatch marks input whose columns or value types do not match
	// the feature schema the artifact was fitted on.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
)
