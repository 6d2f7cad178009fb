package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors of the repository-source core. All raise sites wrap
// these with goerr.Wrap and attach context via goerr.V; callers match
// with errors.Is.
var (
	// ErrInvalidRepositoryIdentifier is returned when a hosted-Git
	// identifier does not split into exactly one non-empty owner and
	// one non-empty repository name. Construction-time, fatal.
	ErrInvalidRepositoryIdentifier = goerr.New("invalid repository identifier")

	// ErrIncompleteWriteIdentity is returned when a writable hosted-Git
	// source is constructed without a write key secret, commit username
	// or commit email.
	ErrIncompleteWriteIdentity = goerr.New("incomplete write identity")

	// ErrDuplicateStage is returned when a stage with the same name is
	// appended to a pipeline twice.
	ErrDuplicateStage = goerr.New("duplicate stage name")

	// ErrInvalidConfig covers configuration authoring errors: bad
	// repository kinds, missing required fields, violated operation
	// preconditions.
	ErrInvalidConfig = goerr.New("invalid configuration")

	// ErrUnsupportedFormat is returned for output formats other than
	// json and yaml.
	ErrUnsupportedFormat = goerr.New("unsupported output format")
)
