package source

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
)

// Names used when assembling the source stage of a pipeline.
const (
	// StageName is the name of the stage every variant appends.
	StageName = "Source"
	// ActionName is the name of the single pull action inside it.
	ActionName = "Pull"
	// ArtifactName is the name of the output artifact downstream
	// stages consume.
	ArtifactName = "Source"
)

// RepositorySource is the capability contract every version-control
// backend variant implements. Callers hold a value of this type without
// knowing the concrete variant and invoke the two producer operations
// during pipeline assembly.
//
// The set of variants is closed: managed, hosted-Git and writable
// hosted-Git. The unexported marker method keeps implementations inside
// this package.
//
// Instances are immutable after construction; all operations are pure
// in-memory construction and safe for concurrent use.
type RepositorySource interface {
	// RepositoryURLHTTP returns the HTTPS clone URL. Always derived
	// from identity fields, never stored independently.
	RepositoryURLHTTP() string

	// RepositoryURLSSH returns the SSH clone URL, derived from the
	// same identity fields as RepositoryURLHTTP.
	RepositoryURLSSH() string

	// AllowsBadge reports whether the backend supports a build status
	// badge. Fixed per variant at construction.
	AllowsBadge() bool

	// Describe returns a short human-readable identity for logging and
	// labels. It never contains credential material.
	Describe() string

	// CreateSourceStage appends a "Source" stage with a single pull
	// action bound to branch and returns the "Source" output artifact.
	// Appending twice to the same pipeline fails because the pipeline
	// rejects duplicate stage names.
	CreateSourceStage(p *model.Pipeline, branch string) (*model.Artifact, error)

	// CreateBuildSource returns the build-job source descriptor. When
	// webhook is true the hosted-Git variants attach trigger filters
	// scoped to branch (empty branch means any branch); the managed
	// variant ignores both parameters. The context carries the logger
	// only; no I/O is performed.
	CreateBuildSource(ctx context.Context, webhook bool, branch string) *model.BuildSource

	repositorySource()
}

// WriteCapable is the capability interface of sources that can accept
// commits pushed back by the delivery process (e.g. publishing generated
// docs). It exposes opaque secret references and the commit identity;
// never secret values. Unlike RepositorySource it is deliberately open
// so that wrapping layers can forward the capability.
type WriteCapable interface {
	// WriteKeySecret returns the reference to the deploy key secret.
	WriteKeySecret() model.SecretRef

	// CommitUsername returns the author name for write-back commits.
	CommitUsername() string

	// CommitEmail returns the author email for write-back commits.
	CommitEmail() string
}

// IsWritable reports whether src can accept write-back commits. It is a
// capability check via type assertion plus a presence check of all three
// write fields, so it works on values that arrived through abstraction
// layers erasing the concrete type. It never probes fields reflectively.
func IsWritable(src RepositorySource) bool {
	w, ok := src.(WriteCapable)
	if !ok {
		return false
	}

	return !w.WriteKeySecret().IsZero() && w.CommitUsername() != "" && w.CommitEmail() != ""
}

// validateStageArgs guards the producer preconditions shared by all
// variants: a live pipeline handle and a non-empty branch.
func validateStageArgs(p *model.Pipeline, branch string) error {
	if p == nil {
		return goerr.Wrap(types.ErrInvalidConfig, "pipeline must not be nil")
	}

	if branch == "" {
		return goerr.Wrap(types.ErrInvalidConfig, "branch must not be empty")
	}

	return nil
}
