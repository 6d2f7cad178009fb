package source

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
)

// CommitIdentity is the author identity recorded on commits pushed back
// to a repository by the delivery process.
type CommitIdentity struct {
	Username string
	Email    string
}

// WritableHostedGit is a hosted-Git repository that additionally grants
// push access through a deploy key. It behaves exactly like HostedGit
// for pipeline assembly and adds the write capability on top.
type WritableHostedGit struct {
	HostedGit

	writeKey model.SecretRef
	identity CommitIdentity
}

var (
	_ RepositorySource = (*WritableHostedGit)(nil)
	_ WriteCapable     = (*WritableHostedGit)(nil)
)

// NewWritableHostedGit builds a writable source. On top of the hosted
// identifier rules, the deploy key reference and both commit identity
// fields are required so that a constructed value always passes
// IsWritable.
func NewWritableHostedGit(identifier string, token, writeKey model.SecretRef, identity CommitIdentity, options ...Option) (*WritableHostedGit, error) {
	base, err := NewHostedGit(identifier, token, options...)
	if err != nil {
		return nil, err
	}

	if writeKey.IsZero() || identity.Username == "" || identity.Email == "" {
		return nil, goerr.Wrap(types.ErrIncompleteWriteIdentity, "write key, commit username and commit email are all required",
			goerr.V("repository", base.Describe()),
		)
	}

	return &WritableHostedGit{
		HostedGit: *base,
		writeKey:  writeKey,
		identity:  identity,
	}, nil
}

// WriteKeySecret returns the reference to the deploy key secret.
func (s *WritableHostedGit) WriteKeySecret() model.SecretRef {
	return s.writeKey
}

// CommitUsername returns the author name for write-back commits.
func (s *WritableHostedGit) CommitUsername() string {
	return s.identity.Username
}

// CommitEmail returns the author email for write-back commits.
func (s *WritableHostedGit) CommitEmail() string {
	return s.identity.Email
}
