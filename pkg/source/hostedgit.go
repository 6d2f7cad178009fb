package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
)

// HostedGit is a repository on an external Git hosting service,
// addressed by "owner/repo" and authenticated with an access token
// secret. It supports status badges and webhook-triggered builds.
type HostedGit struct {
	host  string
	owner string
	repo  string
	token model.SecretRef
}

var _ RepositorySource = (*HostedGit)(nil)

// Option customizes hosted-Git construction.
type Option func(*HostedGit)

// WithHost overrides the hosting service domain. The default is the
// public github.com.
func WithHost(host string) Option {
	return func(s *HostedGit) {
		s.host = host
	}
}

// NewHostedGit builds a source for the repository named by identifier,
// which must be exactly "owner/repo". The token is a reference to the
// access-token secret, resolved by the build service at execution time.
func NewHostedGit(identifier string, token model.SecretRef, options ...Option) (*HostedGit, error) {
	owner, repo, err := splitIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	s := &HostedGit{
		host:  types.DefaultGitHost,
		owner: owner,
		repo:  repo,
		token: token,
	}
	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// splitIdentifier parses "owner/repo". Exactly one slash, both parts
// non-empty.
func splitIdentifier(identifier string) (string, string, error) {
	if strings.Count(identifier, "/") != 1 {
		return "", "", goerr.Wrap(types.ErrInvalidRepositoryIdentifier, "identifier must contain exactly one slash",
			goerr.V("identifier", identifier),
		)
	}

	owner, repo, _ := strings.Cut(identifier, "/")
	if owner == "" || repo == "" {
		return "", "", goerr.Wrap(types.ErrInvalidRepositoryIdentifier, "owner and repository name must not be empty",
			goerr.V("identifier", identifier),
		)
	}

	return owner, repo, nil
}

// Host returns the hosting service domain.
func (s *HostedGit) Host() string {
	return s.host
}

// Owner returns the account or organization part of the identifier.
func (s *HostedGit) Owner() string {
	return s.owner
}

// Repo returns the repository name part of the identifier.
func (s *HostedGit) Repo() string {
	return s.repo
}

func (s *HostedGit) RepositoryURLHTTP() string {
	return fmt.Sprintf("https://%s/%s/%s.git", s.host, s.owner, s.repo)
}

func (s *HostedGit) RepositoryURLSSH() string {
	return fmt.Sprintf("git@%s:%s/%s.git", s.host, s.owner, s.repo)
}

// AllowsBadge is always true: the hosting service exposes build status
// badges for any repository.
func (s *HostedGit) AllowsBadge() bool {
	return true
}

func (s *HostedGit) Describe() string {
	return s.owner + "/" + s.repo
}

// CreateSourceStage appends the "Source" stage pulling from the hosted
// repository and returns the output artifact.
func (s *HostedGit) CreateSourceStage(p *model.Pipeline, branch string) (*model.Artifact, error) {
	if err := validateStageArgs(p, branch); err != nil {
		return nil, err
	}

	artifact := model.Artifact{Name: ArtifactName}
	stage := model.Stage{
		Name: StageName,
		Actions: []model.Action{
			{
				Name:           ActionName,
				Provider:       model.BuildSourceHostedGit,
				Repository:     s.Describe(),
				Owner:          s.owner,
				Repo:           s.repo,
				Branch:         branch,
				Token:          s.token,
				OutputArtifact: artifact,
			},
		},
	}

	if err := p.AddStage(stage); err != nil {
		return nil, err
	}

	return &artifact, nil
}

// CreateBuildSource returns the build-job descriptor. With webhook set
// it enables build status reporting and attaches the trigger filter
// groups derived from branch.
func (s *HostedGit) CreateBuildSource(ctx context.Context, webhook bool, branch string) *model.BuildSource {
	bs := &model.BuildSource{
		Provider:     model.BuildSourceHostedGit,
		Identifier:   s.Describe(),
		CloneURLHTTP: s.RepositoryURLHTTP(),
		Token:        s.token,
	}

	if !webhook {
		return bs
	}

	bs.Webhook = true
	bs.ReportBuildStatus = true
	bs.FilterGroups = WebhookFilters(branch)

	ctxlog.From(ctx).Debug("attached webhook trigger filters",
		"repository", s.Describe(),
		"branch", branch,
		"groups", len(bs.FilterGroups),
	)

	return bs
}

func (s *HostedGit) repositorySource() {}
