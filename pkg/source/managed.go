package source

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
)

// Managed is a repository hosted on the provider-internal repository
// service. Its clone URLs come from the service-issued handle, it does
// not support status badges, and it cannot trigger builds through
// webhooks.
type Managed struct {
	handle model.ManagedRepoHandle
}

var _ RepositorySource = (*Managed)(nil)

// NewManaged wraps a handle issued by the managed repository service.
// The handle is trusted as-is; the service already validated it.
func NewManaged(handle model.ManagedRepoHandle) *Managed {
	return &Managed{handle: handle}
}

func (s *Managed) RepositoryURLHTTP() string {
	return s.handle.CloneURLHTTP
}

func (s *Managed) RepositoryURLSSH() string {
	return s.handle.CloneURLSSH
}

// AllowsBadge is always false: the managed service has no public badge
// endpoint.
func (s *Managed) AllowsBadge() bool {
	return false
}

func (s *Managed) Describe() string {
	return s.handle.Name
}

// CreateSourceStage appends the "Source" stage pulling from the managed
// repository and returns the output artifact.
func (s *Managed) CreateSourceStage(p *model.Pipeline, branch string) (*model.Artifact, error) {
	if err := validateStageArgs(p, branch); err != nil {
		return nil, err
	}

	artifact := model.Artifact{Name: ArtifactName}
	stage := model.Stage{
		Name: StageName,
		Actions: []model.Action{
			{
				Name:           ActionName,
				Provider:       model.BuildSourceManaged,
				Repository:     s.handle.Name,
				Branch:         branch,
				OutputArtifact: artifact,
			},
		},
	}

	if err := p.AddStage(stage); err != nil {
		return nil, err
	}

	return &artifact, nil
}

// CreateBuildSource returns a polling descriptor. The managed service
// cannot deliver webhooks, so a webhook request is dropped with a
// warning instead of silently producing a descriptor that never fires.
func (s *Managed) CreateBuildSource(ctx context.Context, webhook bool, branch string) *model.BuildSource {
	if webhook {
		ctxlog.From(ctx).Warn("managed repository service does not deliver webhooks, falling back to polling",
			"repository", s.handle.Name,
			"branch", branch,
		)
	}

	return &model.BuildSource{
		Provider:     model.BuildSourceManaged,
		Identifier:   s.handle.Name,
		CloneURLHTTP: s.handle.CloneURLHTTP,
	}
}

func (s *Managed) repositorySource() {}
