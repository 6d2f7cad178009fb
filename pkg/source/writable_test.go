package source_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
	"github.com/MrArnoldPalmer/delivlib/pkg/source"
)

func testIdentity() source.CommitIdentity {
	return source.CommitIdentity{
		Username: "release-bot",
		Email:    "release-bot@example.com",
	}
}

func TestNewWritableHostedGit(t *testing.T) {
	t.Run("behaves like a hosted source", func(t *testing.T) {
		src, err := source.NewWritableHostedGit("acme/widgets", "token", "deploy-key", testIdentity())
		gt.NoError(t, err)

		gt.Equal(t, src.Describe(), "acme/widgets")
		gt.Equal(t, src.RepositoryURLHTTP(), "https://github.com/acme/widgets.git")
		gt.Equal(t, src.RepositoryURLSSH(), "git@github.com:acme/widgets.git")
		gt.True(t, src.AllowsBadge())
	})

	t.Run("exposes the write capability", func(t *testing.T) {
		src, err := source.NewWritableHostedGit("acme/widgets", "token", "deploy-key", testIdentity())
		gt.NoError(t, err)

		gt.Equal(t, src.WriteKeySecret(), model.SecretRef("deploy-key"))
		gt.Equal(t, src.CommitUsername(), "release-bot")
		gt.Equal(t, src.CommitEmail(), "release-bot@example.com")
	})

	t.Run("capability survives interface erasure", func(t *testing.T) {
		src, err := source.NewWritableHostedGit("acme/widgets", "token", "deploy-key", testIdentity())
		gt.NoError(t, err)

		var erased source.RepositorySource = src
		gt.True(t, source.IsWritable(erased))

		w, ok := erased.(source.WriteCapable)
		gt.True(t, ok)
		gt.Equal(t, w.CommitUsername(), "release-bot")
	})

	t.Run("custom host applies to the embedded hosted identity", func(t *testing.T) {
		src, err := source.NewWritableHostedGit("acme/widgets", "token", "deploy-key", testIdentity(),
			source.WithHost("git.example.com"))
		gt.NoError(t, err)

		gt.Equal(t, src.RepositoryURLSSH(), "git@git.example.com:acme/widgets.git")
	})

	t.Run("propagates identifier errors", func(t *testing.T) {
		_, err := source.NewWritableHostedGit("not-an-identifier", "token", "deploy-key", testIdentity())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidRepositoryIdentifier))
	})
}

func TestNewWritableHostedGitIncompleteIdentity(t *testing.T) {
	tests := []struct {
		name     string
		writeKey model.SecretRef
		identity source.CommitIdentity
	}{
		{
			name:     "missing write key",
			writeKey: "",
			identity: testIdentity(),
		},
		{
			name:     "missing username",
			writeKey: "deploy-key",
			identity: source.CommitIdentity{Email: "release-bot@example.com"},
		},
		{
			name:     "missing email",
			writeKey: "deploy-key",
			identity: source.CommitIdentity{Username: "release-bot"},
		},
		{
			name:     "missing everything",
			writeKey: "",
			identity: source.CommitIdentity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := source.NewWritableHostedGit("acme/widgets", "token", tt.writeKey, tt.identity)
			gt.Error(t, err)
			gt.True(t, errors.Is(err, types.ErrIncompleteWriteIdentity))
		})
	}
}

func TestWritableHostedGitProducers(t *testing.T) {
	src, err := source.NewWritableHostedGit("acme/widgets", "github/token", "deploy-key", testIdentity())
	gt.NoError(t, err)

	t.Run("source stage matches the hosted variant", func(t *testing.T) {
		p := model.NewPipeline("widgets")
		artifact, err := src.CreateSourceStage(p, "main")
		gt.NoError(t, err)
		gt.Equal(t, artifact.Name, "Source")

		stage, ok := p.Stage("Source")
		gt.True(t, ok)
		gt.Equal(t, stage.Actions[0].Provider, model.BuildSourceHostedGit)
		gt.Equal(t, stage.Actions[0].Token, model.SecretRef("github/token"))
	})

	t.Run("build source matches the hosted variant", func(t *testing.T) {
		hosted, err := source.NewHostedGit("acme/widgets", "github/token")
		gt.NoError(t, err)

		ctx := context.Background()
		gt.Equal(t, src.CreateBuildSource(ctx, true, "main"), hosted.CreateBuildSource(ctx, true, "main"))
	})
}
