package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/MrArnoldPalmer/delivlib/pkg/cli/config"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
	"github.com/MrArnoldPalmer/delivlib/pkg/source"
)

const validConfig = `
default_branch = "develop"

[managed]
http_url_template = "https://code.internal.example.com/v1/repos/{name}"
ssh_url_template = "ssh://git.internal.example.com/v1/repos/{name}"

[[pipeline]]
name = "gadgets"

[pipeline.repository]
kind = "managed"
name = "gadgets"

[[pipeline]]
name = "widgets"
branch = "main"
webhook = true

[pipeline.repository]
kind = "hosted-git"
identifier = "acme/widgets"
token_secret = "github/acme-token"

[[pipeline]]
name = "docs"
webhook = true

[pipeline.repository]
kind = "hosted-git-writable"
identifier = "acme/docs"
token_secret = "github/acme-token"
host = "git.example.com"

[pipeline.repository.write]
key_secret = "github/deploy-key"
commit_username = "release-bot"
commit_email = "release-bot@example.com"
`

func TestParse(t *testing.T) {
	doc, err := config.Parse([]byte(validConfig))
	gt.NoError(t, err)
	gt.Equal(t, len(doc.Pipelines), 3)

	reqs, err := doc.Requests()
	gt.NoError(t, err)
	gt.Equal(t, len(reqs), 3)

	t.Run("managed pipeline", func(t *testing.T) {
		req := reqs[0]
		gt.Equal(t, req.Name, "gadgets")
		gt.Equal(t, req.Branch, "develop") // falls back to default_branch
		gt.True(t, !req.Webhook)

		gt.Equal(t, req.Source.Describe(), "gadgets")
		gt.Equal(t, req.Source.RepositoryURLHTTP(), "https://code.internal.example.com/v1/repos/gadgets")
		gt.Equal(t, req.Source.RepositoryURLSSH(), "ssh://git.internal.example.com/v1/repos/gadgets")
		gt.True(t, !req.Source.AllowsBadge())
		gt.True(t, !source.IsWritable(req.Source))
	})

	t.Run("hosted pipeline", func(t *testing.T) {
		req := reqs[1]
		gt.Equal(t, req.Name, "widgets")
		gt.Equal(t, req.Branch, "main")
		gt.True(t, req.Webhook)

		gt.Equal(t, req.Source.Describe(), "acme/widgets")
		gt.Equal(t, req.Source.RepositoryURLHTTP(), "https://github.com/acme/widgets.git")
		gt.True(t, req.Source.AllowsBadge())
		gt.True(t, !source.IsWritable(req.Source))
	})

	t.Run("writable pipeline", func(t *testing.T) {
		req := reqs[2]
		gt.Equal(t, req.Name, "docs")
		gt.Equal(t, req.Branch, "develop")

		gt.Equal(t, req.Source.Describe(), "acme/docs")
		gt.Equal(t, req.Source.RepositoryURLSSH(), "git@git.example.com:acme/docs.git")
		gt.True(t, source.IsWritable(req.Source))

		w, ok := req.Source.(source.WriteCapable)
		gt.True(t, ok)
		gt.Equal(t, w.CommitUsername(), "release-bot")
		gt.Equal(t, w.CommitEmail(), "release-bot@example.com")
	})
}

func TestParseDefaultBranch(t *testing.T) {
	doc, err := config.Parse([]byte(`
[[pipeline]]
name = "widgets"

[pipeline.repository]
kind = "hosted-git"
identifier = "acme/widgets"
token_secret = "github/acme-token"
`))
	gt.NoError(t, err)
	gt.Equal(t, doc.DefaultBranch, "main")

	reqs, err := doc.Requests()
	gt.NoError(t, err)
	gt.Equal(t, reqs[0].Branch, "main")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		toml     string
		contains string
	}{
		{
			name:     "empty document",
			toml:     "",
			contains: "no pipelines",
		},
		{
			name: "missing pipeline name",
			toml: `
[[pipeline]]
[pipeline.repository]
kind = "managed"
name = "widgets"
clone_url_http = "https://example.com/widgets"
clone_url_ssh = "ssh://example.com/widgets"
`,
			contains: "name is required",
		},
		{
			name: "duplicate pipeline name",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
name = "widgets"
clone_url_http = "https://example.com/widgets"
clone_url_ssh = "ssh://example.com/widgets"

[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
name = "widgets"
clone_url_http = "https://example.com/widgets"
clone_url_ssh = "ssh://example.com/widgets"
`,
			contains: "duplicate pipeline name",
		},
		{
			name: "unknown repository kind",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "subversion"
`,
			contains: "unknown repository kind",
		},
		{
			name: "managed repository without name",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
`,
			contains: "name is required",
		},
		{
			name: "managed repository without URLs or templates",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
name = "widgets"
`,
			contains: "clone URLs",
		},
		{
			name: "hosted repository without identifier",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "hosted-git"
token_secret = "github/token"
`,
			contains: "identifier is required",
		},
		{
			name: "hosted repository without token",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "hosted-git"
identifier = "acme/widgets"
`,
			contains: "token_secret is required",
		},
		{
			name: "writable repository without write table",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "hosted-git-writable"
identifier = "acme/widgets"
token_secret = "github/token"
`,
			contains: "write",
		},
		{
			name: "write table on plain hosted repository",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "hosted-git"
identifier = "acme/widgets"
token_secret = "github/token"
[pipeline.repository.write]
key_secret = "github/deploy-key"
commit_username = "bot"
commit_email = "bot@example.com"
`,
			contains: "hosted-git-writable",
		},
		{
			name: "write table on managed repository",
			toml: `
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
name = "widgets"
clone_url_http = "https://example.com/widgets"
clone_url_ssh = "ssh://example.com/widgets"
[pipeline.repository.write]
key_secret = "github/deploy-key"
commit_username = "bot"
commit_email = "bot@example.com"
`,
			contains: "does not apply",
		},
		{
			name: "template without name placeholder",
			toml: `
[managed]
http_url_template = "https://code.internal.example.com/v1/repos/static"
ssh_url_template = "ssh://git.internal.example.com/v1/repos/{name}"

[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
name = "widgets"
`,
			contains: "{name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.toml))
			gt.Error(t, err)
			gt.True(t, errors.Is(err, types.ErrInvalidConfig))
			gt.String(t, err.Error()).Contains(tt.contains)
		})
	}
}

func TestParseMalformedTOML(t *testing.T) {
	_, err := config.Parse([]byte("[[pipeline\nname = broken"))
	gt.Error(t, err)
}

func TestRequestsConstructionErrors(t *testing.T) {
	t.Run("malformed identifier surfaces at construction", func(t *testing.T) {
		doc, err := config.Parse([]byte(`
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "hosted-git"
identifier = "no-slash-here"
token_secret = "github/token"
`))
		gt.NoError(t, err)

		_, err = doc.Requests()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrInvalidRepositoryIdentifier))
	})

	t.Run("incomplete write identity surfaces at construction", func(t *testing.T) {
		doc, err := config.Parse([]byte(`
[[pipeline]]
name = "docs"
[pipeline.repository]
kind = "hosted-git-writable"
identifier = "acme/docs"
token_secret = "github/token"
[pipeline.repository.write]
key_secret = "github/deploy-key"
commit_username = "bot"
`))
		gt.NoError(t, err)

		_, err = doc.Requests()
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrIncompleteWriteIdentity))
	})
}

func TestManagedExplicitCloneURLs(t *testing.T) {
	t.Run("explicit URLs need no templates", func(t *testing.T) {
		doc, err := config.Parse([]byte(`
[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
name = "widgets"
clone_url_http = "https://mirror.example.com/widgets"
clone_url_ssh = "ssh://mirror.example.com/widgets"
`))
		gt.NoError(t, err)

		reqs, err := doc.Requests()
		gt.NoError(t, err)
		gt.Equal(t, reqs[0].Source.RepositoryURLHTTP(), "https://mirror.example.com/widgets")
		gt.Equal(t, reqs[0].Source.RepositoryURLSSH(), "ssh://mirror.example.com/widgets")
	})

	t.Run("explicit URL wins over template", func(t *testing.T) {
		doc, err := config.Parse([]byte(`
[managed]
http_url_template = "https://code.internal.example.com/v1/repos/{name}"
ssh_url_template = "ssh://git.internal.example.com/v1/repos/{name}"

[[pipeline]]
name = "widgets"
[pipeline.repository]
kind = "managed"
name = "widgets"
clone_url_http = "https://mirror.example.com/widgets"
`))
		gt.NoError(t, err)

		reqs, err := doc.Requests()
		gt.NoError(t, err)
		gt.Equal(t, reqs[0].Source.RepositoryURLHTTP(), "https://mirror.example.com/widgets")
		gt.Equal(t, reqs[0].Source.RepositoryURLSSH(), "ssh://git.internal.example.com/v1/repos/widgets")
	})
}

func TestPipelinesLoad(t *testing.T) {
	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "delivlib.toml")
		gt.NoError(t, os.WriteFile(path, []byte(validConfig), 0600))

		cfg := &config.Pipelines{Path: path}
		doc, err := cfg.Load()
		gt.NoError(t, err)
		gt.Equal(t, len(doc.Pipelines), 3)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := &config.Pipelines{Path: filepath.Join(t.TempDir(), "missing.toml")}
		_, err := cfg.Load()
		gt.Error(t, err)
	})
}
