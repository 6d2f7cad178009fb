package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/valyala/fasttemplate"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/interfaces"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
	"github.com/MrArnoldPalmer/delivlib/pkg/source"
)

// Repository kinds accepted in the configuration file.
const (
	KindManaged           = "managed"
	KindHostedGit         = "hosted-git"
	KindWritableHostedGit = "hosted-git-writable"
)

// Pipelines holds the pipeline configuration file location
type Pipelines struct {
	Path string
}

// Flags returns CLI flags for pipeline configuration
func (c *Pipelines) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the pipeline configuration file (TOML)",
			Required:    true,
			Destination: &c.Path,
			Sources:     cli.EnvVars("DELIVLIB_CONFIG"),
		},
	}
}

// Load reads and validates the configuration file.
func (c *Pipelines) Load() (*Document, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read pipeline configuration",
			goerr.V("path", c.Path),
		)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid pipeline configuration",
			goerr.V("path", c.Path),
		)
	}

	return doc, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML")
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Document is the root of the configuration file.
type Document struct {
	// DefaultBranch applies to pipelines without an explicit branch.
	DefaultBranch string            `toml:"default_branch"`
	Managed       *ManagedTemplates `toml:"managed"`
	Pipelines     []Pipeline        `toml:"pipeline"`
}

// ManagedTemplates expands clone URLs for repositories on the managed
// repository service. Templates reference the repository name as {name}.
type ManagedTemplates struct {
	HTTPURLTemplate string `toml:"http_url_template"`
	SSHURLTemplate  string `toml:"ssh_url_template"`
}

// Expand substitutes the repository name into both templates.
func (m *ManagedTemplates) Expand(name string) (httpURL, sshURL string) {
	vars := map[string]any{"name": name}
	httpURL = fasttemplate.New(m.HTTPURLTemplate, "{", "}").ExecuteString(vars)
	sshURL = fasttemplate.New(m.SSHURLTemplate, "{", "}").ExecuteString(vars)
	return httpURL, sshURL
}

func (m *ManagedTemplates) validate() error {
	for field, tmpl := range map[string]string{
		"http_url_template": m.HTTPURLTemplate,
		"ssh_url_template":  m.SSHURLTemplate,
	} {
		if tmpl == "" {
			continue
		}
		if !strings.Contains(tmpl, "{name}") {
			return goerr.Wrap(types.ErrInvalidConfig, "managed clone URL template must reference {name}",
				goerr.V("field", field),
				goerr.V("template", tmpl),
			)
		}
	}

	return nil
}

// Pipeline is one [[pipeline]] entry.
type Pipeline struct {
	Name       string     `toml:"name"`
	Branch     string     `toml:"branch"`
	Webhook    bool       `toml:"webhook"`
	Repository Repository `toml:"repository"`
}

// Repository selects and parameterizes the repository source variant of
// a pipeline. Which fields apply depends on Kind.
type Repository struct {
	Kind string `toml:"kind"`

	// Managed repositories.
	Name         string `toml:"name"`
	ID           string `toml:"id"`
	CloneURLHTTP string `toml:"clone_url_http"`
	CloneURLSSH  string `toml:"clone_url_ssh"`

	// Hosted-Git repositories.
	Identifier  string `toml:"identifier"`
	TokenSecret string `toml:"token_secret"`
	Host        string `toml:"host"`

	Write *WriteAccess `toml:"write"`
}

// WriteAccess grants push access to a writable hosted-Git repository.
type WriteAccess struct {
	KeySecret      string `toml:"key_secret"`
	CommitUsername string `toml:"commit_username"`
	CommitEmail    string `toml:"commit_email"`
}

// Validate checks structural rules: unique non-empty pipeline names,
// known repository kinds, the fields each kind requires and well-formed
// managed templates. Identifier format and write-identity completeness
// are enforced by source construction in Requests.
func (d *Document) Validate() error {
	if d.DefaultBranch == "" {
		d.DefaultBranch = types.DefaultBranch
	}

	if d.Managed != nil {
		if err := d.Managed.validate(); err != nil {
			return err
		}
	}

	if len(d.Pipelines) == 0 {
		return goerr.Wrap(types.ErrInvalidConfig, "no pipelines configured")
	}

	seen := make(map[string]struct{}, len(d.Pipelines))
	for _, p := range d.Pipelines {
		if p.Name == "" {
			return goerr.Wrap(types.ErrInvalidConfig, "pipeline name is required")
		}
		if _, ok := seen[p.Name]; ok {
			return goerr.Wrap(types.ErrInvalidConfig, "duplicate pipeline name",
				goerr.V("pipeline", p.Name),
			)
		}
		seen[p.Name] = struct{}{}

		if err := p.Repository.validate(p.Name, d.Managed); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) validate(pipeline string, tmpl *ManagedTemplates) error {
	switch r.Kind {
	case KindManaged:
		if r.Name == "" {
			return goerr.Wrap(types.ErrInvalidConfig, "managed repository name is required",
				goerr.V("pipeline", pipeline),
			)
		}
		if (r.CloneURLHTTP == "" || r.CloneURLSSH == "") && !tmpl.complete() {
			return goerr.Wrap(types.ErrInvalidConfig, "managed repository needs explicit clone URLs or [managed] templates",
				goerr.V("pipeline", pipeline),
				goerr.V("repository", r.Name),
			)
		}
		if r.Write != nil {
			return goerr.Wrap(types.ErrInvalidConfig, "write access does not apply to managed repositories",
				goerr.V("pipeline", pipeline),
			)
		}

	case KindHostedGit, KindWritableHostedGit:
		if r.Identifier == "" {
			return goerr.Wrap(types.ErrInvalidConfig, "repository identifier is required",
				goerr.V("pipeline", pipeline),
			)
		}
		if r.TokenSecret == "" {
			return goerr.Wrap(types.ErrInvalidConfig, "token_secret is required for hosted repositories",
				goerr.V("pipeline", pipeline),
			)
		}
		if r.Kind == KindWritableHostedGit && r.Write == nil {
			return goerr.Wrap(types.ErrInvalidConfig, "[pipeline.repository.write] is required for writable repositories",
				goerr.V("pipeline", pipeline),
			)
		}
		if r.Kind == KindHostedGit && r.Write != nil {
			return goerr.Wrap(types.ErrInvalidConfig, "write access requires kind = \"hosted-git-writable\"",
				goerr.V("pipeline", pipeline),
			)
		}

	default:
		return goerr.Wrap(types.ErrInvalidConfig, "unknown repository kind",
			goerr.V("pipeline", pipeline),
			goerr.V("kind", r.Kind),
		)
	}

	return nil
}

func (m *ManagedTemplates) complete() bool {
	return m != nil && m.HTTPURLTemplate != "" && m.SSHURLTemplate != ""
}

// Requests constructs the synthesis requests, building the concrete
// repository source for every pipeline. Construction surfaces the
// errors structural validation cannot catch, such as malformed
// identifiers.
func (d *Document) Requests() ([]*interfaces.SynthesisRequest, error) {
	reqs := make([]*interfaces.SynthesisRequest, 0, len(d.Pipelines))
	for _, p := range d.Pipelines {
		src, err := p.Repository.source(d.Managed)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to construct repository source",
				goerr.V("pipeline", p.Name),
			)
		}

		branch := p.Branch
		if branch == "" {
			branch = d.DefaultBranch
		}

		reqs = append(reqs, &interfaces.SynthesisRequest{
			Name:    p.Name,
			Source:  src,
			Branch:  branch,
			Webhook: p.Webhook,
		})
	}

	return reqs, nil
}

func (r *Repository) source(tmpl *ManagedTemplates) (source.RepositorySource, error) {
	switch r.Kind {
	case KindManaged:
		httpURL, sshURL := r.CloneURLHTTP, r.CloneURLSSH
		if httpURL == "" || sshURL == "" {
			h, s := tmpl.Expand(r.Name)
			if httpURL == "" {
				httpURL = h
			}
			if sshURL == "" {
				sshURL = s
			}
		}

		return source.NewManaged(model.ManagedRepoHandle{
			Name:         r.Name,
			ID:           r.ID,
			CloneURLHTTP: httpURL,
			CloneURLSSH:  sshURL,
		}), nil

	case KindHostedGit:
		return source.NewHostedGit(r.Identifier, model.SecretRef(r.TokenSecret), r.hostOptions()...)

	case KindWritableHostedGit:
		return source.NewWritableHostedGit(
			r.Identifier,
			model.SecretRef(r.TokenSecret),
			model.SecretRef(r.Write.KeySecret),
			source.CommitIdentity{
				Username: r.Write.CommitUsername,
				Email:    r.Write.CommitEmail,
			},
			r.hostOptions()...,
		)

	default:
		return nil, goerr.Wrap(types.ErrInvalidConfig, "unknown repository kind",
			goerr.V("kind", r.Kind),
		)
	}
}

func (r *Repository) hostOptions() []source.Option {
	if r.Host == "" {
		return nil
	}

	return []source.Option{source.WithHost(r.Host)}
}
