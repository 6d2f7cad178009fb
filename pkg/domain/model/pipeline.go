package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
)

// Artifact is a named output produced by a pipeline action and consumed
// by downstream stages.
type Artifact struct {
	Name string `json:"name" yaml:"name"`
}

// Action is a single source-pull action inside a pipeline stage, bound
// to a provider identity, a branch, an opaque credential and the output
// artifact it produces.
type Action struct {
	Name           string              `json:"name" yaml:"name"`
	Provider       BuildSourceProvider `json:"provider" yaml:"provider"`
	Repository     string              `json:"repository" yaml:"repository"`
	Owner          string              `json:"owner,omitempty" yaml:"owner,omitempty"`
	Repo           string              `json:"repo,omitempty" yaml:"repo,omitempty"`
	Branch         string              `json:"branch" yaml:"branch"`
	Token          SecretRef           `json:"token,omitempty" yaml:"token,omitempty" masq:"secret"`
	OutputArtifact Artifact            `json:"output_artifact" yaml:"output_artifact"`
}

// Stage is a named group of actions inside a pipeline definition.
type Stage struct {
	Name    string   `json:"name" yaml:"name"`
	Actions []Action `json:"actions" yaml:"actions"`
}

// Pipeline is the in-memory pipeline definition graph that repository
// sources append their source stage to during assembly. It is not an
// execution engine; orchestration happens in an external collaborator
// that consumes this definition.
type Pipeline struct {
	Name   string  `json:"name" yaml:"name"`
	Stages []Stage `json:"stages" yaml:"stages"`
}

// NewPipeline creates an empty pipeline definition.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{Name: name}
}

// AddStage appends a stage to the pipeline. Stage names must be unique
// within a pipeline; appending a duplicate fails with ErrDuplicateStage.
func (p *Pipeline) AddStage(s Stage) error {
	for _, existing := range p.Stages {
		if existing.Name == s.Name {
			return goerr.Wrap(types.ErrDuplicateStage, "stage already present",
				goerr.V("pipeline", p.Name),
				goerr.V("stage", s.Name),
			)
		}
	}

	p.Stages = append(p.Stages, s)
	return nil
}

// Stage returns the named stage and whether it exists.
func (p *Pipeline) Stage(name string) (Stage, bool) {
	for _, s := range p.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return Stage{}, false
}
