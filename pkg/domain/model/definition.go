package model

import "time"

// Definition is a synthesized delivery definition: the pipeline graph
// with its source stage, the build-source descriptor, and synthesis
// metadata. External orchestration collaborators consume this document;
// nothing in this repository executes it.
type Definition struct {
	Name        string       `json:"name" yaml:"name"`
	Repository  string       `json:"repository" yaml:"repository"`
	Badge       bool         `json:"badge" yaml:"badge"`
	Pipeline    *Pipeline    `json:"pipeline" yaml:"pipeline"`
	Build       *BuildSource `json:"build" yaml:"build"`
	SynthesisID string       `json:"synthesis_id" yaml:"synthesis_id"`
	Version     string       `json:"version" yaml:"version"`
	GeneratedAt time.Time    `json:"generated_at" yaml:"generated_at"`
}
