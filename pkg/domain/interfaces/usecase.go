package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . Synthesizer TriggerEvaluator

import (
	"context"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/source"
	"github.com/MrArnoldPalmer/delivlib/pkg/trigger"
)

// SynthesisRequest describes one pipeline definition to synthesize.
type SynthesisRequest struct {
	// Name labels the pipeline and the emitted definition.
	Name string
	// Source is the repository backend the pipeline pulls from.
	Source source.RepositorySource
	// Branch is the branch the source stage tracks and webhook filters
	// constrain.
	Branch string
	// Webhook requests webhook-triggered builds where the backend
	// supports them.
	Webhook bool
}

// Synthesizer defines the interface for pipeline definition synthesis
type Synthesizer interface {
	// Synthesize assembles one definition per request, preserving
	// request order
	Synthesize(ctx context.Context, reqs []*SynthesisRequest) ([]*model.Definition, error)
}

// TriggerEvaluator answers whether a repository event would start
// builds for a set of synthesized definitions
type TriggerEvaluator interface {
	// EvaluateEvent returns one decision per definition, preserving
	// definition order
	EvaluateEvent(ctx context.Context, ev trigger.Event) ([]*model.TriggerDecision, error)
}
