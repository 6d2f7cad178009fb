package usecase

import (
	"context"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/interfaces"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/trigger"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// triggerUseCase evaluates repository events against a fixed set of
// synthesized definitions
type triggerUseCase struct {
	defs []*model.Definition
}

// NewTrigger creates a trigger evaluator over the given definitions
func NewTrigger(defs []*model.Definition) interfaces.TriggerEvaluator {
	return &triggerUseCase{defs: defs}
}

// EvaluateEvent implements interfaces.TriggerEvaluator
func (u *triggerUseCase) EvaluateEvent(ctx context.Context, ev trigger.Event) ([]*model.TriggerDecision, error) {
	if ev.Action == "" {
		return nil, goerr.New("event has no action", goerr.V("branch", ev.Branch))
	}

	logger := ctxlog.From(ctx)

	decisions := make([]*model.TriggerDecision, 0, len(u.defs))
	for _, def := range u.defs {
		triggered := trigger.ShouldTrigger(def.Build, ev)
		decisions = append(decisions, &model.TriggerDecision{
			Pipeline:   def.Name,
			Repository: def.Repository,
			Triggered:  triggered,
		})

		if triggered {
			logger.Info("Build would trigger",
				"pipeline", def.Name,
				"repository", def.Repository,
				"action", ev.Action,
				"branch", ev.Branch,
			)
		}
	}

	logger.Debug("Evaluated repository event",
		"action", ev.Action,
		"branch", ev.Branch,
		"base_branch", ev.BaseBranch,
		"definitions", len(u.defs),
	)

	return decisions, nil
}
