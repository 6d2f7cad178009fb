package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/interfaces"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
	"github.com/MrArnoldPalmer/delivlib/pkg/utils/async"
)

// defaultParallelism bounds concurrent definition assembly when the
// caller does not choose a limit.
const defaultParallelism = 4

type synthUseCase struct {
	parallelism int
}

// SynthOption customizes the synthesizer.
type SynthOption func(*synthUseCase)

// WithParallelism bounds how many definitions are assembled at once.
// Values below one fall back to the default.
func WithParallelism(n int) SynthOption {
	return func(uc *synthUseCase) {
		if n > 0 {
			uc.parallelism = n
		}
	}
}

// NewSynth creates a new instance of Synthesizer
func NewSynth(options ...SynthOption) interfaces.Synthesizer {
	uc := &synthUseCase{
		parallelism: defaultParallelism,
	}
	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// Synthesize assembles one definition per request. All definitions of a
// run share a synthesis ID and timestamp so emitted files can be traced
// back to the run that produced them. Requests are processed in
// parallel; the result slice preserves request order.
func (uc *synthUseCase) Synthesize(ctx context.Context, reqs []*interfaces.SynthesisRequest) ([]*model.Definition, error) {
	logger := ctxlog.From(ctx)

	synthesisID := uuid.NewString()
	generatedAt := time.Now().UTC()

	logger.Info("Starting pipeline synthesis",
		"synthesis_id", synthesisID,
		"requests", len(reqs),
		"parallelism", uc.parallelism,
	)

	defs := make([]*model.Definition, len(reqs))
	tasks := make([]func(ctx context.Context) error, 0, len(reqs))

	for i, req := range reqs {
		tasks = append(tasks, func(ctx context.Context) error {
			def, err := uc.synthesizeOne(ctx, synthesisID, generatedAt, req)
			if err != nil {
				return goerr.Wrap(err, "failed to synthesize definition",
					goerr.V("pipeline", req.Name),
				)
			}

			defs[i] = def
			return nil
		})
	}

	if err := async.RunAll(ctx, uc.parallelism, tasks); err != nil {
		return nil, err
	}

	logger.Info("Completed pipeline synthesis",
		"synthesis_id", synthesisID,
		"definitions", len(defs),
	)

	return defs, nil
}

// synthesizeOne builds the pipeline skeleton and build descriptor for a
// single request.
func (uc *synthUseCase) synthesizeOne(ctx context.Context, synthesisID string, generatedAt time.Time, req *interfaces.SynthesisRequest) (*model.Definition, error) {
	if req.Source == nil {
		return nil, goerr.Wrap(types.ErrInvalidConfig, "synthesis request has no repository source",
			goerr.V("pipeline", req.Name),
		)
	}

	pipeline := model.NewPipeline(req.Name)

	artifact, err := req.Source.CreateSourceStage(pipeline, req.Branch)
	if err != nil {
		return nil, err
	}

	build := req.Source.CreateBuildSource(ctx, req.Webhook, req.Branch)

	ctxlog.From(ctx).Debug("Assembled pipeline definition",
		"pipeline", req.Name,
		"repository", req.Source.Describe(),
		"artifact", artifact.Name,
		"webhook", build.Webhook,
		"filter_groups", len(build.FilterGroups),
	)

	return &model.Definition{
		Name:        req.Name,
		Repository:  req.Source.Describe(),
		Badge:       req.Source.AllowsBadge(),
		Pipeline:    pipeline,
		Build:       build,
		SynthesisID: synthesisID,
		Version:     types.Version,
		GeneratedAt: generatedAt,
	}, nil
}
