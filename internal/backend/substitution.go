package backend

import (
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// SubstitutionBackend applies closures by renaming and substituting
// argument values into the body.
type SubstitutionBackend struct {
	MaxDepth int
}

func NewSubstitution() *SubstitutionBackend {
	return &SubstitutionBackend{}
}

func (b *SubstitutionBackend) Run(ctx *pipeline.PipelineContext) (value.Value, error) {
	return run(ctx, evaluator.StrategySubstitution, b.MaxDepth)
}

func (b *SubstitutionBackend) Name() string {
	return config.BackendSubstitution
}
