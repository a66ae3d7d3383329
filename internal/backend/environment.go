package backend

import (
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// EnvironmentBackend applies closures by extending their captured
// environment.
type EnvironmentBackend struct {
	MaxDepth int
}

func NewEnvironment() *EnvironmentBackend {
	return &EnvironmentBackend{}
}

func (b *EnvironmentBackend) Run(ctx *pipeline.PipelineContext) (value.Value, error) {
	return run(ctx, evaluator.StrategyEnvironment, b.MaxDepth)
}

func (b *EnvironmentBackend) Name() string {
	return config.BackendEnvironment
}
