package backend

import (
	"fmt"
	"log/slog"

	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
)

// ExecutionProcessor implements pipeline.Processor to run a Backend
type ExecutionProcessor struct {
	Backend Backend
}

// NewExecutionProcessor creates a new pipeline step for the given backend
func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Name() string { return "execute" }

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If previous steps failed, don't run execution
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	ctx.Backend = p.Backend.Name()
	result, err := p.Backend.Run(ctx)
	if err != nil {
		if ctx.FilePath != "" {
			err = fmt.Errorf("%s: %w", ctx.FilePath, err)
		}
		ctx.Log().Debug("execution failed", slog.String("backend", ctx.Backend), slog.Any("error", err))
		ctx.AddError(err)
		return ctx
	}

	ctx.Result = result
	return ctx
}
