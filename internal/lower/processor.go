package lower

import (
	"log/slog"

	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
)

type Processor struct {
	Strategy Strategy
}

func (p *Processor) Name() string { return "lower" }

func (p *Processor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	lowered, err := Lower(ctx.AstRoot, p.Strategy)
	if err != nil {
		ctx.AddError(err)
		return ctx
	}
	ctx.Log().Debug("lowered program",
		slog.String("strategy", p.Strategy.String()),
		slog.Int("statements", len(lowered.Exps)))
	ctx.AstRoot = lowered
	ctx.Lowered = true
	return ctx
}
