package pipeline

import "log/slog"

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages are expected to return early once
// ctx.Errors is non-empty, so the first failure is the one reported.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		ctx.logger().Debug("pipeline stage done",
			slog.String("run", ctx.RunID),
			slog.String("stage", stageName(processor)),
			slog.Int("errors", len(ctx.Errors)))
	}
	return ctx
}

type named interface {
	Name() string
}

func stageName(p Processor) string {
	if n, ok := p.(named); ok {
		return n.Name()
	}
	return "processor"
}
