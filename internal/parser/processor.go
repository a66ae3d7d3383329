package parser

import (
	"fmt"

	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Name() string { return "parser" }

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if len(ctx.Datums) != 1 {
		ctx.AddError(parseError("parser: expected one program form, got %d", len(ctx.Datums)))
		return ctx
	}

	prog, err := ParseProgramDatum(ctx.Datums[0])
	if err != nil {
		if ctx.FilePath != "" {
			err = fmt.Errorf("%s: %w", ctx.FilePath, err)
		}
		ctx.AddError(err)
		return ctx
	}
	ctx.AstRoot = prog
	return ctx
}
