package reader

import (
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

type ReaderProcessor struct{}

func (rp *ReaderProcessor) Name() string { return "reader" }

func (rp *ReaderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	datums, err := New(ctx.TokenStream).ReadAll()
	if err != nil {
		ctx.AddError(value.Errorf(value.ParseError, "reader: %v", err))
		return ctx
	}
	ctx.Datums = datums
	return ctx
}
