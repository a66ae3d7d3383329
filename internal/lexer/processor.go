package lexer

import (
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Name() string { return "lexer" }

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	tokens, err := New(ctx.SourceCode).Tokenize()
	if err != nil {
		ctx.AddError(value.Errorf(value.ParseError, "lexer: %v", err))
		return ctx
	}
	ctx.TokenStream = tokens
	return ctx
}
