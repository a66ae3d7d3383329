package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/token"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// PipelineContext carries one program through lexing, reading, parsing,
// lowering and execution.
type PipelineContext struct {
	RunID      string
	Context    context.Context
	SourceCode string
	FilePath   string

	TokenStream []token.Token
	Datums      []value.Value
	AstRoot     *ast.Program

	// Lowered is set once the dictionary lowering pass has rewritten AstRoot.
	Lowered bool

	Result  value.Value
	Backend string
	Errors  []error

	Logger *slog.Logger
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		RunID:      uuid.NewString(),
		SourceCode: source,
	}
}

// Failed reports whether any stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// Err returns the first recorded error.
func (ctx *PipelineContext) Err() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}

func (ctx *PipelineContext) AddError(err error) {
	ctx.Errors = append(ctx.Errors, err)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func (ctx *PipelineContext) logger() *slog.Logger {
	if ctx.Logger == nil {
		return discard
	}
	return ctx.Logger
}

// Log returns the context logger tagged with the run id.
func (ctx *PipelineContext) Log() *slog.Logger {
	return ctx.logger().With(slog.String("run", ctx.RunID))
}
