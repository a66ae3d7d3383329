package backend

import (
	"github.com/BenKaponz/PPL-Task2/internal/lexer"
	"github.com/BenKaponz/PPL-Task2/internal/lower"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/reader"
)

// Options selects what runs after parsing.
type Options struct {
	Backend Backend
	// Lower inserts the dictionary lowering pass before execution.
	Lower         bool
	LowerStrategy lower.Strategy
}

// NewPipeline builds lexer -> reader -> parser [-> lower] -> execute.
// A nil Backend stops after parsing (or lowering).
func NewPipeline(opts Options) *pipeline.Pipeline {
	stages := []pipeline.Processor{
		&lexer.LexerProcessor{},
		&reader.ReaderProcessor{},
		&parser.ParserProcessor{},
	}
	if opts.Lower {
		stages = append(stages, &lower.Processor{Strategy: opts.LowerStrategy})
	}
	if opts.Backend != nil {
		stages = append(stages, NewExecutionProcessor(opts.Backend))
	}
	return pipeline.New(stages...)
}
