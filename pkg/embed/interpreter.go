// Package l32 embeds the L32 interpreter in Go programs.
//
//	it, _ := l32.New()
//	it.Set("limits", map[string]int{"cpu": 2, "mem": 512})
//	v, err := it.Eval("(* (limits 'cpu) 100)")
//
// Go maps and structs arrive as dictionaries, so host data can be looked
// up with dictionary application or get.
package l32

import (
	"context"
	"fmt"
	"os"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/lower"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/reader"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Interpreter keeps top-level definitions across calls. It is not safe for
// concurrent use.
type Interpreter struct {
	eval       *evaluator.Evaluator
	env        *evaluator.Environment
	parser     *parser.Parser
	marshaller *Marshaller

	lowering bool
	strategy lower.Strategy
}

type Option func(*Interpreter) error

// WithSubstitution applies closures by substitution instead of extending
// environments.
func WithSubstitution() Option {
	return func(it *Interpreter) error {
		it.eval.Strategy = evaluator.StrategySubstitution
		return nil
	}
}

// WithLowering rewrites dict forms with the named strategy ("literal",
// "application" or "runtime") before evaluating them.
func WithLowering(strategy string) Option {
	return func(it *Interpreter) error {
		s, err := lower.ParseStrategy(strategy)
		if err != nil {
			return err
		}
		it.lowering, it.strategy = true, s
		return nil
	}
}

func WithMaxDepth(n int) Option {
	return func(it *Interpreter) error {
		it.eval.MaxDepth = n
		return nil
	}
}

func New(opts ...Option) (*Interpreter, error) {
	it := &Interpreter{
		eval:       evaluator.New(evaluator.StrategyEnvironment),
		env:        evaluator.NewEnvironment(),
		parser:     parser.New(config.LangL32),
		marshaller: NewMarshaller(),
	}
	for _, opt := range opts {
		if err := opt(it); err != nil {
			return nil, err
		}
	}
	if it.lowering {
		prelude, err := lower.Lower(&ast.Program{Lang: config.LangL32}, it.strategy)
		if err != nil {
			return nil, err
		}
		if _, err := it.run(context.Background(), prelude.Exps); err != nil {
			return nil, err
		}
	}
	return it, nil
}

// Set binds a Go value as a top-level variable.
func (it *Interpreter) Set(name string, val interface{}) error {
	v, err := it.marshaller.ToValue(val)
	if err != nil {
		return err
	}
	it.env = it.eval.Define(it.env, name, v)
	it.parser.Bind(name)
	return nil
}

// Get retrieves a top-level variable.
func (it *Interpreter) Get(name string) (interface{}, error) {
	v, ok := it.env.Get(name)
	if !ok {
		return nil, fmt.Errorf("variable '%s' not found", name)
	}
	return it.marshaller.FromValue(v)
}

// Call applies a procedure (or dictionary) bound at top level.
func (it *Interpreter) Call(name string, args ...interface{}) (interface{}, error) {
	fn, ok := it.env.Get(name)
	if !ok {
		return nil, fmt.Errorf("function '%s' not found", name)
	}

	vals := make([]value.Value, len(args))
	for i, arg := range args {
		v, err := it.marshaller.ToValue(arg)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	it.eval.Context = nil
	result, err := it.eval.Apply(fn, vals)
	if err != nil {
		return nil, err
	}
	return it.marshaller.FromValue(result)
}

// Eval evaluates L32 statements, or a whole (L32 ...) program, and returns
// the value of the last expression. Definitions persist.
func (it *Interpreter) Eval(code string) (interface{}, error) {
	return it.EvalContext(context.Background(), code)
}

func (it *Interpreter) EvalContext(ctx context.Context, code string) (interface{}, error) {
	exps, err := it.statements(code)
	if err != nil {
		return nil, err
	}
	if it.lowering {
		for i, exp := range exps {
			if exps[i], err = lower.LowerExp(exp, it.strategy); err != nil {
				return nil, err
			}
		}
	}
	result, err := it.run(ctx, exps)
	if err != nil || result == nil {
		return nil, err
	}
	return it.marshaller.FromValue(result)
}

// LoadFile evaluates a source file for its definitions.
func (it *Interpreter) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := it.Eval(string(content)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (it *Interpreter) run(ctx context.Context, exps []ast.Exp) (value.Value, error) {
	it.eval.Context = ctx
	var result value.Value
	for _, exp := range exps {
		val, env, err := it.eval.Step(exp, it.env)
		if err != nil {
			return nil, err
		}
		it.env, result = env, val
	}
	return result, nil
}

// statements accepts bare statements or (L3 ...)/(L32 ...) programs.
func (it *Interpreter) statements(code string) ([]ast.Exp, error) {
	datums, err := reader.Read(code)
	if err != nil {
		return nil, value.Errorf(value.ParseError, "parse: %v", err)
	}
	var exps []ast.Exp
	for _, datum := range datums {
		if pair, ok := datum.(*value.Pair); ok {
			if tag, ok := pair.Car.(*value.Symbol); ok && (tag.Name == config.LangL3 || tag.Name == config.LangL32) {
				prog, err := it.parser.ParseProgramDatum(datum)
				if err != nil {
					return nil, err
				}
				exps = append(exps, prog.Exps...)
				continue
			}
		}
		exp, err := it.parser.ParseExp(datum)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	return exps, nil
}
