package evaluator

import (
	"context"
	"io"
	"log/slog"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Strategy selects how closures are applied.
type Strategy int

const (
	// StrategyEnvironment binds parameters in a frame chained to the
	// closure's captured environment.
	StrategyEnvironment Strategy = iota
	// StrategySubstitution renames bound variables in the body and replaces
	// parameters with their argument values written back as syntax.
	StrategySubstitution
)

func (s Strategy) String() string {
	if s == StrategySubstitution {
		return "substitution"
	}
	return "environment"
}

type Evaluator struct {
	Strategy Strategy

	// Context for cancellation (optional)
	Context context.Context

	Logger *slog.Logger

	// MaxDepth bounds the nesting of Eval calls; 0 means unbounded.
	MaxDepth int

	// globals is the top-level chain built by EvalSequence. Variable lookup
	// falls back to it, which is how top-level procedures reach themselves
	// and later definitions.
	globals *Environment

	evalDepth int
	renames   int
}

func New(strategy Strategy) *Evaluator {
	return &Evaluator{
		Strategy: strategy,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// EvalParse parses src as a program and evaluates it.
func (e *Evaluator) EvalParse(src string) (value.Value, error) {
	prog, err := parser.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return e.EvalProgram(prog)
}

func (e *Evaluator) EvalProgram(prog *ast.Program) (value.Value, error) {
	return e.EvalSequence(prog.Exps, NewEnvironment())
}

// EvalSequence evaluates top-level statements. A define extends env for the
// statements after it; the last statement's value is the result.
func (e *Evaluator) EvalSequence(exps []ast.Exp, env *Environment) (value.Value, error) {
	if len(exps) == 0 {
		return nil, value.Errorf(value.EmptyProgram, "Empty sequence")
	}

	var result value.Value
	for _, exp := range exps {
		val, next, err := e.Step(exp, env)
		if err != nil {
			return nil, err
		}
		env, result = next, val
	}
	if result == nil {
		return nil, value.Errorf(value.EmptyProgram, "Program ends with a define and has no value")
	}
	return result, nil
}

// Step evaluates one top-level statement against env. A define yields a nil
// value and env extended with the new binding; anything else leaves env as is.
func (e *Evaluator) Step(exp ast.Exp, env *Environment) (value.Value, *Environment, error) {
	e.globals = env
	switch exp := exp.(type) {
	case *ast.DefineExp:
		val, err := e.Eval(exp.Val, env)
		if err != nil {
			return nil, env, err
		}
		env = e.Define(env, exp.Var.Var, val)
		e.log().Debug("define", slog.String("name", exp.Var.Var), slog.String("kind", string(val.Kind())))
		return nil, env, nil
	case ast.CExp:
		val, err := e.Eval(exp, env)
		return val, env, err
	}
	return nil, env, value.Errorf(value.UnsupportedForm, "Unknown statement: %s", exp)
}

// Define binds name in env as a top-level define would, so later
// references and substitution-mode bodies can see it.
func (e *Evaluator) Define(env *Environment, name string, val value.Value) *Environment {
	env = env.Extend(name, val)
	e.globals = env
	return env
}

// Globals returns the top-level chain as of the last define.
func (e *Evaluator) Globals() *Environment {
	return e.globals
}

func (e *Evaluator) Eval(exp ast.CExp, env *Environment) (value.Value, error) {
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.MaxDepth > 0 && e.evalDepth > e.MaxDepth {
		return nil, value.Errorf(value.RecursionLimit, "maximum recursion depth exceeded (%d)", e.MaxDepth)
	}

	if e.Context != nil {
		select {
		case <-e.Context.Done():
			return nil, e.Context.Err()
		default:
		}
	}

	return e.evalCore(exp, env)
}

func (e *Evaluator) evalCore(exp ast.CExp, env *Environment) (value.Value, error) {
	switch exp := exp.(type) {
	case *ast.NumExp:
		return value.NewNumber(exp.Val), nil
	case *ast.BoolExp:
		return value.NewBool(exp.Val), nil
	case *ast.StrExp:
		return value.NewString(exp.Val), nil
	case *ast.PrimOp:
		return &value.PrimOp{Op: exp.Op}, nil
	case *ast.VarRef:
		return e.lookup(exp.Var, env)
	case *ast.LitExp:
		return exp.Val, nil
	case *ast.IfExp:
		return e.evalIf(exp, env)
	case *ast.ProcExp:
		return e.evalProc(exp, env), nil
	case *ast.LetExp:
		return nil, value.Errorf(value.UnsupportedForm, `"let" not supported (yet)`)
	case *ast.AppExp:
		return e.evalApp(exp, env)
	case *ast.DictExp:
		return e.evalDict(exp, env)
	default:
		return nil, value.Errorf(value.UnsupportedForm, "Bad L32 AST %s", exp)
	}
}

func (e *Evaluator) lookup(name string, env *Environment) (value.Value, error) {
	v, err := env.Lookup(name)
	if err == nil {
		return v, nil
	}
	if v, ok := e.globals.Get(name); ok {
		return v, nil
	}
	return nil, err
}

func (e *Evaluator) evalIf(exp *ast.IfExp, env *Environment) (value.Value, error) {
	test, err := e.Eval(exp.Test, env)
	if err != nil {
		return nil, err
	}
	if value.IsTrue(test) {
		return e.Eval(exp.Then, env)
	}
	return e.Eval(exp.Alt, env)
}

func (e *Evaluator) evalProc(exp *ast.ProcExp, env *Environment) *Closure {
	c := &Closure{Params: exp.Args, Body: exp.Body}
	if e.Strategy == StrategyEnvironment {
		c.Env = env
	}
	return c
}

func (e *Evaluator) evalApp(exp *ast.AppExp, env *Environment) (value.Value, error) {
	rator, err := e.Eval(exp.Rator, env)
	if err != nil {
		return nil, err
	}
	args, err := e.evalExps(exp.Rands, env)
	if err != nil {
		return nil, err
	}
	return e.Apply(rator, args)
}

// evalExps evaluates left to right and stops at the first failure.
func (e *Evaluator) evalExps(exps []ast.CExp, env *Environment) ([]value.Value, error) {
	vals := make([]value.Value, 0, len(exps))
	for _, exp := range exps {
		v, err := e.Eval(exp, env)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// evalBody evaluates a lambda body and returns the last value.
func (e *Evaluator) evalBody(body []ast.CExp, env *Environment) (value.Value, error) {
	if len(body) == 0 {
		return nil, value.Errorf(value.EmptyProgram, "Empty sequence")
	}
	var result value.Value
	for _, exp := range body {
		v, err := e.Eval(exp, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalDict rejects duplicate keys before evaluating any entry.
func (e *Evaluator) evalDict(exp *ast.DictExp, env *Environment) (value.Value, error) {
	if dups := value.DuplicateKeys(exp.Keys()); len(dups) > 0 {
		return nil, value.Errorf(value.DuplicateKey, "dict: Duplicate key(s) found: %s", joinKeys(dups))
	}
	entries := make([]value.DictEntry, 0, len(exp.Entries))
	for _, entry := range exp.Entries {
		v, err := e.Eval(entry.Val, env)
		if err != nil {
			return nil, err
		}
		entries = append(entries, value.DictEntry{Key: value.NewSymbol(entry.Key), Val: v})
	}
	return value.NewDict(entries)
}

func (e *Evaluator) log() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return e.Logger
}
