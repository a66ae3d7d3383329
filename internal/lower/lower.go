// Package lower rewrites dictionary syntax into the base calculus.
//
// Three strategies share one bottom-up walk and differ only in how a
// dictionary literal, and an application whose operator is one, are
// rewritten.
package lower

import (
	"fmt"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
)

type Strategy int

const (
	// Literal folds constant dictionaries into dictionary values at
	// lowering time.
	Literal Strategy = iota
	// Application calls the dict and get primitives.
	Application
	// Runtime defines dict as a global procedure built from car, cdr and
	// eq? only.
	Runtime
)

func (s Strategy) String() string {
	switch s {
	case Literal:
		return config.LowerLiteral
	case Application:
		return config.LowerApplication
	case Runtime:
		return config.LowerRuntime
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy maps a strategy name to its Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case config.LowerLiteral:
		return Literal, nil
	case config.LowerApplication, "":
		return Application, nil
	case config.LowerRuntime:
		return Runtime, nil
	}
	return 0, fmt.Errorf("unknown lowering strategy %q (want %s, %s or %s)",
		name, config.LowerLiteral, config.LowerApplication, config.LowerRuntime)
}

// rewriter is the per-strategy part of the pass. Both hooks receive nodes
// whose children are already lowered.
type rewriter interface {
	dict(d *ast.DictExp) (ast.CExp, error)
	// app is given the operator as written in the source alongside the
	// lowered application.
	app(orig ast.CExp, app *ast.AppExp) ast.CExp
	prelude() []ast.Exp
}

func rewriterFor(s Strategy) (rewriter, error) {
	switch s {
	case Literal:
		return literalRewriter{}, nil
	case Application:
		return applicationRewriter{}, nil
	case Runtime:
		return runtimeRewriter{}, nil
	}
	return nil, fmt.Errorf("unknown lowering strategy %d", int(s))
}

// Lower rewrites every dictionary form in prog. The result is an L3
// program.
func Lower(prog *ast.Program, s Strategy) (*ast.Program, error) {
	rw, err := rewriterFor(s)
	if err != nil {
		return nil, err
	}
	exps := rw.prelude()
	for _, exp := range prog.Exps {
		lowered, err := lowerExp(exp, rw)
		if err != nil {
			return nil, err
		}
		exps = append(exps, lowered)
	}
	return &ast.Program{Lang: config.LangL3, Exps: exps}, nil
}

// LowerExp rewrites a single statement. The Runtime prelude is not added.
func LowerExp(exp ast.Exp, s Strategy) (ast.Exp, error) {
	rw, err := rewriterFor(s)
	if err != nil {
		return nil, err
	}
	return lowerExp(exp, rw)
}

func lowerExp(exp ast.Exp, rw rewriter) (ast.Exp, error) {
	if def, ok := exp.(*ast.DefineExp); ok {
		val, err := lowerCExp(def.Val, rw)
		if err != nil {
			return nil, err
		}
		return &ast.DefineExp{Var: def.Var, Val: val}, nil
	}
	cexp, ok := exp.(ast.CExp)
	if !ok {
		return nil, fmt.Errorf("lower: unexpected statement %s", exp)
	}
	return lowerCExp(cexp, rw)
}

func lowerCExp(exp ast.CExp, rw rewriter) (ast.CExp, error) {
	switch exp := exp.(type) {
	case *ast.NumExp, *ast.BoolExp, *ast.StrExp, *ast.PrimOp, *ast.VarRef, *ast.LitExp:
		return exp, nil
	case *ast.IfExp:
		parts, err := lowerAll(rw, exp.Test, exp.Then, exp.Alt)
		if err != nil {
			return nil, err
		}
		return &ast.IfExp{Test: parts[0], Then: parts[1], Alt: parts[2]}, nil
	case *ast.ProcExp:
		body, err := lowerAll(rw, exp.Body...)
		if err != nil {
			return nil, err
		}
		return &ast.ProcExp{Args: exp.Args, Body: body}, nil
	case *ast.LetExp:
		bindings := make([]*ast.Binding, len(exp.Bindings))
		for i, b := range exp.Bindings {
			val, err := lowerCExp(b.Val, rw)
			if err != nil {
				return nil, err
			}
			bindings[i] = &ast.Binding{Var: b.Var, Val: val}
		}
		body, err := lowerAll(rw, exp.Body...)
		if err != nil {
			return nil, err
		}
		return &ast.LetExp{Bindings: bindings, Body: body}, nil
	case *ast.AppExp:
		rator, err := lowerCExp(exp.Rator, rw)
		if err != nil {
			return nil, err
		}
		rands, err := lowerAll(rw, exp.Rands...)
		if err != nil {
			return nil, err
		}
		return rw.app(exp.Rator, &ast.AppExp{Rator: rator, Rands: rands}), nil
	case *ast.DictExp:
		entries := make([]*ast.DictEntry, len(exp.Entries))
		for i, e := range exp.Entries {
			val, err := lowerCExp(e.Val, rw)
			if err != nil {
				return nil, err
			}
			entries[i] = &ast.DictEntry{Key: e.Key, Val: val}
		}
		return rw.dict(&ast.DictExp{Entries: entries})
	default:
		return nil, fmt.Errorf("lower: unexpected expression %s", exp)
	}
}

func lowerAll(rw rewriter, exps ...ast.CExp) ([]ast.CExp, error) {
	out := make([]ast.CExp, len(exps))
	for i, exp := range exps {
		lowered, err := lowerCExp(exp, rw)
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return out, nil
}
