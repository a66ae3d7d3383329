package evaluator

import (
	"fmt"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// RenameExps gives every variable bound inside exps a fresh name of the
// form name__N. Free variables are left alone.
func (e *Evaluator) RenameExps(exps []ast.CExp) []ast.CExp {
	out := make([]ast.CExp, len(exps))
	for i, exp := range exps {
		out[i] = e.rename(exp, nil)
	}
	return out
}

func (e *Evaluator) fresh(name string) string {
	e.renames++
	return fmt.Sprintf("%s__%d", name, e.renames)
}

func (e *Evaluator) rename(exp ast.CExp, names map[string]string) ast.CExp {
	switch exp := exp.(type) {
	case *ast.VarRef:
		if n, ok := names[exp.Var]; ok {
			return &ast.VarRef{Var: n}
		}
		return exp
	case *ast.IfExp:
		return &ast.IfExp{
			Test: e.rename(exp.Test, names),
			Then: e.rename(exp.Then, names),
			Alt:  e.rename(exp.Alt, names),
		}
	case *ast.AppExp:
		return &ast.AppExp{Rator: e.rename(exp.Rator, names), Rands: e.renameAll(exp.Rands, names)}
	case *ast.ProcExp:
		inner := copyNames(names)
		params := make([]*ast.VarDecl, len(exp.Args))
		for i, p := range exp.Args {
			n := e.fresh(p.Var)
			inner[p.Var] = n
			params[i] = &ast.VarDecl{Var: n}
		}
		return &ast.ProcExp{Args: params, Body: e.renameAll(exp.Body, inner)}
	case *ast.LetExp:
		inner := copyNames(names)
		bindings := make([]*ast.Binding, len(exp.Bindings))
		for i, b := range exp.Bindings {
			n := e.fresh(b.Var.Var)
			inner[b.Var.Var] = n
			bindings[i] = &ast.Binding{Var: &ast.VarDecl{Var: n}, Val: e.rename(b.Val, names)}
		}
		return &ast.LetExp{Bindings: bindings, Body: e.renameAll(exp.Body, inner)}
	case *ast.DictExp:
		entries := make([]*ast.DictEntry, len(exp.Entries))
		for i, entry := range exp.Entries {
			entries[i] = &ast.DictEntry{Key: entry.Key, Val: e.rename(entry.Val, names)}
		}
		return &ast.DictExp{Entries: entries}
	default:
		return exp
	}
}

func (e *Evaluator) renameAll(exps []ast.CExp, names map[string]string) []ast.CExp {
	out := make([]ast.CExp, len(exps))
	for i, exp := range exps {
		out[i] = e.rename(exp, names)
	}
	return out
}

func copyNames(names map[string]string) map[string]string {
	out := make(map[string]string, len(names)+1)
	for k, v := range names {
		out[k] = v
	}
	return out
}

// Substitute replaces free occurrences of vars in body with the matching
// expressions. Inner binders shadow.
func Substitute(body []ast.CExp, vars []string, exps []ast.CExp) []ast.CExp {
	sub := make(map[string]ast.CExp, len(vars))
	for i, v := range vars {
		sub[v] = exps[i]
	}
	return substituteAll(body, sub)
}

func substituteAll(exps []ast.CExp, sub map[string]ast.CExp) []ast.CExp {
	out := make([]ast.CExp, len(exps))
	for i, exp := range exps {
		out[i] = substitute(exp, sub)
	}
	return out
}

func substitute(exp ast.CExp, sub map[string]ast.CExp) ast.CExp {
	if len(sub) == 0 {
		return exp
	}
	switch exp := exp.(type) {
	case *ast.VarRef:
		if r, ok := sub[exp.Var]; ok {
			return r
		}
		return exp
	case *ast.IfExp:
		return &ast.IfExp{
			Test: substitute(exp.Test, sub),
			Then: substitute(exp.Then, sub),
			Alt:  substitute(exp.Alt, sub),
		}
	case *ast.AppExp:
		return &ast.AppExp{Rator: substitute(exp.Rator, sub), Rands: substituteAll(exp.Rands, sub)}
	case *ast.ProcExp:
		return &ast.ProcExp{Args: exp.Args, Body: substituteAll(exp.Body, without(sub, exp.Args))}
	case *ast.LetExp:
		bindings := make([]*ast.Binding, len(exp.Bindings))
		decls := make([]*ast.VarDecl, len(exp.Bindings))
		for i, b := range exp.Bindings {
			bindings[i] = &ast.Binding{Var: b.Var, Val: substitute(b.Val, sub)}
			decls[i] = b.Var
		}
		return &ast.LetExp{Bindings: bindings, Body: substituteAll(exp.Body, without(sub, decls))}
	case *ast.DictExp:
		entries := make([]*ast.DictEntry, len(exp.Entries))
		for i, entry := range exp.Entries {
			entries[i] = &ast.DictEntry{Key: entry.Key, Val: substitute(entry.Val, sub)}
		}
		return &ast.DictExp{Entries: entries}
	default:
		return exp
	}
}

func without(sub map[string]ast.CExp, decls []*ast.VarDecl) map[string]ast.CExp {
	out := make(map[string]ast.CExp, len(sub))
	for k, v := range sub {
		out[k] = v
	}
	for _, d := range decls {
		delete(out, d.Var)
	}
	return out
}

// ValueToLitExp writes a runtime value back as syntax that evaluates to it.
func ValueToLitExp(v value.Value) ast.CExp {
	switch v := v.(type) {
	case *value.Number:
		return &ast.NumExp{Val: v.Value}
	case *value.Bool:
		return &ast.BoolExp{Val: v.Value}
	case *value.String:
		return &ast.StrExp{Val: v.Value}
	case *value.PrimOp:
		return &ast.PrimOp{Op: v.Op}
	case *Closure:
		return v.Proc()
	case *value.Dict:
		entries := make([]*ast.DictEntry, len(v.Entries))
		for i, entry := range v.Entries {
			entries[i] = &ast.DictEntry{Key: entry.Key.Name, Val: ValueToLitExp(entry.Val)}
		}
		return &ast.DictExp{Entries: entries}
	default:
		return &ast.LitExp{Val: v}
	}
}

func ValuesToLitExps(vals []value.Value) []ast.CExp {
	out := make([]ast.CExp, len(vals))
	for i, v := range vals {
		out[i] = ValueToLitExp(v)
	}
	return out
}
