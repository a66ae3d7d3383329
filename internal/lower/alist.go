package lower

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// datum returns the quoted form of a constant expression.
func datum(exp ast.CExp) (value.Value, bool) {
	switch exp := exp.(type) {
	case *ast.NumExp:
		return value.NewNumber(exp.Val), true
	case *ast.BoolExp:
		return value.NewBool(exp.Val), true
	case *ast.StrExp:
		return value.NewString(exp.Val), true
	case *ast.LitExp:
		return exp.Val, value.IsSExp(exp.Val)
	}
	return nil, false
}

// alistExp builds an expression evaluating to the association list of
// entries: a single quoted list when every value is constant, otherwise
// (cons (cons 'k v) ...) ending in '().
func alistExp(entries []*ast.DictEntry) ast.CExp {
	if quoted, ok := quotedAlist(entries); ok {
		return ast.NewLit(quoted)
	}
	var out ast.CExp = ast.NewLit(value.NewEmpty())
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		pair := ast.NewApp(&ast.PrimOp{Op: config.ConsOpName}, ast.NewSymbolLit(e.Key), e.Val)
		out = ast.NewApp(&ast.PrimOp{Op: config.ConsOpName}, pair, out)
	}
	return out
}

func quotedAlist(entries []*ast.DictEntry) (value.Value, bool) {
	pairs := make([]value.Value, len(entries))
	for i, e := range entries {
		v, ok := datum(e.Val)
		if !ok {
			return nil, false
		}
		pairs[i] = value.Cons(value.NewSymbol(e.Key), v)
	}
	return value.List(pairs...), true
}

func duplicateKeys(d *ast.DictExp) []string {
	return value.DuplicateKeys(d.Keys())
}
