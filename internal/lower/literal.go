package lower

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

type literalRewriter struct{}

func (literalRewriter) prelude() []ast.Exp { return nil }

// A dictionary whose values are all constants becomes a dictionary value.
// Anything else keeps the dict primitive so its values are still evaluated
// at run time, and repeated keys are reported when the literal is reached.
func (literalRewriter) dict(d *ast.DictExp) (ast.CExp, error) {
	if len(duplicateKeys(d)) > 0 {
		return applicationRewriter{}.dict(d)
	}
	entries := make([]value.DictEntry, len(d.Entries))
	for i, e := range d.Entries {
		v, ok := constant(e.Val)
		if !ok {
			return applicationRewriter{}.dict(d)
		}
		entries[i] = value.DictEntry{Key: value.NewSymbol(e.Key), Val: v}
	}
	dict, err := value.NewDict(entries)
	if err != nil {
		return nil, err
	}
	return ast.NewLit(dict), nil
}

// Dictionary values apply directly, so applications are left alone.
func (literalRewriter) app(_ ast.CExp, app *ast.AppExp) ast.CExp { return app }

func constant(exp ast.CExp) (value.Value, bool) {
	switch exp := exp.(type) {
	case *ast.PrimOp:
		return &value.PrimOp{Op: exp.Op}, true
	case *ast.LitExp:
		return exp.Val, true
	}
	return datum(exp)
}
