package lower

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// DictProcName is the global the Runtime strategy defines.
const DictProcName = "dict"

// DuplicateKeyTag heads the failing form a repeated-key literal lowers to.
const DuplicateKeyTag = "duplicate-key"

type runtimeRewriter struct{}

// (define dict
//   (lambda (pairs)
//     (lambda (k)
//       (if (eq? (car (car pairs)) k)
//           (cdr (car pairs))
//           ((dict (cdr pairs)) k)))))
//
// The recursive call goes through the global binding, which is the only
// way a closure can reach itself under substitution.
func (runtimeRewriter) prelude() []ast.Exp {
	prim := func(op string, args ...ast.CExp) ast.CExp {
		return ast.NewApp(&ast.PrimOp{Op: op}, args...)
	}
	pairs := &ast.VarRef{Var: "pairs"}
	k := &ast.VarRef{Var: "k"}
	first := prim(config.CarOpName, pairs)

	lookup := &ast.IfExp{
		Test: prim(config.EqOpName, prim(config.CarOpName, first), k),
		Then: prim(config.CdrOpName, first),
		Alt:  ast.NewApp(ast.NewApp(&ast.VarRef{Var: DictProcName}, prim(config.CdrOpName, pairs)), k),
	}
	return []ast.Exp{
		ast.NewDefine(DictProcName, ast.NewProc([]string{"pairs"}, ast.NewProc([]string{"k"}, lookup))),
	}
}

// (dict (k v) ...) => (dict <alist>), calling the global procedure.
//
// The procedure cannot reject repeated keys, so a literal that has them
// becomes ('(duplicate-key <keys>...)): applying a list fails once the
// literal is reached, before any value is evaluated.
func (runtimeRewriter) dict(d *ast.DictExp) (ast.CExp, error) {
	if dups := duplicateKeys(d); len(dups) > 0 {
		syms := make([]value.Value, 0, len(dups)+1)
		syms = append(syms, value.NewSymbol(DuplicateKeyTag))
		for _, k := range dups {
			syms = append(syms, value.NewSymbol(k))
		}
		return ast.NewApp(ast.NewLit(value.List(syms...))), nil
	}
	return ast.NewApp(&ast.VarRef{Var: DictProcName}, alistExp(d.Entries)), nil
}

// The lowered dictionary is a procedure of the key, so application needs
// no rewrite.
func (runtimeRewriter) app(_ ast.CExp, app *ast.AppExp) ast.CExp { return app }
