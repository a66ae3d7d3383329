package lower

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
)

type applicationRewriter struct{}

func (applicationRewriter) prelude() []ast.Exp { return nil }

// (dict (k v) ...) => (dict <alist>)
func (applicationRewriter) dict(d *ast.DictExp) (ast.CExp, error) {
	return ast.NewApp(&ast.PrimOp{Op: config.DictOpName}, alistExp(d.Entries)), nil
}

// (<dict-exp> k) => (get <lowered> k)
func (applicationRewriter) app(orig ast.CExp, app *ast.AppExp) ast.CExp {
	if !yieldsDict(orig) {
		return app
	}
	rands := append([]ast.CExp{app.Rator}, app.Rands...)
	return ast.NewApp(&ast.PrimOp{Op: config.GetOpName}, rands...)
}

// yieldsDict reports whether exp is a dictionary literal, or an if whose
// every branch is one.
func yieldsDict(exp ast.CExp) bool {
	switch exp := exp.(type) {
	case *ast.DictExp:
		return true
	case *ast.IfExp:
		return yieldsDict(exp.Then) && yieldsDict(exp.Alt)
	}
	return false
}
