package evaluator

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Closure is a procedure value. Env is nil under substitution, where a
// closure carries only its syntax.
type Closure struct {
	Params []*ast.VarDecl
	Body   []ast.CExp
	Env    *Environment
}

func (c *Closure) Kind() value.Kind { return value.CLOSURE_KIND }
func (c *Closure) String() string   { return "#<procedure>" }

func (c *Closure) ParamNames() []string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Var
	}
	return names
}

// Proc returns the lambda expression the closure was built from.
func (c *Closure) Proc() *ast.ProcExp {
	return &ast.ProcExp{Args: c.Params, Body: c.Body}
}
