package ast

import (
	"strconv"
	"strings"

	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Exp is any node that may appear in a program body.
type Exp interface {
	expNode()
	String() string
}

// CExp is an expression that may appear in a nested position. Everything
// except DefineExp is a CExp.
type CExp interface {
	Exp
	cexpNode()
}

// Program is the root node: (L32 <exp>*).
type Program struct {
	Lang string
	Exps []Exp
}

func (p *Program) String() string {
	parts := make([]string, 0, len(p.Exps)+1)
	parts = append(parts, p.Lang)
	for _, e := range p.Exps {
		parts = append(parts, e.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Atomic expressions

type NumExp struct {
	Val float64
}

type BoolExp struct {
	Val bool
}

type StrExp struct {
	Val string
}

// PrimOp references a built-in operator by name.
type PrimOp struct {
	Op string
}

type VarRef struct {
	Var string
}

// VarDecl is a binding occurrence (lambda parameter, let or define name).
type VarDecl struct {
	Var string
}

func (e *NumExp) expNode()  {}
func (e *NumExp) cexpNode() {}
func (e *NumExp) String() string {
	return value.FormatNumber(e.Val)
}

func (e *BoolExp) expNode()  {}
func (e *BoolExp) cexpNode() {}
func (e *BoolExp) String() string {
	if e.Val {
		return "#t"
	}
	return "#f"
}

func (e *StrExp) expNode()       {}
func (e *StrExp) cexpNode()      {}
func (e *StrExp) String() string { return strconv.Quote(e.Val) }

func (e *PrimOp) expNode()       {}
func (e *PrimOp) cexpNode()      {}
func (e *PrimOp) String() string { return e.Op }

func (e *VarRef) expNode()       {}
func (e *VarRef) cexpNode()      {}
func (e *VarRef) String() string { return e.Var }

func (d *VarDecl) String() string { return d.Var }

// Compound expressions

type IfExp struct {
	Test CExp
	Then CExp
	Alt  CExp
}

type ProcExp struct {
	Args []*VarDecl
	Body []CExp
}

type AppExp struct {
	Rator CExp
	Rands []CExp
}

type Binding struct {
	Var *VarDecl
	Val CExp
}

type LetExp struct {
	Bindings []*Binding
	Body     []CExp
}

// LitExp is a quoted datum. The datum is normally an S-expression, but the
// evaluator also wraps arbitrary runtime values in it when substituting.
type LitExp struct {
	Val value.Value
}

type DictEntry struct {
	Key string
	Val CExp
}

type DictExp struct {
	Entries []*DictEntry
}

type DefineExp struct {
	Var *VarDecl
	Val CExp
}

func (e *IfExp) expNode()  {}
func (e *IfExp) cexpNode() {}
func (e *IfExp) String() string {
	return "(if " + e.Test.String() + " " + e.Then.String() + " " + e.Alt.String() + ")"
}

func (e *ProcExp) expNode()  {}
func (e *ProcExp) cexpNode() {}
func (e *ProcExp) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.Var
	}
	return "(lambda (" + strings.Join(args, " ") + ")" + joinBody(e.Body) + ")"
}

func (e *AppExp) expNode()  {}
func (e *AppExp) cexpNode() {}
func (e *AppExp) String() string {
	parts := make([]string, 0, len(e.Rands)+1)
	parts = append(parts, e.Rator.String())
	for _, r := range e.Rands {
		parts = append(parts, r.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (e *LetExp) expNode()  {}
func (e *LetExp) cexpNode() {}
func (e *LetExp) String() string {
	bindings := make([]string, len(e.Bindings))
	for i, b := range e.Bindings {
		bindings[i] = "(" + b.Var.Var + " " + b.Val.String() + ")"
	}
	return "(let (" + strings.Join(bindings, " ") + ")" + joinBody(e.Body) + ")"
}

func (e *LitExp) expNode()  {}
func (e *LitExp) cexpNode() {}
func (e *LitExp) String() string {
	switch v := e.Val.(type) {
	case *value.Number, *value.Bool, *value.String:
		return e.Val.String()
	case *value.Dict:
		// a folded dictionary reads back through the dict primitive
		return "(dict '" + v.ToAlist().String() + ")"
	}
	return "'" + e.Val.String()
}

func (e *DictExp) expNode()  {}
func (e *DictExp) cexpNode() {}
func (e *DictExp) String() string {
	var out strings.Builder
	out.WriteString("(dict")
	for _, entry := range e.Entries {
		out.WriteString(" (")
		out.WriteString(entry.Key)
		out.WriteByte(' ')
		out.WriteString(entry.Val.String())
		out.WriteByte(')')
	}
	out.WriteByte(')')
	return out.String()
}

// Keys returns the declared keys in order.
func (e *DictExp) Keys() []string {
	keys := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		keys[i] = entry.Key
	}
	return keys
}

func (e *DefineExp) expNode() {}
func (e *DefineExp) String() string {
	return "(define " + e.Var.Var + " " + e.Val.String() + ")"
}

func joinBody(body []CExp) string {
	var out strings.Builder
	for _, b := range body {
		out.WriteByte(' ')
		out.WriteString(b.String())
	}
	return out.String()
}

// IsAtomic reports whether e is a leaf node.
func IsAtomic(e Exp) bool {
	switch e.(type) {
	case *NumExp, *BoolExp, *StrExp, *PrimOp, *VarRef:
		return true
	}
	return false
}

// Constructors used by the rewriting passes.

func NewVarDecls(names ...string) []*VarDecl {
	decls := make([]*VarDecl, len(names))
	for i, n := range names {
		decls[i] = &VarDecl{Var: n}
	}
	return decls
}

func NewApp(rator CExp, rands ...CExp) *AppExp {
	return &AppExp{Rator: rator, Rands: rands}
}

func NewProc(args []string, body ...CExp) *ProcExp {
	return &ProcExp{Args: NewVarDecls(args...), Body: body}
}

func NewDefine(name string, val CExp) *DefineExp {
	return &DefineExp{Var: &VarDecl{Var: name}, Val: val}
}

func NewLit(v value.Value) *LitExp {
	return &LitExp{Val: v}
}

func NewSymbolLit(name string) *LitExp {
	return &LitExp{Val: value.NewSymbol(name)}
}
