// Package transpile prints L3 programs as JavaScript.
package transpile

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

var infixOps = map[string]string{
	"+":   "+",
	"-":   "-",
	"*":   "*",
	"/":   "/",
	">":   ">",
	"<":   "<",
	"=":   "===",
	"eq?": "===",
	"and": "&&",
	"or":  "||",
}

var primitiveFuncs = map[string]string{
	"not":      "!",
	"number?":  "((x) => typeof(x) === 'number')",
	"boolean?": "((x) => typeof(x) === 'boolean')",
	"string?":  "((x) => typeof(x) === 'string')",
	"symbol?":  "((x) => (typeof(x) === 'string' && !['true','false'].includes(x)))",
}

type JSPrinter struct {
	buf bytes.Buffer
}

func NewJSPrinter() *JSPrinter {
	return &JSPrinter{}
}

func (p *JSPrinter) String() string {
	return p.buf.String()
}

// ToJS translates a program, a define or an expression.
func ToJS(node interface{}) (string, error) {
	p := NewJSPrinter()
	var err error
	switch n := node.(type) {
	case *ast.Program:
		err = p.printProgram(n)
	case ast.Exp:
		err = p.printExp(n)
	default:
		err = fmt.Errorf("transpile: unsupported node %T", node)
	}
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

func (p *JSPrinter) printProgram(prog *ast.Program) error {
	for i, exp := range prog.Exps {
		if i > 0 {
			p.buf.WriteString(";\n")
		}
		if err := p.printExp(exp); err != nil {
			return err
		}
	}
	return nil
}

func (p *JSPrinter) printExp(exp ast.Exp) error {
	if def, ok := exp.(*ast.DefineExp); ok {
		p.buf.WriteString("const ")
		p.buf.WriteString(def.Var.Var)
		p.buf.WriteString(" = ")
		return p.printCExp(def.Val)
	}
	cexp, ok := exp.(ast.CExp)
	if !ok {
		return fmt.Errorf("transpile: unsupported statement %s", exp)
	}
	return p.printCExp(cexp)
}

func (p *JSPrinter) printCExp(exp ast.CExp) error {
	switch exp := exp.(type) {
	case *ast.NumExp:
		p.buf.WriteString(value.FormatNumber(exp.Val))
	case *ast.BoolExp:
		p.buf.WriteString(strconv.FormatBool(exp.Val))
	case *ast.StrExp:
		p.buf.WriteString(strconv.Quote(exp.Val))
	case *ast.VarRef:
		p.buf.WriteString(exp.Var)
	case *ast.PrimOp:
		js, err := primOpJS(exp.Op)
		if err != nil {
			return err
		}
		p.buf.WriteString(js)
	case *ast.IfExp:
		return p.printIf(exp)
	case *ast.AppExp:
		return p.printApp(exp)
	case *ast.ProcExp:
		return p.printProc(exp)
	case *ast.LetExp:
		return p.printLet(exp)
	case *ast.LitExp:
		return p.printLit(exp.Val)
	case *ast.DictExp:
		return fmt.Errorf("transpile: dictionaries are not supported in JS, lower the program first")
	default:
		return fmt.Errorf("transpile: unknown expression %s", exp)
	}
	return nil
}

func primOpJS(op string) (string, error) {
	if js, ok := infixOps[op]; ok {
		return js, nil
	}
	if js, ok := primitiveFuncs[op]; ok {
		return js, nil
	}
	return "", fmt.Errorf("transpile: unknown L3 primitive operator: %s", op)
}

func (p *JSPrinter) printIf(exp *ast.IfExp) error {
	p.buf.WriteByte('(')
	if err := p.printCExp(exp.Test); err != nil {
		return err
	}
	p.buf.WriteString(" ? ")
	if err := p.printCExp(exp.Then); err != nil {
		return err
	}
	p.buf.WriteString(" : ")
	if err := p.printCExp(exp.Alt); err != nil {
		return err
	}
	p.buf.WriteByte(')')
	return nil
}

func (p *JSPrinter) printApp(exp *ast.AppExp) error {
	args, err := render(exp.Rands)
	if err != nil {
		return err
	}
	if op, ok := exp.Rator.(*ast.PrimOp); ok {
		if js, ok := infixOps[op.Op]; ok {
			p.buf.WriteString("(" + strings.Join(args, " "+js+" ") + ")")
			return nil
		}
		if op.Op == "not" && len(args) == 1 {
			p.buf.WriteString("(!" + args[0] + ")")
			return nil
		}
	}
	if err := p.printCExp(exp.Rator); err != nil {
		return err
	}
	p.buf.WriteString("(" + strings.Join(args, ",") + ")")
	return nil
}

func (p *JSPrinter) printProc(exp *ast.ProcExp) error {
	params := make([]string, len(exp.Args))
	for i, a := range exp.Args {
		params[i] = a.Var
	}
	body, err := render(exp.Body)
	if err != nil {
		return err
	}
	p.buf.WriteString("((" + strings.Join(params, ",") + ") => ")
	if len(body) == 1 {
		p.buf.WriteString(body[0] + ")")
		return nil
	}
	last := len(body) - 1
	p.buf.WriteString("{ " + strings.Join(body[:last], "; ") + "; return " + body[last] + "; })")
	return nil
}

// let becomes an immediately invoked arrow function.
func (p *JSPrinter) printLet(exp *ast.LetExp) error {
	p.buf.WriteString("(() => {")
	for _, b := range exp.Bindings {
		val, err := renderOne(b.Val)
		if err != nil {
			return err
		}
		p.buf.WriteString(" const " + b.Var.Var + " = " + val + ";")
	}
	body, err := render(exp.Body)
	if err != nil {
		return err
	}
	p.buf.WriteString(" return " + strings.Join(body, "; ") + "; })()")
	return nil
}

func (p *JSPrinter) printLit(v value.Value) error {
	switch v := v.(type) {
	case *value.Number:
		p.buf.WriteString(value.FormatNumber(v.Value))
	case *value.Bool:
		p.buf.WriteString(strconv.FormatBool(v.Value))
	case *value.String:
		p.buf.WriteString(strconv.Quote(v.Value))
	case *value.Symbol:
		p.buf.WriteString(strconv.Quote(v.Name))
	case *value.Empty:
		p.buf.WriteString("[]")
	case *value.PrimOp:
		js, err := primOpJS(v.Op)
		if err != nil {
			return err
		}
		p.buf.WriteString(js)
	default:
		return fmt.Errorf("transpile: compound literal %s not supported in JS", v)
	}
	return nil
}

func renderOne(exp ast.CExp) (string, error) {
	p := NewJSPrinter()
	if err := p.printCExp(exp); err != nil {
		return "", err
	}
	return p.String(), nil
}

func render(exps []ast.CExp) ([]string, error) {
	out := make([]string, len(exps))
	for i, exp := range exps {
		s, err := renderOne(exp)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
