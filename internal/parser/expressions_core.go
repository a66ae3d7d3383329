package parser

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// ParseCExp parses an expression in nested position; define is rejected here.
func (p *Parser) ParseCExp(datum value.Value) (ast.CExp, error) {
	switch d := datum.(type) {
	case *value.Number:
		return &ast.NumExp{Val: d.Value}, nil
	case *value.Bool:
		return &ast.BoolExp{Val: d.Value}, nil
	case *value.String:
		return &ast.StrExp{Val: d.Value}, nil
	case *value.Symbol:
		return p.parseSymbol(d.Name), nil
	case *value.Empty:
		return nil, parseError("unexpected empty form ()")
	case *value.Pair:
		return p.parseCompound(d)
	default:
		return nil, parseError("unexpected datum: %s", datum)
	}
}

// parseSymbol resolves a name to a primitive unless a define or lambda in
// scope binds it.
func (p *Parser) parseSymbol(name string) ast.CExp {
	if config.IsPrimitiveName(name) && !p.bound(name) {
		return &ast.PrimOp{Op: name}
	}
	return &ast.VarRef{Var: name}
}

func (p *Parser) parseCompound(form *value.Pair) (ast.CExp, error) {
	head, args, ok := splitForm(form)
	if !ok {
		return nil, parseError("improper list in expression position: %s", form)
	}
	switch head {
	case config.DefineKeyword:
		return nil, parseError("define is only allowed at top level: %s", form)
	case config.IfKeyword:
		return p.parseIf(form, args)
	case config.LambdaKeyword:
		return p.parseProc(form, args)
	case config.LetKeyword:
		return p.parseLet(form, args)
	case config.QuoteKeyword:
		return parseLit(form, args)
	case config.DictKeyword:
		if p.dictSyntax() {
			return p.parseDict(args)
		}
	}
	return p.parseApp(form)
}

func (p *Parser) parseApp(form *value.Pair) (ast.CExp, error) {
	items, _ := value.ListToSlice(form)
	rator, err := p.ParseCExp(items[0])
	if err != nil {
		return nil, err
	}
	rands, err := p.parseCExps(items[1:])
	if err != nil {
		return nil, err
	}
	return &ast.AppExp{Rator: rator, Rands: rands}, nil
}

func (p *Parser) parseCExps(datums []value.Value) ([]ast.CExp, error) {
	out := make([]ast.CExp, 0, len(datums))
	for _, d := range datums {
		e, err := p.ParseCExp(d)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// splitForm returns the head symbol name and argument datums of a proper
// list. head is "" when the first element is not a symbol.
func splitForm(datum value.Value) (head string, args []value.Value, ok bool) {
	items, proper := value.ListToSlice(datum)
	if !proper || len(items) == 0 {
		return "", nil, false
	}
	if sym, isSym := items[0].(*value.Symbol); isSym {
		head = sym.Name
	}
	return head, items[1:], true
}
