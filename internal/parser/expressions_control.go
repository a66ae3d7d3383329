package parser

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// (if <test> <then> <alt>)
func (p *Parser) parseIf(form value.Value, args []value.Value) (ast.CExp, error) {
	if len(args) != 3 {
		return nil, parseError("if expects test, then and alt: %s", form)
	}
	parts, err := p.parseCExps(args)
	if err != nil {
		return nil, err
	}
	return &ast.IfExp{Test: parts[0], Then: parts[1], Alt: parts[2]}, nil
}

// (lambda (<var>*) <cexp>+)
func (p *Parser) parseProc(form value.Value, args []value.Value) (ast.CExp, error) {
	if len(args) < 2 {
		return nil, parseError("lambda expects parameters and a body: %s", form)
	}
	params, err := parseParams(args[0])
	if err != nil {
		return nil, err
	}
	names := declNames(params)
	p.Bind(names...)
	body, err := p.parseCExps(args[1:])
	p.unbind(names...)
	if err != nil {
		return nil, err
	}
	return &ast.ProcExp{Args: params, Body: body}, nil
}

// (let ((<var> <cexp>)*) <cexp>+)
func (p *Parser) parseLet(form value.Value, args []value.Value) (ast.CExp, error) {
	if len(args) < 2 {
		return nil, parseError("let expects bindings and a body: %s", form)
	}
	rawBindings, ok := value.ListToSlice(args[0])
	if !ok {
		return nil, parseError("let: malformed bindings: %s", args[0])
	}
	bindings := make([]*ast.Binding, 0, len(rawBindings))
	for _, raw := range rawBindings {
		pair, ok := value.ListToSlice(raw)
		if !ok || len(pair) != 2 {
			return nil, parseError("let: malformed binding: %s", raw)
		}
		name, ok := pair[0].(*value.Symbol)
		if !ok {
			return nil, parseError("let: binding name must be a symbol: %s", pair[0])
		}
		val, err := p.ParseCExp(pair[1])
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, &ast.Binding{Var: &ast.VarDecl{Var: name.Name}, Val: val})
	}
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.Var.Var
	}
	p.Bind(names...)
	body, err := p.parseCExps(args[1:])
	p.unbind(names...)
	if err != nil {
		return nil, err
	}
	return &ast.LetExp{Bindings: bindings, Body: body}, nil
}

func parseParams(datum value.Value) ([]*ast.VarDecl, error) {
	items, ok := value.ListToSlice(datum)
	if !ok {
		return nil, parseError("lambda: malformed parameter list: %s", datum)
	}
	seen := make(map[string]bool, len(items))
	params := make([]*ast.VarDecl, 0, len(items))
	for _, item := range items {
		sym, ok := item.(*value.Symbol)
		if !ok {
			return nil, parseError("lambda: parameter must be a symbol: %s", item)
		}
		if seen[sym.Name] {
			return nil, parseError("lambda: duplicate parameter %q", sym.Name)
		}
		seen[sym.Name] = true
		params = append(params, &ast.VarDecl{Var: sym.Name})
	}
	return params, nil
}

func declNames(decls []*ast.VarDecl) []string {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Var
	}
	return names
}
