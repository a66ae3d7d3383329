package parser

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// ParseExp parses a top-level statement: a define or any expression.
func (p *Parser) ParseExp(datum value.Value) (ast.Exp, error) {
	if head, _, ok := splitForm(datum); ok && head == config.DefineKeyword {
		return p.parseDefine(datum)
	}
	return p.ParseCExp(datum)
}

// (define <var> <cexp>)
func (p *Parser) parseDefine(datum value.Value) (*ast.DefineExp, error) {
	_, args, _ := splitForm(datum)
	if len(args) != 2 {
		return nil, parseError("define expects a name and a value: %s", datum)
	}
	name, ok := args[0].(*value.Symbol)
	if !ok {
		return nil, parseError("define: name must be a symbol: %s", args[0])
	}
	if isReserved(name.Name) {
		return nil, parseError("define: cannot bind reserved name %q", name.Name)
	}
	// Bound before the value is parsed so recursive references resolve
	// to the new global.
	p.Bind(name.Name)
	val, err := p.ParseCExp(args[1])
	if err != nil {
		p.unbind(name.Name)
		return nil, err
	}
	return ast.NewDefine(name.Name, val), nil
}

func isReserved(name string) bool {
	switch name {
	case config.DefineKeyword, config.IfKeyword, config.LambdaKeyword, config.LetKeyword, config.QuoteKeyword:
		return true
	}
	return false
}
