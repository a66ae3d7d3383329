package parser

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// (quote <datum>)
func parseLit(form value.Value, args []value.Value) (ast.CExp, error) {
	if len(args) != 1 {
		return nil, parseError("quote expects exactly one datum: %s", form)
	}
	return &ast.LitExp{Val: args[0]}, nil
}

// (dict (<symbol> <cexp>)+)
//
// Duplicate keys are not rejected here: a dictionary literal with repeated
// keys is well-formed syntax and fails when evaluated.
func (p *Parser) parseDict(args []value.Value) (ast.CExp, error) {
	if len(args) == 0 {
		return nil, parseError("Empty args for special form")
	}
	entries := make([]*ast.DictEntry, 0, len(args))
	for _, arg := range args {
		items, ok := value.ListToSlice(arg)
		if !ok || len(items) != 2 {
			return nil, parseError("dict: entry must be (key value): %s", arg)
		}
		key, ok := items[0].(*value.Symbol)
		if !ok {
			return nil, parseError("dict: key must be an identifier: %s", items[0])
		}
		val, err := p.ParseCExp(items[1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, &ast.DictEntry{Key: key.Name, Val: val})
	}
	return &ast.DictExp{Entries: entries}, nil
}
