package parser

import (
	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/reader"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Parser turns reader datums into expression trees for one dialect.
type Parser struct {
	lang string
	// scope counts the visible bindings of each name. A bound name is a
	// variable even when a primitive has the same name.
	scope map[string]int
}

func New(lang string) *Parser {
	return &Parser{lang: lang, scope: make(map[string]int)}
}

// Bind marks names as defined for every statement parsed after this call.
func (p *Parser) Bind(names ...string) {
	for _, name := range names {
		p.scope[name]++
	}
}

func (p *Parser) unbind(names ...string) {
	for _, name := range names {
		if p.scope[name]--; p.scope[name] <= 0 {
			delete(p.scope, name)
		}
	}
}

func (p *Parser) bound(name string) bool {
	return p.scope[name] > 0
}

// ParseProgram reads and parses a whole (L3 ...) or (L32 ...) program.
func ParseProgram(src string) (*ast.Program, error) {
	datum, err := reader.ReadOne(src)
	if err != nil {
		return nil, value.Errorf(value.ParseError, "parse: %v", err)
	}
	return ParseProgramDatum(datum)
}

// ParseProgramDatum parses a program that has already been read.
func ParseProgramDatum(datum value.Value) (*ast.Program, error) {
	return parseProgramDatum(datum, nil)
}

// ParseProgramDatum parses a program whose statements follow the ones p
// has already seen: names p has bound stay bound, and the program's
// definitions are bound in p afterwards.
func (p *Parser) ParseProgramDatum(datum value.Value) (*ast.Program, error) {
	prog, err := parseProgramDatum(datum, p.scope)
	if err != nil {
		return nil, err
	}
	for _, exp := range prog.Exps {
		if def, ok := exp.(*ast.DefineExp); ok {
			p.Bind(def.Var.Var)
		}
	}
	return prog, nil
}

func parseProgramDatum(datum value.Value, scope map[string]int) (*ast.Program, error) {
	items, ok := value.ListToSlice(datum)
	if !ok || len(items) == 0 {
		return nil, parseError("program must be a list: %s", datum)
	}
	tag, ok := items[0].(*value.Symbol)
	if !ok || (tag.Name != config.LangL3 && tag.Name != config.LangL32) {
		return nil, parseError("program must start with %s or %s: %s", config.LangL3, config.LangL32, datum)
	}
	p := New(tag.Name)
	for name, n := range scope {
		p.scope[name] = n
	}
	exps := make([]ast.Exp, 0, len(items)-1)
	for _, item := range items[1:] {
		exp, err := p.ParseExp(item)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	return &ast.Program{Lang: tag.Name, Exps: exps}, nil
}

// ParseExpString reads src as a single statement in the given dialect.
func ParseExpString(src, lang string) (ast.Exp, error) {
	datum, err := reader.ReadOne(src)
	if err != nil {
		return nil, value.Errorf(value.ParseError, "parse: %v", err)
	}
	return New(lang).ParseExp(datum)
}

func (p *Parser) dictSyntax() bool {
	return p.lang == config.LangL32
}

func parseError(format string, a ...interface{}) *value.Error {
	return value.Errorf(value.ParseError, format, a...)
}
