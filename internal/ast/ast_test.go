package ast

import (
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/value"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		exp  Exp
		want string
	}{
		{"number", &NumExp{Val: 4}, "4"},
		{"string", &StrExp{Val: "hi"}, `"hi"`},
		{"bool", &BoolExp{Val: false}, "#f"},
		{"if", &IfExp{Test: &BoolExp{Val: true}, Then: &NumExp{Val: 1}, Alt: &NumExp{Val: 2}}, "(if #t 1 2)"},
		{"lambda", NewProc([]string{"x", "y"}, NewApp(&PrimOp{Op: "+"}, &VarRef{Var: "x"}, &VarRef{Var: "y"})), "(lambda (x y) (+ x y))"},
		{"let", &LetExp{
			Bindings: []*Binding{{Var: &VarDecl{Var: "a"}, Val: &NumExp{Val: 1}}},
			Body:     []CExp{&VarRef{Var: "a"}},
		}, "(let ((a 1)) a)"},
		{"quoted symbol", NewSymbolLit("a"), "'a"},
		{"quoted list", NewLit(value.List(value.NewNumber(1), value.NewNumber(2))), "'(1 2)"},
		{"folded dict", NewLit(&value.Dict{Entries: []value.DictEntry{{Key: value.NewSymbol("a"), Val: value.NewNumber(1)}}}), "(dict '((a . 1)))"},
		{"dict", &DictExp{Entries: []*DictEntry{{Key: "a", Val: &NumExp{Val: 1}}, {Key: "b", Val: &StrExp{Val: "x"}}}}, `(dict (a 1) (b "x"))`},
		{"define", NewDefine("d", &NumExp{Val: 3}), "(define d 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.exp.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgramString(t *testing.T) {
	p := &Program{Lang: "L32", Exps: []Exp{
		NewDefine("x", &NumExp{Val: 1}),
		NewApp(&PrimOp{Op: "+"}, &VarRef{Var: "x"}, &NumExp{Val: 2}),
	}}
	if got, want := p.String(), "(L32 (define x 1) (+ x 2))"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIsAtomic(t *testing.T) {
	if !IsAtomic(&VarRef{Var: "x"}) {
		t.Error("VarRef should be atomic")
	}
	if IsAtomic(NewApp(&VarRef{Var: "f"})) {
		t.Error("AppExp should not be atomic")
	}
}
