package evaluator

import (
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

func parseBody(t *testing.T, src string) []ast.CExp {
	t.Helper()
	exp, err := parser.ParseExpString(src, config.LangL32)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return []ast.CExp{exp.(ast.CExp)}
}

func TestRenameExps(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"free variables kept", "(+ x y)", "(+ x y)"},
		{"lambda params", "(lambda (x) (+ x y))", "(lambda (x__1) (+ x__1 y))"},
		{"nested scopes", "(lambda (x) (lambda (x) x))", "(lambda (x__1) (lambda (x__2) x__2))"},
		{"siblings", "((lambda (a) a) (lambda (a) a))", "((lambda (a__1) a__1) (lambda (a__2) a__2))"},
		{"dict entries", "(lambda (v) (dict (k v)))", "(lambda (v__1) (dict (k v__1)))"},
		{"let", "(let ((a b)) a)", "(let ((a__1 b)) a__1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(StrategySubstitution).RenameExps(parseBody(t, tt.input))
			if got[0].String() != tt.want {
				t.Errorf("RenameExps(%s) = %s, want %s", tt.input, got[0], tt.want)
			}
		})
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"free occurrence", "(+ x 1)", "(+ 5 1)"},
		{"shadowed by lambda", "(lambda (x) x)", "(lambda (x) x)"},
		{"inside lambda", "(lambda (y) (+ x y))", "(lambda (y) (+ 5 y))"},
		{"inside dict", "(dict (a x))", "(dict (a 5))"},
		{"if", "(if x x 0)", "(if 5 5 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Substitute(parseBody(t, tt.input), []string{"x"}, []ast.CExp{&ast.NumExp{Val: 5}})
			if got[0].String() != tt.want {
				t.Errorf("Substitute(%s) = %s, want %s", tt.input, got[0], tt.want)
			}
		})
	}
}

func TestValueToLitExp(t *testing.T) {
	d, err := value.NewDict([]value.DictEntry{
		{Key: value.NewSymbol("a"), Val: value.NewNumber(1)},
		{Key: value.NewSymbol("b"), Val: value.NewSymbol("s")},
	})
	if err != nil {
		t.Fatal(err)
	}
	closure := &Closure{Params: ast.NewVarDecls("x"), Body: []ast.CExp{&ast.VarRef{Var: "x"}}}

	tests := []struct {
		name string
		val  value.Value
		want string
	}{
		{"number", value.NewNumber(3), "3"},
		{"bool", value.NewBool(true), "#t"},
		{"string", value.NewString("s"), `"s"`},
		{"symbol", value.NewSymbol("s"), "'s"},
		{"list", value.List(value.NewNumber(1)), "'(1)"},
		{"primitive", &value.PrimOp{Op: "+"}, "+"},
		{"closure", closure, "(lambda (x) x)"},
		{"dict", d, "(dict (a 1) (b 's))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValueToLitExp(tt.val).String(); got != tt.want {
				t.Errorf("ValueToLitExp(%s) = %s, want %s", tt.val, got, tt.want)
			}
		})
	}
}
