package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/reader"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

func TestParseProgram(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "(L32)", "(L32)"},
		{"define and app", "(L32 (define x 1) (+ x 2))", "(L32 (define x 1) (+ x 2))"},
		{"lambda", "(L3 (lambda (x y) (* x y)))", "(L3 (lambda (x y) (* x y)))"},
		{"if", "(L3 (if #t 1 2))", "(L3 (if #t 1 2))"},
		{"quote", "(L3 '(1 2) (quote a))", "(L3 '(1 2) 'a)"},
		{"let", "(L3 (let ((a 1) (b 2)) (+ a b)))", "(L3 (let ((a 1) (b 2)) (+ a b)))"},
		{"dict", `(L32 (dict (a 1) (b "x") (c (+ 1 2))))`, `(L32 (dict (a 1) (b "x") (c (+ 1 2))))`},
		{"dict application", "(L32 ((dict (a 1)) 'a))", "(L32 ((dict (a 1)) 'a))"},
		{"nested dict", "(L32 (dict (a (dict (b 2)))))", "(L32 (dict (a (dict (b 2)))))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseProgram(tt.input)
			if err != nil {
				t.Fatalf("ParseProgram(%q) unexpected error: %v", tt.input, err)
			}
			if got := prog.String(); got != tt.want {
				t.Errorf("ParseProgram(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseNodeTypes(t *testing.T) {
	prog, err := ParseProgram("(L32 (define f (lambda (k) (get d k))) (dict (a 1)) x)")
	if err != nil {
		t.Fatal(err)
	}
	def, ok := prog.Exps[0].(*ast.DefineExp)
	if !ok {
		t.Fatalf("Exps[0] = %T, want *ast.DefineExp", prog.Exps[0])
	}
	proc, ok := def.Val.(*ast.ProcExp)
	if !ok {
		t.Fatalf("define value = %T, want *ast.ProcExp", def.Val)
	}
	app := proc.Body[0].(*ast.AppExp)
	if op, ok := app.Rator.(*ast.PrimOp); !ok || op.Op != "get" {
		t.Errorf("rator = %#v, want PrimOp get", app.Rator)
	}
	if _, ok := app.Rands[0].(*ast.VarRef); !ok {
		t.Errorf("rand = %T, want *ast.VarRef", app.Rands[0])
	}
	if _, ok := prog.Exps[1].(*ast.DictExp); !ok {
		t.Errorf("Exps[1] = %T, want *ast.DictExp", prog.Exps[1])
	}
	if _, ok := prog.Exps[2].(*ast.VarRef); !ok {
		t.Errorf("Exps[2] = %T, want *ast.VarRef", prog.Exps[2])
	}
}

func TestDictIsPlainAppInL3(t *testing.T) {
	prog, err := ParseProgram("(L3 (dict '((a . 1))))")
	if err != nil {
		t.Fatal(err)
	}
	app, ok := prog.Exps[0].(*ast.AppExp)
	if !ok {
		t.Fatalf("Exps[0] = %T, want *ast.AppExp", prog.Exps[0])
	}
	if op, ok := app.Rator.(*ast.PrimOp); !ok || op.Op != "dict" {
		t.Errorf("rator = %#v, want PrimOp dict", app.Rator)
	}
}

func TestBoundNamesShadowPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		input string
		// stmt is the statement checked; inLambda looks at the first
		// expression of its lambda body instead.
		stmt     int
		inLambda bool
		wantVar  bool
	}{
		{"primitive", "(L3 (dict '((a . 1))))", 0, false, false},
		{"defined global", "(L3 (define dict (lambda (p) p)) (dict 1))", 1, false, true},
		{"recursive define", "(L3 (define car (lambda (p) (car p))))", 0, true, true},
		{"lambda parameter", "(L3 (lambda (car) (car 1)))", 0, true, true},
		{"let binding", "(L3 (let ((get 1)) (get 2)))", 0, false, true},
		{"scope ends with lambda", "(L3 (lambda (car) car) (car '(1)))", 1, false, false},
		{"later statement only", "(L3 (get '((a . 1)) 'a) (define get 1))", 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ParseProgram(tt.input)
			if err != nil {
				t.Fatalf("ParseProgram(%q) unexpected error: %v", tt.input, err)
			}
			var exp ast.Exp = prog.Exps[tt.stmt]
			if def, ok := exp.(*ast.DefineExp); ok {
				exp = def.Val
			}
			if proc, ok := exp.(*ast.ProcExp); ok && tt.inLambda {
				exp = proc.Body[0]
			}
			if let, ok := exp.(*ast.LetExp); ok {
				exp = let.Body[0]
			}
			app, ok := exp.(*ast.AppExp)
			if !ok {
				t.Fatalf("statement %d = %T, want *ast.AppExp", tt.stmt, exp)
			}
			_, isVar := app.Rator.(*ast.VarRef)
			if isVar != tt.wantVar {
				t.Errorf("rator = %T, want VarRef %v", app.Rator, tt.wantVar)
			}
		})
	}
}

func TestParserKeepsBindingsAcrossStatements(t *testing.T) {
	p := New("L32")
	datums, err := reader.Read("(define list (lambda (x) x)) (list 1 2)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.ParseExp(datums[0]); err != nil {
		t.Fatal(err)
	}
	exp, err := p.ParseExp(datums[1])
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := exp.(*ast.AppExp).Rator.(*ast.VarRef); !ok {
		t.Errorf("rator = %T, want *ast.VarRef", exp.(*ast.AppExp).Rator)
	}

	fresh, err := New("L32").ParseExp(datums[1])
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fresh.(*ast.AppExp).Rator.(*ast.PrimOp); !ok {
		t.Errorf("fresh parser rator = %T, want *ast.PrimOp", fresh.(*ast.AppExp).Rator)
	}
}

func TestDuplicateKeysParse(t *testing.T) {
	if _, err := ParseProgram("(L32 (dict (a 1) (a 2)))"); err != nil {
		t.Errorf("duplicate keys should be rejected at evaluation, got parse error %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty dict", "(L32 (dict))", "Empty args for special form"},
		{"entry without value", "(L32 (dict (a) (b 2)))", "entry must be (key value)"},
		{"numeric key", "(L32 (dict (1 2)))", "key must be an identifier"},
		{"bare entry", "(L32 (dict a))", "entry must be (key value)"},
		{"nested define", "(L3 (lambda () (define x 1)))", "only allowed at top level"},
		{"empty form", "(L3 ())", "empty form"},
		{"bad tag", "(L4 1)", "must start with"},
		{"not a list", "42", "must be a list"},
		{"if arity", "(L3 (if 1 2))", "if expects"},
		{"lambda without body", "(L3 (lambda (x)))", "lambda expects"},
		{"lambda bad param", "(L3 (lambda (1) 1))", "parameter must be a symbol"},
		{"define arity", "(L3 (define x))", "define expects"},
		{"quote arity", "(L3 (quote a b))", "quote expects"},
		{"unbalanced", "(L3 (+ 1 2)", "parse:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProgram(tt.input)
			if err == nil {
				t.Fatalf("ParseProgram(%q) expected error", tt.input)
			}
			if !errors.Is(err, value.ErrParse) {
				t.Errorf("error kind = %q, want ParseError", value.KindOf(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParserProcessor(t *testing.T) {
	datums, err := reader.Read("(L32 (+ 1 2))")
	if err != nil {
		t.Fatal(err)
	}
	ctx := pipeline.NewPipelineContext("(L32 (+ 1 2))")
	ctx.Datums = datums
	ctx = (&ParserProcessor{}).Process(ctx)
	if ctx.Failed() {
		t.Fatalf("unexpected error: %v", ctx.Err())
	}
	if got := ctx.AstRoot.String(); got != "(L32 (+ 1 2))" {
		t.Errorf("AstRoot = %s", got)
	}

	ctx = pipeline.NewPipelineContext("")
	ctx = (&ParserProcessor{}).Process(ctx)
	if !ctx.Failed() {
		t.Error("expected an error for input with no forms")
	}
}
