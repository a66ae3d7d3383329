package lower

import (
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Lowered programs must fail exactly when the original fails and
// otherwise produce an equal value.
func TestRoundTrip(t *testing.T) {
	programs := []struct {
		name string
		src  string
		// dictResult marks programs whose value is a dictionary; the
		// runtime strategy represents those as procedures.
		dictResult bool
		// sharesDict marks programs that compare dictionaries with eq?.
		// Literal lowering builds one dictionary value per literal, so
		// every evaluation of that literal yields the same dictionary.
		sharesDict bool
	}{
		{"lookup", "(L32 ((dict (a 1) (b 2)) 'a))", false, false},
		{"missing key", "(L32 ((dict (a 1) (b 2)) 'c))", false, false},
		{"duplicate keys", "(L32 (dict (a 1) (a 2)))", false, false},
		{"duplicate keys with failing value", "(L32 (dict (a 1) (a (car 1))))", false, false},
		{"duplicate keys never reached", "(L32 (if #t 1 (dict (a 1) (a 2))))", false, false},
		{"duplicate keys in unused procedure", "(L32 (define f (lambda () (dict (a 1) (a 2)))) 3)", false, false},
		{"duplicate keys in called procedure", "(L32 (define f (lambda () (dict (a 1) (a 2)))) (f))", false, false},
		{"computed values", "(L32 (define x 3) ((dict (a (+ x 1)) (b x)) 'a))", false, false},
		{"through identity", "(L32 (define id (lambda (x) x)) ((id (dict (foo 5))) 'foo))", false, false},
		{"nested", "(L32 (((dict (a (dict (b 7)))) 'a) 'b))", false, false},
		{"if operator", "(L32 ((if (> 2 1) (dict (a 1)) (dict (a 2))) 'a))", false, false},
		{"procedure value", "(L32 (((dict (f (lambda (x) (* x 2)))) 'f) 21))", false, false},
		{"list value", "(L32 (define d (dict (k '(1 2)))) (car (d 'k)))", false, false},
		{"dict argument", "(L32 ((lambda (d) (d 'b)) (dict (a 1) (b #t))))", false, false},
		{"dict from procedure", "(L32 (define pick (lambda (c) (if c (dict (v 1)) (dict (v 2))))) ((pick #f) 'v))", false, false},
		{"primitive value", "(L32 ((dict (a +)) 'a))", false, false},
		{"symbol value", "(L32 ((dict (a 'x)) 'a))", false, false},
		{"non-symbol key", "(L32 ((dict (a 1)) 1))", false, false},
		{"no dictionaries", "(L32 (define sq (lambda (n) (* n n))) (sq 7))", false, false},
		{"dict result", `(L32 (dict (a 1) (b "x")))`, true, false},
		{"computed dict result", "(L32 (define x 2) (dict (a x)))", true, false},
		{"fresh dict per call", "(L32 (define f (lambda () (dict (a 1)))) (eq? (f) (f)))", false, true},
	}

	strategies := []Strategy{Literal, Application, Runtime}
	evalStrategies := []evaluator.Strategy{evaluator.StrategyEnvironment, evaluator.StrategySubstitution}

	for _, p := range programs {
		for _, s := range strategies {
			if s == Runtime && p.dictResult || s == Literal && p.sharesDict {
				continue
			}
			for _, es := range evalStrategies {
				t.Run(p.name+"/"+s.String()+"/"+es.String(), func(t *testing.T) {
					prog, err := parser.ParseProgram(p.src)
					if err != nil {
						t.Fatalf("parse: %v", err)
					}
					want, wantErr := evaluator.New(es).EvalProgram(prog)

					lowered, err := Lower(prog, s)
					if err != nil {
						if wantErr == nil {
							t.Fatalf("Lower failed (%v) but direct evaluation gave %s", err, want)
						}
						return
					}
					got, gotErr := evaluator.New(es).EvalProgram(lowered)

					switch {
					case wantErr != nil && gotErr == nil:
						t.Errorf("direct failed (%v), lowered %s gave %s", wantErr, lowered, got)
					case wantErr == nil && gotErr != nil:
						t.Errorf("direct gave %s, lowered %s failed: %v", want, lowered, gotErr)
					case wantErr == nil && !sameResult(want, got):
						t.Errorf("direct = %s, lowered %s = %s", want, lowered, got)
					}
				})
			}
		}
	}
}

// Procedures have no structural equality; any two are accepted.
func sameResult(a, b value.Value) bool {
	if a.Kind() == value.CLOSURE_KIND && b.Kind() == value.CLOSURE_KIND {
		return true
	}
	return value.Equal(a, b)
}

func TestLiteralSharesDictionaryValue(t *testing.T) {
	prog, err := parser.ParseProgram("(L32 (define f (lambda () (dict (a 1)))) (eq? (f) (f)))")
	if err != nil {
		t.Fatal(err)
	}
	direct, err := evaluator.New(evaluator.StrategyEnvironment).EvalProgram(prog)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(direct, value.NewBool(false)) {
		t.Errorf("direct = %s, want #f", direct)
	}
	lowered, err := Lower(prog, Literal)
	if err != nil {
		t.Fatal(err)
	}
	got, err := evaluator.New(evaluator.StrategyEnvironment).EvalProgram(lowered)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, value.NewBool(true)) {
		t.Errorf("lowered %s = %s, want #t", lowered, got)
	}
}
