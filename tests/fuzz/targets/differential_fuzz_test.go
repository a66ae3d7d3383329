package targets

import (
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/lower"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/tests/fuzz/generators"
)

func generatorProgram(data []byte) string {
	return generators.NewFromData(data).GenerateProgram()
}

// FuzzDifferential compares the environment and substitution evaluators.
// Generated programs never use eq?, so the two must agree exactly.
func FuzzDifferential(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{3, 4, 5, 6, 7, 8, 9, 10, 11})
	f.Add([]byte{4, 4, 4, 1, 0, 2, 7, 5, 5})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1000 {
			return
		}
		input := generatorProgram(data)
		prog, err := parser.ParseProgram(input)
		if err != nil {
			return
		}

		env := run(prog, evaluator.StrategyEnvironment)
		subst := run(prog, evaluator.StrategySubstitution)
		if isResourceExhaustionError(env.Err) || isResourceExhaustionError(subst.Err) {
			return
		}

		if env.failed() != subst.failed() || env.Value != subst.Value || env.Kind != subst.Kind {
			t.Fatalf("backends disagree on\n%s\nenvironment:  %q %s (%v)\nsubstitution: %q %s (%v)",
				input, env.Value, env.Kind, env.Err, subst.Value, subst.Kind, subst.Err)
		}
	})
}

// FuzzLowering checks that every lowering strategy preserves the data
// result of a program that evaluates successfully.
func FuzzLowering(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{2, 5, 1, 6, 6, 0, 3, 7, 1})
	f.Add([]byte{1, 7, 0, 1, 2, 3, 4, 5, 6, 7})

	strategies := []lower.Strategy{lower.Literal, lower.Application, lower.Runtime}

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1000 {
			return
		}
		input := generatorProgram(data)
		prog, err := parser.ParseProgram(input)
		if err != nil {
			return
		}

		want := run(prog, evaluator.StrategyEnvironment)
		if want.failed() || !isDataResult(want.Value) {
			return
		}

		for _, s := range strategies {
			if s == lower.Runtime && inspectsDicts(input) {
				continue
			}
			lowered, err := lower.Lower(prog, s)
			if err != nil {
				t.Fatalf("%s: Lower failed on a program that evaluates:\n%s\nerror: %v", s, input, err)
			}
			for _, es := range []evaluator.Strategy{evaluator.StrategyEnvironment, evaluator.StrategySubstitution} {
				got := run(lowered, es)
				if isResourceExhaustionError(got.Err) {
					continue
				}
				if got.failed() || got.Value != want.Value {
					t.Fatalf("%s/%s changed the result of\n%s\nlowered: %s\ngot %q (%v), want %q",
						s, es, input, lowered, got.Value, got.Err, want.Value)
				}
			}
		}
	})
}
