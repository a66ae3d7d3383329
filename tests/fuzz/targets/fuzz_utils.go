package targets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

const (
	evalTimeout  = 500 * time.Millisecond
	evalMaxDepth = 2000
)

// outcome is what a run is compared on: the printed value on success, the
// failure kind otherwise.
type outcome struct {
	Value string
	Kind  value.ErrorKind
	Err   error
}

func (o outcome) failed() bool { return o.Err != nil }

func run(prog *ast.Program, strategy evaluator.Strategy) outcome {
	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	e := evaluator.New(strategy)
	e.Context = ctx
	e.MaxDepth = evalMaxDepth
	v, err := e.EvalProgram(prog)
	if err != nil {
		return outcome{Kind: value.KindOf(err), Err: err}
	}
	return outcome{Value: v.String()}
}

// isResourceExhaustionError returns true if the error is caused by resource
// limits rather than a semantic bug.
func isResourceExhaustionError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, value.ErrRecursionLimit)
}

// isDataResult reports whether a printed result can be compared across
// lowering strategies. Procedures and dictionaries, anywhere in the value,
// change representation.
func isDataResult(s string) bool {
	return !strings.Contains(s, "#<")
}

// inspectsDicts reports whether src observes dictionaries through get or
// dict?, which the runtime strategy's procedures do not support.
func inspectsDicts(src string) bool {
	return strings.Contains(src, "(get ") || strings.Contains(src, "(dict? ")
}
