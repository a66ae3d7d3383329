package evaluator

import (
	"log/slog"
	"strings"

	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Apply dispatches on the operator's runtime kind.
func (e *Evaluator) Apply(rator value.Value, args []value.Value) (value.Value, error) {
	e.log().Debug("apply",
		slog.String("operator", string(rator.Kind())),
		slog.Int("args", len(args)),
		slog.String("strategy", e.Strategy.String()))

	switch fn := rator.(type) {
	case *value.PrimOp:
		return ApplyPrimitive(fn.Op, args)
	case *Closure:
		return e.applyClosure(fn, args)
	case *value.Dict:
		return applyDict(fn, args)
	default:
		return nil, value.Errorf(value.NotApplicable, "Bad procedure %s", rator)
	}
}

func (e *Evaluator) applyClosure(c *Closure, args []value.Value) (value.Value, error) {
	if len(args) != len(c.Params) {
		return nil, value.Errorf(value.ArityMismatch, "procedure expects %d argument(s), got %d", len(c.Params), len(args))
	}
	names := c.ParamNames()
	if e.Strategy == StrategySubstitution {
		body := Substitute(e.RenameExps(c.Body), names, ValuesToLitExps(args))
		return e.evalBody(body, e.globals)
	}
	return e.evalBody(c.Body, c.Env.ExtendAll(names, args))
}

// A dictionary applied to a symbol looks the key up.
func applyDict(d *value.Dict, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, value.Errorf(value.ArityMismatch, "dict application expects exactly one argument, got %d", len(args))
	}
	key, ok := args[0].(*value.Symbol)
	if !ok {
		return nil, value.Errorf(value.ArityMismatch, "dict application expects a symbol key, got %s", args[0])
	}
	return lookupKey(d, key)
}

func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}
