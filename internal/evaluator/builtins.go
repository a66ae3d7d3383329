package evaluator

import (
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

type BuiltinFunction func(args ...value.Value) (value.Value, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

// Builtins is the primitive library keyed by operator name. Most entries
// read only the positions they need and ignore extra arguments.
var Builtins = map[string]*Builtin{
	config.AddOpName:      {Name: config.AddOpName, Fn: builtinAdd},
	config.SubOpName:      {Name: config.SubOpName, Fn: builtinSub},
	config.MulOpName:      {Name: config.MulOpName, Fn: builtinMul},
	config.DivOpName:      {Name: config.DivOpName, Fn: builtinDiv},
	config.GtOpName:       {Name: config.GtOpName, Fn: builtinGt},
	config.LtOpName:       {Name: config.LtOpName, Fn: builtinLt},
	config.NumEqOpName:    {Name: config.NumEqOpName, Fn: builtinNumEq},
	config.NotOpName:      {Name: config.NotOpName, Fn: builtinNot},
	config.AndOpName:      {Name: config.AndOpName, Fn: builtinAnd},
	config.OrOpName:       {Name: config.OrOpName, Fn: builtinOr},
	config.EqOpName:       {Name: config.EqOpName, Fn: builtinEq},
	config.StringEqOpName: {Name: config.StringEqOpName, Fn: builtinStringEq},
	config.ConsOpName:     {Name: config.ConsOpName, Fn: builtinCons},
	config.CarOpName:      {Name: config.CarOpName, Fn: builtinCar},
	config.CdrOpName:      {Name: config.CdrOpName, Fn: builtinCdr},
	config.ListOpName:     {Name: config.ListOpName, Fn: builtinList},
	config.PairPOpName:    {Name: config.PairPOpName, Fn: builtinPairP},
	config.NumberPOpName:  {Name: config.NumberPOpName, Fn: kindPredicate(value.NUMBER_KIND)},
	config.BooleanPOpName: {Name: config.BooleanPOpName, Fn: kindPredicate(value.BOOL_KIND)},
	config.SymbolPOpName:  {Name: config.SymbolPOpName, Fn: kindPredicate(value.SYMBOL_KIND)},
	config.StringPOpName:  {Name: config.StringPOpName, Fn: kindPredicate(value.STRING_KIND)},
	config.DictOpName:     {Name: config.DictOpName, Fn: builtinDict},
	config.DictPOpName:    {Name: config.DictPOpName, Fn: builtinDictP},
	config.GetOpName:      {Name: config.GetOpName, Fn: builtinGet},
}

func IsPrimitive(name string) bool {
	_, ok := Builtins[name]
	return ok
}

// ApplyPrimitive runs the named primitive on already-evaluated arguments.
func ApplyPrimitive(op string, args []value.Value) (value.Value, error) {
	b, ok := Builtins[op]
	if !ok {
		return nil, value.Errorf(value.UnsupportedForm, "Bad primitive op: %s", op)
	}
	return b.Fn(args...)
}

// Arithmetic

func builtinAdd(args ...value.Value) (value.Value, error) {
	return foldNumbers(config.AddOpName, 0, args, func(acc, n float64) float64 { return acc + n })
}

func builtinMul(args ...value.Value) (value.Value, error) {
	return foldNumbers(config.MulOpName, 1, args, func(acc, n float64) float64 { return acc * n })
}

func builtinSub(args ...value.Value) (value.Value, error) {
	a, b, err := twoNumbers(config.SubOpName, args)
	if err != nil {
		return nil, err
	}
	return value.NewNumber(a - b), nil
}

// Division by zero follows IEEE 754.
func builtinDiv(args ...value.Value) (value.Value, error) {
	a, b, err := twoNumbers(config.DivOpName, args)
	if err != nil {
		return nil, err
	}
	return value.NewNumber(a / b), nil
}

func foldNumbers(op string, acc float64, args []value.Value, f func(acc, n float64) float64) (value.Value, error) {
	for _, arg := range args {
		n, ok := arg.(*value.Number)
		if !ok {
			return nil, value.Errorf(value.TypeMismatch, "%s expects numbers, got %s", op, arg)
		}
		acc = f(acc, n.Value)
	}
	return value.NewNumber(acc), nil
}

func twoNumbers(op string, args []value.Value) (float64, float64, error) {
	if len(args) < 2 {
		return 0, 0, value.Errorf(value.TypeMismatch, "%s expects two numbers, got %d argument(s)", op, len(args))
	}
	a, ok := args[0].(*value.Number)
	if !ok {
		return 0, 0, value.Errorf(value.TypeMismatch, "%s expects numbers, got %s", op, args[0])
	}
	b, ok := args[1].(*value.Number)
	if !ok {
		return 0, 0, value.Errorf(value.TypeMismatch, "%s expects numbers, got %s", op, args[1])
	}
	return a.Value, b.Value, nil
}

// Comparison

func builtinGt(args ...value.Value) (value.Value, error) {
	a, b, err := twoNumbers(config.GtOpName, args)
	if err != nil {
		return nil, err
	}
	return value.NewBool(a > b), nil
}

func builtinLt(args ...value.Value) (value.Value, error) {
	a, b, err := twoNumbers(config.LtOpName, args)
	if err != nil {
		return nil, err
	}
	return value.NewBool(a < b), nil
}

// = compares numbers, and also strings, booleans or symbols of the same kind.
func builtinNumEq(args ...value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, value.Errorf(value.TypeMismatch, "= expects two arguments, got %d", len(args))
	}
	switch a := args[0].(type) {
	case *value.String, *value.Bool, *value.Symbol:
		if args[1].Kind() == a.Kind() {
			return value.NewBool(value.Eq(a, args[1])), nil
		}
	}
	x, y, err := twoNumbers(config.NumEqOpName, args)
	if err != nil {
		return nil, err
	}
	return value.NewBool(x == y), nil
}

// Boolean

func builtinNot(args ...value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, value.Errorf(value.TypeMismatch, "not expects an argument")
	}
	return value.NewBool(value.IsFalse(args[0])), nil
}

func builtinAnd(args ...value.Value) (value.Value, error) {
	a, b, err := twoBools(config.AndOpName, args)
	if err != nil {
		return nil, err
	}
	return value.NewBool(a && b), nil
}

func builtinOr(args ...value.Value) (value.Value, error) {
	a, b, err := twoBools(config.OrOpName, args)
	if err != nil {
		return nil, err
	}
	return value.NewBool(a || b), nil
}

func twoBools(op string, args []value.Value) (bool, bool, error) {
	if len(args) < 2 {
		return false, false, value.Errorf(value.TypeMismatch, "%s expects two booleans, got %d argument(s)", op, len(args))
	}
	a, ok := args[0].(*value.Bool)
	if !ok {
		return false, false, value.Errorf(value.TypeMismatch, "Arguments to %s must be booleans, got %s", op, args[0])
	}
	b, ok := args[1].(*value.Bool)
	if !ok {
		return false, false, value.Errorf(value.TypeMismatch, "Arguments to %s must be booleans, got %s", op, args[1])
	}
	return a.Value, b.Value, nil
}

// Equality

func builtinEq(args ...value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, value.Errorf(value.TypeMismatch, "eq? expects two arguments, got %d", len(args))
	}
	return value.NewBool(value.Eq(args[0], args[1])), nil
}

func builtinStringEq(args ...value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, value.Errorf(value.TypeMismatch, "string=? expects two strings, got %d argument(s)", len(args))
	}
	a, ok := args[0].(*value.String)
	if !ok {
		return nil, value.Errorf(value.TypeMismatch, "string=? expects strings, got %s", args[0])
	}
	b, ok := args[1].(*value.String)
	if !ok {
		return nil, value.Errorf(value.TypeMismatch, "string=? expects strings, got %s", args[1])
	}
	return value.NewBool(a.Value == b.Value), nil
}
