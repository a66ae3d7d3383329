package evaluator

import "github.com/BenKaponz/PPL-Task2/internal/value"

func builtinCons(args ...value.Value) (value.Value, error) {
	if len(args) < 2 {
		return nil, value.Errorf(value.TypeMismatch, "cons expects two arguments, got %d", len(args))
	}
	return value.Cons(args[0], args[1]), nil
}

func builtinCar(args ...value.Value) (value.Value, error) {
	p, err := pairArg("car", args)
	if err != nil {
		return nil, err
	}
	return p.Car, nil
}

func builtinCdr(args ...value.Value) (value.Value, error) {
	p, err := pairArg("cdr", args)
	if err != nil {
		return nil, err
	}
	return p.Cdr, nil
}

func pairArg(op string, args []value.Value) (*value.Pair, error) {
	if len(args) < 1 {
		return nil, value.Errorf(value.NotAPair, "%s: expected a pair, got no arguments", op)
	}
	p, ok := args[0].(*value.Pair)
	if !ok {
		return nil, value.Errorf(value.NotAPair, "%s: param is not compound %s", op, args[0])
	}
	return p, nil
}

func builtinList(args ...value.Value) (value.Value, error) {
	return value.List(args...), nil
}

func builtinPairP(args ...value.Value) (value.Value, error) {
	return kindPredicate(value.PAIR_KIND)(args...)
}

func kindPredicate(kind value.Kind) BuiltinFunction {
	return func(args ...value.Value) (value.Value, error) {
		if len(args) < 1 {
			return nil, value.Errorf(value.TypeMismatch, "predicate expects an argument")
		}
		return value.NewBool(args[0].Kind() == kind), nil
	}
}
