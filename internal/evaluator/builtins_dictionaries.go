package evaluator

import (
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// dict wraps a key-unique association list into a dictionary value. An
// existing dictionary is returned as is.
func builtinDict(args ...value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, value.Errorf(value.ArityMismatch, "dict: expected exactly one argument, got %d", len(args))
	}
	if d, ok := args[0].(*value.Dict); ok {
		return d, nil
	}
	entries, err := value.AlistEntries(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewDict(entries)
}

func builtinDictP(args ...value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, value.Errorf(value.ArityMismatch, "dict?: expected exactly one argument, got %d", len(args))
	}
	return value.NewBool(value.IsDict(args[0])), nil
}

func builtinGet(args ...value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, value.Errorf(value.ArityMismatch, "get: expected a dictionary and a key, got %d argument(s)", len(args))
	}
	d, err := asDict(args[0])
	if err != nil {
		return nil, err
	}
	key, ok := args[1].(*value.Symbol)
	if !ok {
		return nil, value.Errorf(value.TypeMismatch, "get: key must be a symbol, got %s", args[1])
	}
	return lookupKey(d, key)
}

// asDict accepts a dictionary value or a valid association list.
func asDict(v value.Value) (*value.Dict, error) {
	if d, ok := v.(*value.Dict); ok {
		return d, nil
	}
	entries, err := value.AlistEntries(v)
	if err != nil {
		return nil, value.Errorf(value.MalformedDict, "get: first argument is not a valid dictionary: %s", v)
	}
	return &value.Dict{Entries: entries}, nil
}

func lookupKey(d *value.Dict, key *value.Symbol) (value.Value, error) {
	if v, ok := d.Get(key.Name); ok {
		return v, nil
	}
	return nil, value.Errorf(value.KeyNotFound, "Key not found: %s", key.Name)
}
