package evaluator

import "github.com/BenKaponz/PPL-Task2/internal/value"

// Environment is one immutable frame holding a single binding. A nil
// *Environment is the empty environment.
type Environment struct {
	name  string
	val   value.Value
	outer *Environment
}

func NewEnvironment() *Environment {
	return nil
}

// Extend returns a new frame binding name in front of e. e is unchanged.
func (e *Environment) Extend(name string, val value.Value) *Environment {
	return &Environment{name: name, val: val, outer: e}
}

// ExtendAll binds names to vals pairwise. The first name ends up outermost.
func (e *Environment) ExtendAll(names []string, vals []value.Value) *Environment {
	env := e
	for i, name := range names {
		env = env.Extend(name, vals[i])
	}
	return env
}

func (e *Environment) Get(name string) (value.Value, bool) {
	for f := e; f != nil; f = f.outer {
		if f.name == name {
			return f.val, true
		}
	}
	return nil, false
}

// Lookup walks frames innermost-first.
func (e *Environment) Lookup(name string) (value.Value, error) {
	if v, ok := e.Get(name); ok {
		return v, nil
	}
	return nil, value.Errorf(value.UnboundVariable, "Unbound variable: %s", name)
}

// Names lists bound names innermost-first; shadowed names appear once.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	var names []string
	for f := e; f != nil; f = f.outer {
		if !seen[f.name] {
			seen[f.name] = true
			names = append(names, f.name)
		}
	}
	return names
}
