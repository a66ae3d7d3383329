// Package backend provides an interface for different execution backends.
// This allows switching between environment-extending and substituting
// closure application.
package backend

import (
	"fmt"

	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Backend is the interface for execution backends
type Backend interface {
	// Run executes the program from pipeline context and returns the result
	Run(ctx *pipeline.PipelineContext) (value.Value, error)

	// Name returns the backend name for display
	Name() string
}

// ByName returns the backend registered under name.
func ByName(name string, maxDepth int) (Backend, error) {
	switch name {
	case config.BackendEnvironment, "":
		return &EnvironmentBackend{MaxDepth: maxDepth}, nil
	case config.BackendSubstitution:
		return &SubstitutionBackend{MaxDepth: maxDepth}, nil
	}
	return nil, fmt.Errorf("unknown backend %q (want %s or %s)", name, config.BackendEnvironment, config.BackendSubstitution)
}

func run(ctx *pipeline.PipelineContext, strategy evaluator.Strategy, maxDepth int) (value.Value, error) {
	if ctx.AstRoot == nil {
		return nil, fmt.Errorf("no AST to execute")
	}
	if ctx.Failed() {
		return nil, ctx.Err()
	}

	eval := evaluator.New(strategy)
	eval.Logger = ctx.Log()
	eval.MaxDepth = maxDepth
	eval.Context = ctx.Context
	return eval.EvalProgram(ctx.AstRoot)
}
