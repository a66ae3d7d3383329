package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BenKaponz/PPL-Task2/internal/ast"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/evaluator"
	"github.com/BenKaponz/PPL-Task2/internal/history"
	"github.com/BenKaponz/PPL-Task2/internal/lower"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/reader"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// session is a REPL evaluation state: definitions persist between inputs.
type session struct {
	id       string
	backend  string
	eval     *evaluator.Evaluator
	env      *evaluator.Environment
	parser   *parser.Parser
	lowering bool
	strategy lower.Strategy
	store    *history.Store
	logger   *slog.Logger
}

func newSession(cfg *config.Config, store *history.Store, logger *slog.Logger) (*session, error) {
	strategy := evaluator.StrategyEnvironment
	if cfg.Backend == config.BackendSubstitution {
		strategy = evaluator.StrategySubstitution
	}
	s := &session{
		id:       history.NewSession(),
		backend:  cfg.Backend,
		eval:     evaluator.New(strategy),
		env:      evaluator.NewEnvironment(),
		parser:   parser.New(config.LangL32),
		lowering: cfg.Lower,
		store:    store,
		logger:   logger,
	}
	s.eval.Logger = logger
	s.eval.MaxDepth = cfg.MaxDepth

	if s.lowering {
		var err error
		if s.strategy, err = lower.ParseStrategy(cfg.LowerStrategy); err != nil {
			return nil, err
		}
		// An empty program lowers to just the strategy's prelude.
		prelude, err := lower.Lower(&ast.Program{Lang: config.LangL32}, s.strategy)
		if err != nil {
			return nil, err
		}
		for _, exp := range prelude.Exps {
			if _, s.env, err = s.eval.Step(exp, s.env); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// statements parses REPL input: bare L32 statements, or whole programs
// whose statements join the session.
func (s *session) statements(src string) ([]ast.Exp, error) {
	datums, err := reader.Read(src)
	if err != nil {
		return nil, value.Errorf(value.ParseError, "parse: %v", err)
	}
	var exps []ast.Exp
	for _, datum := range datums {
		if isProgram(datum) {
			prog, err := s.parser.ParseProgramDatum(datum)
			if err != nil {
				return nil, err
			}
			exps = append(exps, prog.Exps...)
			continue
		}
		exp, err := s.parser.ParseExp(datum)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	return exps, nil
}

func isProgram(datum value.Value) bool {
	pair, ok := datum.(*value.Pair)
	if !ok {
		return false
	}
	tag, ok := pair.Car.(*value.Symbol)
	return ok && (tag.Name == config.LangL3 || tag.Name == config.LangL32)
}

// run evaluates src and returns the values of its non-define statements.
// Definitions made before a failing statement are kept.
func (s *session) run(ctx context.Context, src string) ([]value.Value, error) {
	s.eval.Context = ctx
	exps, err := s.statements(src)
	if err != nil {
		s.record(ctx, src, nil, err)
		return nil, err
	}

	var results []value.Value
	for _, exp := range exps {
		if s.lowering {
			if exp, err = lower.LowerExp(exp, s.strategy); err != nil {
				break
			}
		}
		var val value.Value
		if val, s.env, err = s.eval.Step(exp, s.env); err != nil {
			break
		}
		if val != nil {
			results = append(results, val)
		}
	}
	s.record(ctx, src, results, err)
	return results, err
}

func (s *session) record(ctx context.Context, src string, results []value.Value, err error) {
	if s.store == nil {
		return
	}
	entry := history.Entry{Session: s.id, Source: src, Backend: s.backend}
	if err != nil {
		entry.Error = err.Error()
	} else if len(results) > 0 {
		entry.Result = results[len(results)-1].String()
	}
	if _, err := s.store.Record(ctx, entry); err != nil {
		s.logger.Warn("history record failed", slog.Any("error", err))
	}
}

// recent lists this session's last n inputs, newest first.
func (s *session) recent(ctx context.Context, n int) ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("history is disabled (use -history)")
	}
	entries, err := s.store.Recent(ctx, s.id, n)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		out := e.Result
		if e.Error != "" {
			out = "error: " + e.Error
		}
		lines = append(lines, fmt.Sprintf("%s => %s", e.Source, out))
	}
	return lines, nil
}
