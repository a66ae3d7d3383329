package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/history"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

func newTestSession(t *testing.T, cfg *config.Config, store *history.Store) *session {
	t.Helper()
	s, err := newSession(cfg, store, discardLogger())
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	return s
}

func join(vals []value.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

func TestSessionKeepsDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		lower    bool
		strategy string
	}{
		{"env", config.BackendEnvironment, false, ""},
		{"subst", config.BackendSubstitution, false, ""},
		{"env/literal", config.BackendEnvironment, true, config.LowerLiteral},
		{"subst/runtime", config.BackendSubstitution, true, config.LowerRuntime},
		{"env/application", config.BackendEnvironment, true, config.LowerApplication},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Backend = tt.backend
			cfg.Lower = tt.lower
			if tt.strategy != "" {
				cfg.LowerStrategy = tt.strategy
			}
			s := newTestSession(t, cfg, nil)
			ctx := context.Background()

			inputs := []struct {
				src  string
				want string
			}{
				{"(define d (dict (a 1) (b 2)))", ""},
				{"(d 'b)", "2"},
				{"(define x 10) (+ x (d 'a))", "11"},
				{"(L32 (define y 5) (* x y))", "50"},
			}
			for _, in := range inputs {
				got, err := s.run(ctx, in.src)
				if err != nil {
					t.Fatalf("run(%s): %v", in.src, err)
				}
				if join(got) != in.want {
					t.Errorf("run(%s) = %q, want %q", in.src, join(got), in.want)
				}
			}
		})
	}
}

func TestSessionErrors(t *testing.T) {
	s := newTestSession(t, config.Default(), nil)
	ctx := context.Background()

	if _, err := s.run(ctx, "(define k 1) ((dict (a 1)) 'z)"); !errors.Is(err, value.ErrKeyNotFound) {
		t.Errorf("error = %v, want KeyNotFound", err)
	}
	// The define before the failure survives.
	got, err := s.run(ctx, "k")
	if err != nil || join(got) != "1" {
		t.Errorf("run(k) = %q, %v, want 1", join(got), err)
	}
	if _, err := s.run(ctx, "(if 1)"); !errors.Is(err, value.ErrParse) {
		t.Errorf("error = %v, want ParseError", err)
	}
}

func TestSessionRedefinesPrimitive(t *testing.T) {
	s := newTestSession(t, config.Default(), nil)
	ctx := context.Background()

	if _, err := s.run(ctx, "(define list (lambda (x) (* x 2)))"); err != nil {
		t.Fatalf("define: %v", err)
	}
	got, err := s.run(ctx, "(list 4)")
	if err != nil || join(got) != "8" {
		t.Errorf("run((list 4)) = %q, %v, want 8", join(got), err)
	}
}

func TestSessionHistory(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, history.DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer store.Close()

	s := newTestSession(t, config.Default(), store)
	for _, src := range []string{"(+ 1 2)", "undefined-name"} {
		s.run(ctx, src)
	}
	lines, err := s.recent(ctx, 5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	want := []string{
		"undefined-name => error: Unbound variable: undefined-name",
		"(+ 1 2) => 3",
	}
	if len(lines) != len(want) {
		t.Fatalf("recent = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("recent[%d] = %q, want %q", i, lines[i], want[i])
		}
	}

	if _, err := newTestSession(t, config.Default(), nil).recent(ctx, 1); err == nil {
		t.Error("recent without a store should fail")
	}
}
