package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/BenKaponz/PPL-Task2/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOptionsPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "l32.yaml")
	data := "backend: subst\nmax_depth: 50\nlower: true\nlower_strategy: literal\nlog:\n  level: none\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("L32_MAX_DEPTH", "70")

	var o options
	fs := newFlagSet("run", &o)
	if err := fs.Parse([]string{"-config", path, "-strategy", "runtime"}); err != nil {
		t.Fatal(err)
	}
	if err := o.setup(fs); err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer o.close()

	if o.cfg.Backend != config.BackendSubstitution {
		t.Errorf("Backend = %q, want %q (from file)", o.cfg.Backend, config.BackendSubstitution)
	}
	if o.cfg.MaxDepth != 70 {
		t.Errorf("MaxDepth = %d, want 70 (from env)", o.cfg.MaxDepth)
	}
	if o.cfg.LowerStrategy != config.LowerRuntime {
		t.Errorf("LowerStrategy = %q, want %q (from flag)", o.cfg.LowerStrategy, config.LowerRuntime)
	}

	opts, err := o.pipelineOptions()
	if err != nil {
		t.Fatalf("pipelineOptions: %v", err)
	}
	if opts.Backend.Name() != config.BackendSubstitution || !opts.Lower {
		t.Errorf("pipelineOptions = %+v", opts)
	}
}

func TestOptionsRejectInvalidFlag(t *testing.T) {
	var o options
	fs := newFlagSet("run", &o)
	if err := fs.Parse([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}); err != nil {
		t.Fatal(err)
	}
	if err := o.setup(fs); err == nil {
		t.Error("setup with a missing config file should fail")
	}

	o = options{}
	fs = newFlagSet("run", &o)
	if err := fs.Parse([]string{"-backend", "vm", "-log-level", "none"}); err != nil {
		t.Fatal(err)
	}
	if err := o.setup(fs); err == nil {
		t.Error("setup with an unknown backend should fail")
	}
}

func TestLogLevelFromString(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", levelTrace},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		if got := logLevelFromString(tt.in); got != tt.want {
			t.Errorf("logLevelFromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReadSourceInline(t *testing.T) {
	src, path, err := readSource("(L32 1)", []string{"ignored.l32"})
	if err != nil || src != "(L32 1)" || path != "" {
		t.Errorf("readSource = %q, %q, %v", src, path, err)
	}

	file := filepath.Join(t.TempDir(), "p.l32")
	os.WriteFile(file, []byte("(L32 2)"), 0o644)
	src, path, err = readSource("", []string{file})
	if err != nil || src != "(L32 2)" || path != file {
		t.Errorf("readSource(file) = %q, %q, %v", src, path, err)
	}
}
