package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/BenKaponz/PPL-Task2/internal/backend"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/history"
	"github.com/BenKaponz/PPL-Task2/internal/lower"
)

const levelTrace = slog.Level(-8)

// options holds the flags shared by every subcommand. Values from the
// command line override the configuration file and L32_* variables.
type options struct {
	configPath string
	backend    string
	lower      bool
	strategy   string
	maxDepth   int
	color      string
	history    bool
	logLevel   string
	logFile    string
	logFormat  string

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

func newFlagSet(name string, o *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "configuration file")
	fs.StringVar(&o.backend, "backend", "", "closure application: env or subst")
	fs.BoolVar(&o.lower, "lower", false, "lower dict forms before evaluation")
	fs.StringVar(&o.strategy, "strategy", "", "lowering strategy: literal, application or runtime")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "evaluation depth limit, 0 for none")
	fs.StringVar(&o.color, "color", "", "colored output: auto, always or never")
	fs.BoolVar(&o.history, "history", false, "record evaluations in the history store")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: trace, debug, info, warn, error, none")
	fs.StringVar(&o.logFile, "log-file", "", "log file path (if not set, logs to stderr)")
	fs.StringVar(&o.logFormat, "log-format", "", "log format: text or json")
	return fs
}

// setup resolves the configuration and opens the logger. It must run after
// fs.Parse so that only flags given explicitly take precedence.
func (o *options) setup(fs *flag.FlagSet) error {
	path := o.configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = o.backend
		case "lower":
			cfg.Lower = o.lower
		case "strategy":
			cfg.LowerStrategy = o.strategy
		case "max-depth":
			cfg.MaxDepth = o.maxDepth
		case "color":
			cfg.Color = o.color
		case "history":
			cfg.History.Enabled = o.history
		case "log-level":
			cfg.Log.Level = o.logLevel
		case "log-file":
			cfg.Log.File = o.logFile
		case "log-format":
			cfg.Log.Format = o.logFormat
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	o.cfg = cfg

	return o.openLogger()
}

func (o *options) openLogger() error {
	if o.cfg.Log.Level == "none" {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	var w io.Writer = os.Stderr
	if o.cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(o.cfg.Log.File), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(o.cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		w = f
		o.logCloser = f
	}

	opts := &slog.HandlerOptions{Level: logLevelFromString(o.cfg.Log.Level)}
	if o.cfg.Log.Format == "json" {
		o.logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		o.logger = slog.New(slog.NewTextHandler(w, opts))
	}
	slog.SetDefault(o.logger)
	return nil
}

func (o *options) close() {
	if o.logCloser != nil {
		o.logCloser.Close()
	}
}

func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return levelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// pipelineOptions maps the configuration onto backend.Options.
func (o *options) pipelineOptions() (backend.Options, error) {
	b, err := backend.ByName(o.cfg.Backend, o.cfg.MaxDepth)
	if err != nil {
		return backend.Options{}, err
	}
	opts := backend.Options{Backend: b, Lower: o.cfg.Lower}
	if opts.Lower {
		if opts.LowerStrategy, err = lower.ParseStrategy(o.cfg.LowerStrategy); err != nil {
			return backend.Options{}, err
		}
	}
	return opts, nil
}

// openHistory returns nil when history is disabled.
func (o *options) openHistory(ctx context.Context) (*history.Store, error) {
	if !o.cfg.History.Enabled {
		return nil, nil
	}
	return history.Open(ctx, o.cfg.History.Driver, o.cfg.History.DSN)
}

func (o *options) colorEnabled(f *os.File) bool {
	switch o.cfg.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct{ on bool }

func (p palette) wrap(code, s string) string {
	if !p.on {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (p palette) red(s string) string  { return p.wrap("31", s) }
func (p palette) blue(s string) string { return p.wrap("94", s) }
func (p palette) dim(s string) string  { return p.wrap("2", s) }
