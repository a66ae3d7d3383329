package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/BenKaponz/PPL-Task2/internal/backend"
	"github.com/BenKaponz/PPL-Task2/internal/history"
	"github.com/BenKaponz/PPL-Task2/internal/lower"
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/transpile"
)

func cmdRun(args []string) int {
	var o options
	fs := newFlagSet("run", &o)
	expr := fs.String("e", "", "evaluate the given program and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := o.setup(fs); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	defer o.close()

	source, path, err := readSource(*expr, fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	opts, err := o.pipelineOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pctx := pipeline.NewPipelineContext(source)
	pctx.FilePath = path
	pctx.Context = ctx
	pctx.Logger = o.logger
	pctx = backend.NewPipeline(opts).Run(pctx)

	o.record(ctx, pctx)

	if err := pctx.Err(); err != nil {
		fmt.Fprintln(os.Stderr, palette{o.colorEnabled(os.Stderr)}.red("Error: "+err.Error()))
		return 1
	}
	fmt.Println(palette{o.colorEnabled(os.Stdout)}.blue(pctx.Result.String()))
	return 0
}

// record stores a finished run in the history store when one is configured.
func (o *options) record(ctx context.Context, pctx *pipeline.PipelineContext) {
	store, err := o.openHistory(ctx)
	if err != nil {
		o.logger.Warn("history unavailable", slog.Any("error", err))
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	entry := history.Entry{Session: pctx.RunID, Source: pctx.SourceCode, Backend: pctx.Backend}
	if err := pctx.Err(); err != nil {
		entry.Error = err.Error()
	} else if pctx.Result != nil {
		entry.Result = pctx.Result.String()
	}
	if _, err := store.Record(ctx, entry); err != nil {
		o.logger.Warn("history record failed", slog.Any("error", err))
	}
}

func cmdLower(args []string) int {
	var o options
	fs := newFlagSet("lower", &o)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := o.setup(fs); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	defer o.close()

	strategy, err := lower.ParseStrategy(o.cfg.LowerStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	pctx, code := parseOnly(&o, fs.Args(), backend.Options{Lower: true, LowerStrategy: strategy})
	if code != 0 {
		return code
	}
	fmt.Println(pctx.AstRoot.String())
	return 0
}

func cmdJS(args []string) int {
	var o options
	fs := newFlagSet("js", &o)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := o.setup(fs); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	defer o.close()

	pctx, code := parseOnly(&o, fs.Args(), backend.Options{})
	if code != 0 {
		return code
	}
	out, err := transpile.ToJS(pctx.AstRoot)
	if err != nil {
		fmt.Fprintln(os.Stderr, palette{o.colorEnabled(os.Stderr)}.red("Error: "+err.Error()))
		return 1
	}
	fmt.Println(out)
	return 0
}

// parseOnly runs the front half of the pipeline on the file named in args.
func parseOnly(o *options, args []string, opts backend.Options) (*pipeline.PipelineContext, int) {
	source, path, err := readSource("", args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return nil, 2
	}
	pctx := pipeline.NewPipelineContext(source)
	pctx.FilePath = path
	pctx.Logger = o.logger
	pctx = backend.NewPipeline(opts).Run(pctx)
	if err := pctx.Err(); err != nil {
		fmt.Fprintln(os.Stderr, palette{o.colorEnabled(os.Stderr)}.red("Error: "+err.Error()))
		return nil, 1
	}
	return pctx, 0
}

// readSource returns the inline program if given, else the named file, else
// stdin ("-" names stdin explicitly).
func readSource(inline string, args []string) (source, path string, err error) {
	if inline != "" {
		return inline, "", nil
	}
	if len(args) == 0 || args[0] == "-" {
		stat, _ := os.Stdin.Stat()
		if len(args) == 0 && stat != nil && stat.Mode()&os.ModeCharDevice != 0 {
			return "", "", fmt.Errorf("usage: %s run <file> or pipe from stdin", appName)
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), args[0], nil
}
