package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/BenKaponz/PPL-Task2/internal/reader"
)

const (
	historyFile = ".l32_history"
	promptMain  = "l32> "
	promptCont  = "...  "
)

const replHelp = `REPL commands:
  :quit         Exit the REPL
  :env          List the names defined in this session
  :history [n]  Show the last n inputs (needs -history)
  :help         Show this text
`

func cmdRepl(args []string) (ret int) {
	var o options
	fs := newFlagSet("repl", &o)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := o.setup(fs); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	defer o.close()

	ctx := context.Background()
	store, err := o.openHistory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: history: %s\n", appName, err)
		return 1
	}
	if store != nil {
		defer store.Close()
	}

	s, err := newSession(o.cfg, store, o.logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 1
	}
	pal := palette{o.colorEnabled(os.Stdout)}

	fmt.Printf("l32 %s REPL (backend %s)\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", Version, o.cfg.Backend)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		code, ok := readForm(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if strings.HasPrefix(code, ":") {
			if quit := s.command(ctx, code, pal); quit {
				return 0
			}
			continue
		}

		results, err := s.run(ctx, code)
		for _, v := range results {
			fmt.Println(pal.blue(v.String()))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, palette{o.colorEnabled(os.Stderr)}.red("Error: "+err.Error()))
		}
	}
}

// command handles a :command line and reports whether the REPL should exit.
func (s *session) command(ctx context.Context, line string, pal palette) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(replHelp)
	case ":env":
		names := s.env.Names()
		sort.Strings(names)
		for _, name := range names {
			v, _ := s.env.Get(name)
			fmt.Printf("%s %s\n", name, pal.dim(v.String()))
		}
	case ":history":
		n := 10
		if len(fields) > 1 {
			if parsed, err := strconv.Atoi(fields[1]); err == nil && parsed > 0 {
				n = parsed
			}
		}
		lines, err := s.recent(ctx, n)
		if err != nil {
			fmt.Fprintln(os.Stderr, pal.red(err.Error()))
			break
		}
		for _, l := range lines {
			fmt.Println(l)
		}
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

// readForm keeps prompting until the buffered input reads as complete forms.
func readForm(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := reader.Read(src); err != nil && reader.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
