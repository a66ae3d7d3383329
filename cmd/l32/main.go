package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BenKaponz/PPL-Task2/internal/config"
)

const appName = "l32"

// Version can be set at build time using: -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "run":
		os.Exit(cmdRun(args))
	case "repl":
		os.Exit(cmdRepl(args))
	case "lower":
		os.Exit(cmdLower(args))
	case "js":
		os.Exit(cmdJS(args))
	case "serve":
		os.Exit(cmdServe(args))
	case "remote":
		os.Exit(cmdRemote(args))
	case "version":
		fmt.Println(Version)
	case "-h", "--help", "help":
		usage()
	default:
		// l32 prog.l32 is short for l32 run prog.l32
		if isSourceFile(cmd) {
			os.Exit(cmdRun(os.Args[1:]))
		}
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func usage() {
	fmt.Printf(`l32 %s

Usage:
  %[2]s run [flags] <file>           Evaluate a program file ("-" reads stdin)
  %[2]s run [flags] -e <program>     Evaluate a program given inline
  %[2]s repl [flags]                 Start the REPL
  %[2]s lower [flags] <file>         Print the program with dict forms lowered to L3
  %[2]s js [flags] <file>            Print the program translated to JavaScript
  %[2]s serve [flags]                Serve the l32.Evaluator gRPC service
  %[2]s remote -addr <host:port> <file>  Evaluate a file on a running server
  %[2]s version                      Print the version

Common flags:
  -config <path>      Configuration file (default: nearest l32.yaml, l32.yml or l32.toml)
  -backend env|subst  Closure application strategy
  -lower              Run the dictionary lowering pass before evaluation
  -strategy <name>    Lowering strategy: literal, application, runtime
  -max-depth <n>      Evaluation depth limit, 0 for none
  -color auto|always|never
  -history            Record evaluations in the history store
  -log-level <level>  trace, debug, info, warn, error, none
  -log-file <path>    Write logs to a file instead of stderr
  -log-format text|json
`, Version, appName)
}
