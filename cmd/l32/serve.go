package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BenKaponz/PPL-Task2/internal/server"
)

func cmdServe(args []string) int {
	var o options
	fs := newFlagSet("serve", &o)
	addr := fs.String("addr", "", "listen address (default from config, :7032)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := o.setup(fs); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	defer o.close()
	if *addr == "" {
		*addr = o.cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := o.openHistory(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: history: %s\n", appName, err)
		return 1
	}
	if store != nil {
		defer store.Close()
	}

	srv := server.New(o.cfg, store)
	srv.Logger = o.logger
	fmt.Fprintf(os.Stderr, "serving %s on %s\n", server.ServiceName, *addr)
	if err := srv.Serve(ctx, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 1
	}
	return 0
}

func cmdRemote(args []string) int {
	var o options
	fs := newFlagSet("remote", &o)
	addr := fs.String("addr", "", "server address (default from config)")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if err := o.setup(fs); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}
	defer o.close()
	if *addr == "" {
		*addr = o.cfg.Server.Addr
	}

	source, _, err := readSource("", fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 2
	}

	conn, err := server.Dial(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 1
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	strategy := ""
	if o.cfg.Lower {
		strategy = o.cfg.LowerStrategy
	}
	resp, err := server.NewClient(conn).EvalSource(ctx, source, o.cfg.Backend, strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		return 1
	}

	f := resp.GetFields()
	if !f["ok"].GetBoolValue() {
		msg := fmt.Sprintf("Error: %s", f["error"].GetStringValue())
		fmt.Fprintln(os.Stderr, palette{o.colorEnabled(os.Stderr)}.red(msg))
		return 1
	}
	fmt.Println(palette{o.colorEnabled(os.Stdout)}.blue(f["value"].GetStringValue()))
	return 0
}
