package server

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/history"
)

func startServer(t *testing.T, srv *Server) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	g := grpc.NewServer()
	RegisterEvaluatorServer(g, srv)
	go g.Serve(lis)
	t.Cleanup(g.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func TestEval(t *testing.T) {
	client := startServer(t, New(config.Default(), nil))
	ctx := context.Background()

	tests := []struct {
		name     string
		source   string
		backend  string
		strategy string
		ok       bool
		value    string
		kind     string
	}{
		{"arithmetic", "(L32 (+ 1 2))", "", "", true, "3", "NUMBER"},
		{"dict lookup", "(L32 ((dict (a 1) (b 2)) 'b))", "", "", true, "2", "NUMBER"},
		{"substitution", "(L32 (define f (lambda (x) (* x x))) (f 7))", "subst", "", true, "49", "NUMBER"},
		{"lowered", "(L32 ((dict (a 1) (b 2)) 'a))", "env", "runtime", true, "1", "NUMBER"},
		{"missing key", "(L32 ((dict (a 1)) 'z))", "", "", false, "", "KeyNotFound"},
		{"unbound", "(L32 y)", "", "", false, "", "UnboundVariable"},
		{"parse error", "(L32 (if 1 2))", "", "", false, "", "ParseError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.EvalSource(ctx, tt.source, tt.backend, tt.strategy)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			f := resp.GetFields()
			if got := f["ok"].GetBoolValue(); got != tt.ok {
				t.Fatalf("ok = %v, want %v (error %q)", got, tt.ok, f["error"].GetStringValue())
			}
			if tt.ok && f["value"].GetStringValue() != tt.value {
				t.Errorf("value = %q, want %q", f["value"].GetStringValue(), tt.value)
			}
			if got := f["kind"].GetStringValue(); got != tt.kind {
				t.Errorf("kind = %q, want %q", got, tt.kind)
			}
			if !tt.ok && f["error"].GetStringValue() == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestEvalInvalidArgument(t *testing.T) {
	client := startServer(t, New(config.Default(), nil))
	ctx := context.Background()

	tests := []struct {
		name     string
		source   string
		backend  string
		strategy string
	}{
		{"empty source", "", "", ""},
		{"bad backend", "(L32 1)", "vm", ""},
		{"bad strategy", "(L32 1)", "", "macro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.EvalSource(ctx, tt.source, tt.backend, tt.strategy)
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("code = %v, want InvalidArgument (err %v)", status.Code(err), err)
			}
		})
	}
}

func TestLower(t *testing.T) {
	cfg := config.Default()
	cfg.LowerStrategy = config.LowerLiteral
	client := startServer(t, New(cfg, nil))
	ctx := context.Background()

	resp, err := client.Lower(ctx, wrapperspb.String("(L32 ((dict (a 1)) 'a))"))
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	want := "(L3 ((dict '((a . 1))) 'a))"
	if resp.GetValue() != want {
		t.Errorf("Lower = %q, want %q", resp.GetValue(), want)
	}

	// Repeated keys are left for evaluation to report.
	resp, err = client.Lower(ctx, wrapperspb.String("(L32 (dict (a 1) (a 2)))"))
	if err != nil {
		t.Fatalf("Lower duplicate keys: %v", err)
	}
	if want := "(L3 (dict '((a . 1) (a . 2))))"; resp.GetValue() != want {
		t.Errorf("Lower = %q, want %q", resp.GetValue(), want)
	}

	_, err = client.Lower(ctx, wrapperspb.String("(L32 (dict))"))
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("malformed dict: code = %v, want InvalidArgument", status.Code(err))
	}
}

func TestEvalRecordsHistory(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, history.DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	defer store.Close()

	srv := New(config.Default(), store)
	client := startServer(t, srv)

	for _, src := range []string{"(L32 (+ 1 1))", "(L32 ((dict (a 1)) 'b))"} {
		if _, err := client.EvalSource(ctx, src, "", ""); err != nil {
			t.Fatalf("Eval(%s): %v", src, err)
		}
	}

	entries, err := store.Recent(ctx, srv.Session, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Error != "Key not found: b" {
		t.Errorf("newest entry error = %q, want %q", entries[0].Error, "Key not found: b")
	}
	if entries[1].Result != "2" {
		t.Errorf("oldest entry result = %q, want %q", entries[1].Result, "2")
	}
}
