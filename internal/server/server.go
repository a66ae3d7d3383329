package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/BenKaponz/PPL-Task2/internal/backend"
	"github.com/BenKaponz/PPL-Task2/internal/config"
	"github.com/BenKaponz/PPL-Task2/internal/history"
	"github.com/BenKaponz/PPL-Task2/internal/lower"
	"github.com/BenKaponz/PPL-Task2/internal/parser"
	"github.com/BenKaponz/PPL-Task2/internal/pipeline"
	"github.com/BenKaponz/PPL-Task2/internal/value"
)

// Server evaluates each request on its own pipeline, so requests share
// nothing but the optional history store.
type Server struct {
	Config  *config.Config
	History *history.Store
	Session string
	Logger  *slog.Logger
}

func New(cfg *config.Config, store *history.Store) *Server {
	return &Server{
		Config:  cfg,
		History: store,
		Session: history.NewSession(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Eval runs req["source"]. Optional fields: "backend" ("env" or "subst"),
// "lower" (a strategy name, or "" for none). Evaluation failures are
// reported in the response, not as RPC errors.
func (s *Server) Eval(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := req.GetFields()
	source := fields["source"].GetStringValue()
	if source == "" {
		return nil, status.Error(codes.InvalidArgument, "source is required")
	}

	backendName := s.Config.Backend
	if v, ok := fields["backend"]; ok {
		backendName = v.GetStringValue()
	}
	b, err := backend.ByName(backendName, s.Config.MaxDepth)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	opts := backend.Options{Backend: b, Lower: s.Config.Lower}
	strategyName := s.Config.LowerStrategy
	if v, ok := fields["lower"]; ok {
		strategyName = v.GetStringValue()
		opts.Lower = strategyName != ""
	}
	if opts.Lower {
		if opts.LowerStrategy, err = lower.ParseStrategy(strategyName); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	pctx := pipeline.NewPipelineContext(source)
	pctx.Context = ctx
	pctx.Logger = s.Logger
	pctx = backend.NewPipeline(opts).Run(pctx)

	if err := pctx.Err(); errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, status.FromContextError(err).Err()
	}

	resp := map[string]interface{}{
		"ok":      !pctx.Failed(),
		"backend": b.Name(),
		"run_id":  pctx.RunID,
	}
	entry := history.Entry{Session: s.Session, Source: source, Backend: b.Name()}
	if err := pctx.Err(); err != nil {
		resp["error"] = err.Error()
		resp["kind"] = string(value.KindOf(err))
		entry.Error = err.Error()
	} else {
		resp["value"] = pctx.Result.String()
		resp["kind"] = string(pctx.Result.Kind())
		entry.Result = pctx.Result.String()
	}
	s.record(ctx, entry)

	out, err := structpb.NewStruct(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// Lower returns the lowered form of a program using the configured strategy.
func (s *Server) Lower(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	prog, err := parser.ParseProgram(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	strategy, err := lower.ParseStrategy(s.Config.LowerStrategy)
	if err != nil {
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	lowered, err := lower.Lower(prog, strategy)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return wrapperspb.String(lowered.String()), nil
}

func (s *Server) record(ctx context.Context, e history.Entry) {
	if s.History == nil {
		return
	}
	if _, err := s.History.Record(ctx, e); err != nil {
		s.Logger.Warn("history record failed", slog.Any("error", err))
	}
}

// Serve listens on addr and blocks until ctx is done or serving fails.
func (s *Server) Serve(ctx context.Context, addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	g := grpc.NewServer()
	RegisterEvaluatorServer(g, s)

	go func() {
		<-ctx.Done()
		g.GracefulStop()
	}()
	s.Logger.Info("serving", slog.String("addr", lis.Addr().String()), slog.String("service", ServiceName))
	return g.Serve(lis)
}
