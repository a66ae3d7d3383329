// Package server exposes evaluation over gRPC.
//
// The service uses well-known protobuf types so no generated code is
// needed:
//
//	service l32.Evaluator {
//	  rpc Eval(google.protobuf.Struct) returns (google.protobuf.Struct);
//	  rpc Lower(google.protobuf.StringValue) returns (google.protobuf.StringValue);
//	}
package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "l32.Evaluator"

const (
	EvalMethod  = "/" + ServiceName + "/Eval"
	LowerMethod = "/" + ServiceName + "/Lower"
)

// EvaluatorServer is the server API for the l32.Evaluator service.
type EvaluatorServer interface {
	Eval(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Lower(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Eval", Handler: evalHandler},
		{MethodName: "Lower", Handler: lowerHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "l32/evaluator.proto",
}

func RegisterEvaluatorServer(s grpc.ServiceRegistrar, srv EvaluatorServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func evalHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Eval(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EvalMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Eval(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func lowerHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Lower(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LowerMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EvaluatorServer).Lower(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}
