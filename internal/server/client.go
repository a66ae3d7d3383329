package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Dial connects to an l32 server without transport security.
func Dial(target string) (*grpc.ClientConn, error) {
	return grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
}

func (c *Client) Eval(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, EvalMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Lower(ctx context.Context, req *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, LowerMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// EvalSource is a convenience wrapper building the request struct.
func (c *Client) EvalSource(ctx context.Context, source, backendName, strategy string) (*structpb.Struct, error) {
	fields := map[string]interface{}{"source": source}
	if backendName != "" {
		fields["backend"] = backendName
	}
	if strategy != "" {
		fields["lower"] = strategy
	}
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return c.Eval(ctx, req)
}
