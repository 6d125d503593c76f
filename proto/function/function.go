// Package function defines the gRPC contract a hosted abs function serves.
//
// The service is described in function.proto. Its messages are well-known
// protobuf types, so only the service bindings are needed and this file is
// maintained by hand in the shape protoc-gen-go-grpc emits. Keep the two in
// sync when the service changes.
package function

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName       = "abs.Function"
	HandleFullMethod  = "/abs.Function/Handle"
	handleMethodName  = "Handle"
	serviceDescSource = "function.proto"
)

// FunctionServer is the server API for the abs.Function service.
// The request is the opaque invocation event.
type FunctionServer interface {
	Handle(context.Context, *structpb.Value) (*wrapperspb.Int64Value, error)
}

// FunctionClient is the client API for the abs.Function service.
type FunctionClient interface {
	Handle(ctx context.Context, in *structpb.Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
}

type functionClient struct {
	cc grpc.ClientConnInterface
}

func NewFunctionClient(cc grpc.ClientConnInterface) FunctionClient {
	return &functionClient{cc}
}

func (c *functionClient) Handle(ctx context.Context, in *structpb.Value, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, HandleFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterFunctionServer(s grpc.ServiceRegistrar, srv FunctionServer) {
	s.RegisterService(&FunctionServiceDesc, srv)
}

func handleHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FunctionServer).Handle(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: HandleFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(FunctionServer).Handle(ctx, req.(*structpb.Value))
	}
	return interceptor(ctx, in, info, handler)
}

// FunctionServiceDesc is the grpc.ServiceDesc for the abs.Function service.
var FunctionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FunctionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: handleMethodName,
			Handler:    handleHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: serviceDescSource,
}
