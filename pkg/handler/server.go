package handler

import (
	"context"
	"errors"

	"github.com/3s-rg-codes/nativeabs/pkg/native"
	functionpb "github.com/3s-rg-codes/nativeabs/proto/function"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type functionServer struct {
	handler *Handler
}

// NewFunctionServer exposes h as the abs.Function gRPC service.
func NewFunctionServer(h *Handler) functionpb.FunctionServer {
	return &functionServer{handler: h}
}

func (s *functionServer) Handle(ctx context.Context, req *structpb.Value) (*wrapperspb.Int64Value, error) {
	event := []byte("null")
	if req != nil && req.GetKind() != nil {
		b, err := protojson.Marshal(req)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "failed to encode event: %v", err)
		}
		event = b
	}

	result, err := s.handler.Handle(ctx, event)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Int64(int64(result)), nil
}

func toStatus(err error) error {
	var bindErr *native.BindingError
	var sigErr *native.SignatureError
	switch {
	case errors.As(err, &bindErr):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &sigErr):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}
