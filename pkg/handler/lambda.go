package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
)

var _ lambda.Handler = (*LambdaHandler)(nil)

// LambdaHandler serves a Handler on the Lambda runtime. The payload reaches
// Handle as raw bytes, so empty or non-JSON events are not rejected.
type LambdaHandler struct {
	handler *Handler
}

// NewLambdaHandler wraps h for lambda.Start.
func NewLambdaHandler(h *Handler) *LambdaHandler {
	return &LambdaHandler{handler: h}
}

// Invoke runs the handler and encodes its result as a JSON number.
func (l *LambdaHandler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	result, err := l.handler.Handle(ctx, payload)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return out, nil
}
