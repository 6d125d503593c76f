// Package handler holds the function entry point: it binds to the native C
// runtime, calls abs(-123) and returns the result.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

// Argument is the literal passed to abs on every invocation.
const Argument int32 = -123

// Handler is the function entry point. It keeps no state between invocations.
type Handler struct {
	binder Binder
	logger *slog.Logger
}

// New returns a Handler that binds abs through binder. A nil logger uses slog.Default.
func New(binder Binder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		binder: binder,
		logger: logger,
	}
}

// Handle ignores event and returns abs(Argument). Binding failures are
// returned as *native.BindingError or *native.SignatureError.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (int, error) {
	logger := h.logger.With("invocation_id", invocationID(ctx))

	abs, release, err := h.binder.BindAbs()
	if err != nil {
		logger.Error("Failed to bind native abs", "error", err)
		return 0, fmt.Errorf("handle invocation: %w", err)
	}
	defer func() {
		if err := release(); err != nil {
			logger.Warn("Failed to release native binding", "error", err)
		}
	}()

	result := abs(Argument)
	logger.Debug("Native abs returned", "argument", Argument, "result", result, "event_bytes", len(event))

	return int(result), nil
}

func invocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
