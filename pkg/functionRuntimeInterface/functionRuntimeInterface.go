// Package functionRuntimeInterface hosts a user gRPC service inside a
// function instance and shuts it down once it has been idle for too long.
package functionRuntimeInterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/3s-rg-codes/nativeabs/pkg/utils"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// FunctionV2 lets users serve their own gRPC services.
type FunctionV2 struct {
	settings Settings

	server       *grpc.Server
	serverOpts   []grpc.ServerOption
	health       *health.Server
	lastActivity time.Time
	activityMu   sync.RWMutex
}

func NewV2(settings Settings, opts ...grpc.ServerOption) *FunctionV2 {
	fn := &FunctionV2{
		settings:   settings.withDefaults(),
		serverOpts: opts,
		health:     health.NewServer(),
	}
	fn.server = grpc.NewServer(fn.buildServerOptions()...)
	return fn
}

// Ready registers the user service, listens on the configured address and
// serves until ctx is done or the inactivity timeout fires.
func (f *FunctionV2) Ready(ctx context.Context, register func(grpc.ServiceRegistrar)) error {
	lis, err := net.Listen("tcp", f.settings.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", f.settings.Address, err)
	}
	return f.Serve(ctx, lis, register)
}

// Serve is Ready on an existing listener.
func (f *FunctionV2) Serve(ctx context.Context, lis net.Listener, register func(grpc.ServiceRegistrar)) error {
	if register == nil {
		return errors.New("functionRuntimeInterface: register func must not be nil")
	}

	logger := f.settings.Logger.With("instance_id", f.settings.InstanceID, "function_id", f.settings.FunctionID)

	register(f.server)
	healthpb.RegisterHealthServer(f.server, f.health)
	f.updateActivity()

	g, gctx := errgroup.WithContext(ctx)
	stopped := make(chan struct{})

	g.Go(func() error {
		defer close(stopped)
		logger.Info("User gRPC server starting", "address", lis.Addr().String(), "timeout", f.settings.Timeout)
		if err := f.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		f.monitor(gctx, stopped)
		return nil
	})

	// the listener is bound, so callers can be admitted
	f.setServing(healthpb.HealthCheckResponse_SERVING)
	logger.Info("Function ready")

	err := g.Wait()
	logger.Info("User gRPC server stopped")
	return err
}

func (f *FunctionV2) buildServerOptions() []grpc.ServerOption {
	options := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			f.unaryActivityInterceptor,
			utils.InterceptorLogger(f.settings.Logger),
		),
	}
	return append(options, f.serverOpts...)
}

func (f *FunctionV2) unaryActivityInterceptor(
	ctx context.Context,
	req any,
	_ *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	f.updateActivity()
	return handler(ctx, req)
}

func (f *FunctionV2) updateActivity() {
	f.activityMu.Lock()
	f.lastActivity = time.Now()
	f.activityMu.Unlock()
}

func (f *FunctionV2) idleFor() time.Duration {
	f.activityMu.RLock()
	defer f.activityMu.RUnlock()
	return time.Since(f.lastActivity)
}

func (f *FunctionV2) setServing(status healthpb.HealthCheckResponse_ServingStatus) {
	f.health.SetServingStatus("", status)
	if f.settings.FunctionID != "" {
		f.health.SetServingStatus(f.settings.FunctionID, status)
	}
}

// monitor stops the server when ctx is done or the instance has been idle
// for the configured timeout. It returns early if the server stopped on its own.
func (f *FunctionV2) monitor(ctx context.Context, stopped <-chan struct{}) {
	var tick <-chan time.Time
	if f.settings.Timeout > 0 {
		ticker := time.NewTicker(tickInterval(f.settings.Timeout))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-stopped:
			return
		case <-ctx.Done():
			f.stop("Context done, shutting down")
			return
		case <-tick:
			if idle := f.idleFor(); idle >= f.settings.Timeout {
				f.stop("Server timeout reached, shutting down", "timeout", f.settings.Timeout, "last_activity", idle)
				return
			}
		}
	}
}

func (f *FunctionV2) stop(msg string, args ...any) {
	f.settings.Logger.Info(msg, args...)
	f.health.Shutdown()
	f.server.GracefulStop()
}

func tickInterval(timeout time.Duration) time.Duration {
	if interval := timeout / 4; interval < time.Second {
		return max(interval, time.Millisecond)
	}
	return time.Second
}
