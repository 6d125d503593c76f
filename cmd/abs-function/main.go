package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/urfave/cli/v3"
	"google.golang.org/grpc"

	fri "github.com/3s-rg-codes/nativeabs/pkg/functionRuntimeInterface"
	"github.com/3s-rg-codes/nativeabs/pkg/handler"
	"github.com/3s-rg-codes/nativeabs/pkg/utils"
	functionpb "github.com/3s-rg-codes/nativeabs/proto/function"
)

const (
	hostLambda = "lambda"
	hostGRPC   = "grpc"
)

func main() {
	cmd := &cli.Command{
		Name:  "abs-function",
		Usage: "serve a function that calls the native C runtime abs(-123)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   hostLambda,
				Usage:   "invocation host (lambda or grpc)",
				Sources: cli.EnvVars("FUNCTION_HOST"),
			},
			&cli.StringFlag{
				Name:    "binding",
				Value:   handler.BindingDynamic,
				Usage:   "native binding (dynamic or static)",
				Sources: cli.EnvVars("NATIVE_BINDING"),
			},
			&cli.StringFlag{
				Name:    "library",
				Usage:   "native library to bind, empty binds the process image",
				Sources: cli.EnvVars("NATIVE_LIBRARY"),
			},
			&cli.StringFlag{
				Name:    "address",
				Value:   fri.DefaultAddress,
				Usage:   "gRPC listen address",
				Sources: cli.EnvVars("FUNCTION_ADDRESS"),
			},
			&cli.StringFlag{
				Name:    "function-id",
				Value:   "abs",
				Usage:   "function ID reported to the health service",
				Sources: cli.EnvVars("FUNCTION_ID"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   120 * time.Second,
				Usage:   "idle time before the gRPC host shuts down, 0 disables it",
				Sources: cli.EnvVars("FUNCTION_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log format (text, json or dev)",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "log file path (defaults to stdout)",
				Sources: cli.EnvVars("LOG_FILE"),
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, closer, err := utils.SetupLogger(utils.LogConfig{
		Level:    cmd.String("log-level"),
		Format:   cmd.String("log-format"),
		FilePath: cmd.String("log-file"),
	})
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	binder, err := handler.NewBinder(cmd.String("binding"), cmd.String("library"))
	if err != nil {
		return err
	}
	h := handler.New(binder, logger)

	logger.Info("Starting function",
		"host", cmd.String("host"),
		"binding", cmd.String("binding"),
		"library", cmd.String("library"),
	)

	switch host := cmd.String("host"); host {
	case hostLambda:
		// lambda.Start never returns; it exits the process on fatal errors
		lambda.StartWithOptions(handler.NewLambdaHandler(h), lambda.WithContext(ctx))
		return nil
	case hostGRPC:
		fn := fri.NewV2(fri.Settings{
			Address:    cmd.String("address"),
			Timeout:    cmd.Duration("timeout"),
			FunctionID: cmd.String("function-id"),
			Logger:     logger,
		})
		return fn.Ready(ctx, func(reg grpc.ServiceRegistrar) {
			functionpb.RegisterFunctionServer(reg, handler.NewFunctionServer(h))
		})
	default:
		return fmt.Errorf("unknown host %q", host)
	}
}
