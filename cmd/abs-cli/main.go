package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/3s-rg-codes/nativeabs/pkg/handler"
	"github.com/3s-rg-codes/nativeabs/pkg/utils"
	functionpb "github.com/3s-rg-codes/nativeabs/proto/function"
)

var eventFlag = &cli.StringFlag{
	Name:    "event",
	Usage:   "JSON event passed to the function, ignored by the handler",
	Value:   "null",
	Aliases: []string{"e"},
}

var timeoutFlag = &cli.DurationFlag{
	Name:    "timeout",
	Usage:   "example: 30s, 1m, 1h",
	Aliases: []string{"t"},
	Value:   30 * time.Second,
}

var addressFlag = &cli.StringFlag{
	Name:  "address",
	Value: "localhost:50052",
	Usage: "address of the function instance",
}

func main() {
	cmd := &cli.Command{
		Name:  "abs-cli",
		Usage: "invoke the native abs function",
		Flags: []cli.Flag{timeoutFlag},
		Commands: []*cli.Command{
			{
				Name:  "invoke",
				Usage: "run the handler in this process",
				Flags: []cli.Flag{
					eventFlag,
					&cli.StringFlag{
						Name:  "binding",
						Value: handler.BindingDynamic,
						Usage: "native binding (dynamic or static)",
					},
					&cli.StringFlag{
						Name:  "library",
						Usage: "native library to bind",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Value: "warn",
						Usage: "log level (debug, info, warn, error)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					logger, _, err := utils.SetupLogger(utils.LogConfig{Level: cmd.String("log-level"), Format: "dev"})
					if err != nil {
						return err
					}
					binder, err := handler.NewBinder(cmd.String("binding"), cmd.String("library"))
					if err != nil {
						return err
					}
					event := json.RawMessage(cmd.String("event"))
					if !json.Valid(event) {
						return fmt.Errorf("event is not valid JSON: %s", event)
					}

					ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
					defer cancel()

					result, err := handler.New(binder, logger).Handle(ctx, event)
					if err != nil {
						return err
					}
					fmt.Printf("%d\n", result)
					return nil
				},
			},
			{
				Name:  "call",
				Usage: "call a running function instance over gRPC",
				Flags: []cli.Flag{
					addressFlag,
					eventFlag,
					&cli.IntFlag{
						Name:  "attempts",
						Value: 3,
						Usage: "attempts while the instance is unavailable",
					},
					&cli.DurationFlag{
						Name:  "backoff",
						Value: 500 * time.Millisecond,
						Usage: "wait between attempts",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					event := &structpb.Value{}
					if err := protojson.Unmarshal([]byte(cmd.String("event")), event); err != nil {
						return fmt.Errorf("event is not valid JSON: %w", err)
					}

					conn, err := dial(cmd.String("address"))
					if err != nil {
						return err
					}
					defer conn.Close()

					ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
					defer cancel()

					client := functionpb.NewFunctionClient(conn)
					resp, err := utils.CallWithRetry(ctx, func(ctx context.Context) (int64, error) {
						resp, err := client.Handle(ctx, event)
						return resp.GetValue(), err
					}, cmd.Int("attempts"), cmd.Duration("backoff"), unavailable)
					if err != nil {
						return err
					}
					fmt.Printf("%d\n", resp)
					return nil
				},
			},
			{
				Name:      "health",
				Usage:     "query the health service of a function instance",
				ArgsUsage: "[function ID]",
				Flags:     []cli.Flag{addressFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					conn, err := dial(cmd.String("address"))
					if err != nil {
						return err
					}
					defer conn.Close()

					ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
					defer cancel()

					resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: cmd.Args().Get(0)})
					if err != nil {
						return err
					}
					fmt.Printf("%v\n", resp.GetStatus())
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func dial(address string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn, nil
}

func unavailable(err error) bool {
	return status.Code(err) == codes.Unavailable
}
