package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-cz/devslog"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"google.golang.org/grpc"
)

// LogConfig selects where and how a function logs.
type LogConfig struct {
	Level    string // debug, info, warn, error
	Format   string // text, json, dev
	FilePath string // empty means stdout
}

// InterceptorLogger returns a grpc.UnaryServerInterceptor that logs finished calls to l.
func InterceptorLogger(l *slog.Logger) grpc.UnaryServerInterceptor {
	opts := []logging.Option{
		logging.WithLogOnEvents(logging.FinishCall),
		logging.WithDisableLoggingFields(
			logging.ComponentFieldKey,
			logging.MethodTypeFieldKey,
			logging.SystemTag[0],
			logging.SystemTag[1],
		),
	}
	adaptedLogger := logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
	return logging.UnaryServerInterceptor(adaptedLogger, opts...)
}

// ParseLevel maps a level name to a slog.Level, falling back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds a logger from cfg. The returned closer releases the log
// file, if any.
func SetupLogger(cfg LogConfig) (*slog.Logger, io.Closer, error) {
	var writer io.WriteCloser = nopCloser{os.Stdout}
	if cfg.FilePath != "" {
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = file
	}

	return slog.New(newHandler(writer, cfg)), writer, nil
}

func newHandler(w io.Writer, cfg LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: true,
	}

	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(w, opts)
	case "dev":
		return devslog.NewHandler(w, &devslog.Options{
			HandlerOptions:    opts,
			MaxSlicePrintSize: 5,
			SortKeys:          true,
			NewLineAfterLog:   true,
			StringerFormatter: true,
		})
	default:
		return slog.NewTextHandler(w, opts)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
