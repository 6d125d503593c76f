package functionRuntimeInterface

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

const DefaultAddress = "0.0.0.0:50052"

// Settings configures a hosted function instance.
type Settings struct {
	// Address the gRPC server listens on.
	Address string
	// Timeout stops the server after this long without a call. Zero disables it.
	Timeout time.Duration
	// FunctionID names the function; it is also the health service name.
	FunctionID string
	// InstanceID identifies this instance in logs. Defaults to the hostname.
	InstanceID string

	Logger *slog.Logger
}

func (s Settings) withDefaults() Settings {
	if s.Address == "" {
		s.Address = DefaultAddress
	}
	if s.InstanceID == "" {
		s.InstanceID = getID()
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	return s
}

func getID() string {
	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Sprintf("instance-%d", os.Getpid())
	}
	return hostname
}
