package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupLoggerToFile(t *testing.T) {
	for _, format := range []string{"text", "json", "dev"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fn.log")

			logger, closer, err := SetupLogger(LogConfig{Level: "debug", Format: format, FilePath: path})
			require.NoError(t, err)

			logger.Debug("native abs returned", "result", 123)
			require.NoError(t, closer.Close())

			b, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(b), "native abs returned")
		})
	}
}

func TestSetupLoggerBadPath(t *testing.T) {
	_, _, err := SetupLogger(LogConfig{FilePath: filepath.Join(t.TempDir(), "missing", "fn.log")})
	assert.Error(t, err)
}
