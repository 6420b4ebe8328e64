// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	tests := []struct {
		name       string
		level      string
		debugShown bool
		infoShown  bool
	}{
		{name: "debug level", level: "debug", debugShown: true, infoShown: true},
		{name: "info level", level: "info", debugShown: false, infoShown: true},
		{name: "upper case", level: "WARN", debugShown: false, infoShown: false},
		{name: "invalid falls back to info", level: "verbose", debugShown: false, infoShown: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &logger.TestLogBuffer{}
			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Same(t, l, slog.Default(), "Setup should install the logger as default")

			l.Debug("debug message")
			l.Info("info message", slog.String("component", "test"))

			out := buf.String()
			assert.Equal(t, tt.debugShown, strings.Contains(out, "debug message"))
			assert.Equal(t, tt.infoShown, strings.Contains(out, "info message"))

			if tt.infoShown {
				entries, err := buf.GetLogEntries()
				require.NoError(t, err)
				last := entries[len(entries)-1]
				assert.Equal(t, "INFO", last["level"])
				assert.Equal(t, "test", last["component"])
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := logger.ParseLevel("Error")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelError, level)

	level, ok = logger.ParseLevel("")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	_, fallback := logger.NewTestLogger()
	_, scoped := logger.NewTestLogger()

	ctx := context.Background()
	assert.Same(t, fallback, logger.FromContextOrDefault(ctx, fallback))
	assert.NotNil(t, logger.FromContext(ctx))

	ctx = logger.WithLogger(ctx, scoped)
	assert.Same(t, scoped, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, scoped, logger.FromContext(ctx))

	//nolint:staticcheck // nil context is tolerated
	assert.Same(t, fallback, logger.FromContextOrDefault(nil, fallback))
}
