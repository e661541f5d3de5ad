package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestJSONLogging(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}, &buf)

	slog.Info("test message", "key", "value", "number", 42)

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "test-service", logEntry["service"])
	assert.Equal(t, "1.0.0", logEntry["version"])
	assert.Equal(t, "test", logEntry["environment"])
	assert.Equal(t, "test message", logEntry["msg"])
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "value", logEntry["key"])
	assert.Equal(t, float64(42), logEntry["number"])
}

func TestLevelFiltering(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	InitLoggerWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	slog.Info("dropped")
	slog.Warn("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestRequestIDContext(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "debug", Format: "text"}, &buf)

	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))

	FromContext(ctx).Info("with id")
	assert.Contains(t, buf.String(), "request_id=test-req-123")

	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	assert.NotEqual(t, a, b)
	assert.Equal(t, 4, strings.Count(a, "-"))
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), in)
	}
}

func TestPresetConfigs(t *testing.T) {
	prod := ProductionConfig()
	assert.True(t, prod.IsJSON())
	assert.Equal(t, EnvironmentProduction, prod.Environment)
	assert.False(t, prod.AddSource)

	dev := DevelopmentConfig()
	assert.False(t, dev.IsJSON())
	assert.Equal(t, LogLevelDebug, dev.Level)
	assert.True(t, dev.AddSource)

	def := DefaultConfig()
	assert.NotEmpty(t, def.ServiceName)
	assert.NotEmpty(t, def.Format)
}
