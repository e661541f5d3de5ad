package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CreadorsBot_Go/internal/config"
)

type fakeServer struct {
	err   error
	calls *[]string
}

func (f *fakeServer) Stop(ctx context.Context) error {
	*f.calls = append(*f.calls, "server")
	return f.err
}

type fakePool struct{ calls *[]string }

func (f *fakePool) Close() { *f.calls = append(*f.calls, "pool") }

func TestGracefulShutdown_Order(t *testing.T) {
	var calls []string
	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:  &fakeServer{calls: &calls},
		Pool:    &fakePool{calls: &calls},
		Tracing: func() { calls = append(calls, "tracing") },
	})

	assert.Equal(t, []string{"server", "pool", "tracing"}, calls)
}

func TestGracefulShutdown_ServerErrorContinues(t *testing.T) {
	var calls []string
	GracefulShutdown(context.Background(), ShutdownComponents{
		Server: &fakeServer{calls: &calls, err: errors.New("boom")},
		Pool:   &fakePool{calls: &calls},
	})

	assert.Equal(t, []string{"server", "pool"}, calls)
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}

func TestSetupLoggerWithWriter(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cfg := &config.Config{
		Environment: "dev",
		LogLevel:    "info",
		LogFormat:   "json",
		ServiceName: "creadors-bot",
		Version:     "test",
	}

	SetupLoggerWithWriter(cfg, &buf)

	require.Contains(t, buf.String(), LogMsgStarting)
	assert.Contains(t, buf.String(), `"service":"creadors-bot"`)
	assert.NotContains(t, buf.String(), LogMsgConfigLoaded)
}
