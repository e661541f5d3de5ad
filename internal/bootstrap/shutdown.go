package bootstrap

import (
	"context"
	"log/slog"
)

type stopper interface {
	Stop(ctx context.Context) error
}

type closer interface {
	Close()
}

// ShutdownComponents holds the components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server  stopper
	Pool    closer
	Tracing func()
}

// GracefulShutdown stops the process components in order:
// 1. HTTP server (stop accepting EventSub callbacks)
// 2. Database pool
// 3. Tracer provider (flush pending spans)
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Pool != nil {
		components.Pool.Close()
	}

	if components.Tracing != nil {
		components.Tracing()
	}

	slog.Info(LogMsgShutdownComplete)
}
