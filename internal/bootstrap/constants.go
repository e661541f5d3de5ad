package bootstrap

import "time"

// ShutdownTimeout bounds the whole GracefulShutdown sequence.
const ShutdownTimeout = 10 * time.Second

// Log messages
const (
	LogMsgStarting             = "Starting CreadorsBot"
	LogMsgConfigLoaded         = "Configuration loaded"
	LogMsgShuttingDown         = "Shutting down..."
	LogMsgServerForcedShutdown = "HTTP server forced to shutdown"
	LogMsgShutdownComplete     = "Shutdown complete"
)
