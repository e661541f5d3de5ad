package bootstrap

import (
	"io"
	"log/slog"
	"os"

	"github.com/osse101/CreadorsBot_Go/internal/config"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
)

// SetupLogger installs the slog default described by cfg, writing to stdout.
func SetupLogger(cfg *config.Config) {
	SetupLoggerWithWriter(cfg, os.Stdout)
}

// SetupLoggerWithWriter is SetupLogger with an explicit destination.
func SetupLoggerWithWriter(cfg *config.Config, w io.Writer) {
	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.Environment == "dev" || cfg.Environment == "development",
	), w)

	slog.Info(LogMsgStarting,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"http_port", cfg.HTTPPort,
		"guild", cfg.DiscordGuild,
		"control_channel", cfg.DiscordControlChannelName,
		"streamer_role", cfg.DiscordStreamerRoleName)
}
