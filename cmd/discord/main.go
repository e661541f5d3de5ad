package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/osse101/CreadorsBot_Go/internal/bootstrap"
	"github.com/osse101/CreadorsBot_Go/internal/config"
	"github.com/osse101/CreadorsBot_Go/internal/database"
	"github.com/osse101/CreadorsBot_Go/internal/database/postgres"
	"github.com/osse101/CreadorsBot_Go/internal/discord"
	"github.com/osse101/CreadorsBot_Go/internal/registry"
	"github.com/osse101/CreadorsBot_Go/internal/server"
	"github.com/osse101/CreadorsBot_Go/internal/telemetry"
	"github.com/osse101/CreadorsBot_Go/internal/twitch"
	"github.com/osse101/CreadorsBot_Go/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bootstrap.SetupLogger(cfg)

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment check failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn("Environment warning", "warning", w)
	}

	shutdownTracing, err := telemetry.InitTracing(cfg.OTLPEndpoint, cfg.ServiceName, cfg.Version)
	if err != nil {
		slog.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), pool, migrations.FS); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		pool.Close()
		os.Exit(1)
	}

	twitchClient := twitch.NewClient(twitch.Config{
		ClientID:      cfg.TwitchClientID,
		ClientSecret:  cfg.TwitchClientSecret,
		CallbackURL:   cfg.TwitchCallbackURL,
		WebhookSecret: cfg.TwitchWebhookSecret,
	})

	svc := registry.NewService(postgres.NewStreamerRepository(pool), twitchClient, cfg.TwitchTimeout)

	bot, err := discord.New(discord.Config{
		Token:              cfg.DiscordToken,
		AppID:              cfg.DiscordAppID,
		GuildName:          cfg.DiscordGuild,
		ControlChannelName: cfg.DiscordControlChannelName,
		StreamerRoleName:   cfg.DiscordStreamerRoleName,
		ForceCommandUpdate: cfg.DiscordForceCommandUpdate,
	}, svc)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		pool.Close()
		os.Exit(1)
	}

	webhook := twitch.NewWebhookHandler(cfg.TwitchWebhookSecret, bot)
	srv := server.NewServer(cfg.HTTPPort, pool, bot, svc, webhook)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
		}
	}()

	// Blocks until SIGINT/SIGTERM.
	runErr := bot.Run()

	ctx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:  srv,
		Pool:    pool,
		Tracing: shutdownTracing,
	})
	cancel()

	if runErr != nil {
		slog.Error("Bot failed", "error", runErr)
		os.Exit(1)
	}
}
