package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	ServiceName string
	Version     string

	// Discord
	DiscordToken              string `validate:"required"`
	DiscordAppID              string `validate:"required"`
	DiscordGuild              string `validate:"required"`
	DiscordControlChannelName string `validate:"required"`
	DiscordStreamerRoleName   string `validate:"required"`
	DiscordForceCommandUpdate bool

	// Database
	DBUser        string `validate:"required"`
	DBPassword    string
	DBHost        string `validate:"required"`
	DBPort        string `validate:"required,numeric"`
	DBName        string `validate:"required"`
	DBMaxConns    int    `validate:"min=1"`
	DBMaxConnIdle time.Duration
	DBMaxConnLife time.Duration

	// Twitch
	TwitchClientID      string        `validate:"required"`
	TwitchClientSecret  string        `validate:"required"`
	TwitchCallbackURL   string        `validate:"required,url"`
	TwitchWebhookSecret string        `validate:"required,min=10,max=100"`
	TwitchTimeout       time.Duration `validate:"gt=0"`

	// Internal HTTP server (EventSub callback, health, metrics)
	HTTPPort int `validate:"min=1,max=65535"`

	// Tracing is disabled when empty
	OTLPEndpoint string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),

		DiscordToken:              getEnv("DISCORD_TOKEN", ""),
		DiscordAppID:              getEnv("DISCORD_APP_ID", ""),
		DiscordGuild:              getEnv("DISCORD_GUILD", ""),
		DiscordControlChannelName: getEnv("DISCORD_CONTROL_CHANNEL", DefaultControlChannelName),
		DiscordStreamerRoleName:   getEnv("DISCORD_STREAMER_ROLE", DefaultStreamerRoleName),
		DiscordForceCommandUpdate: getEnv("DISCORD_FORCE_COMMAND_UPDATE", "") == "true",

		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "creadors"),
		DBMaxConns:    getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdle: getEnvAsDuration("DB_MAX_CONN_IDLE", DefaultDBMaxConnIdle),
		DBMaxConnLife: getEnvAsDuration("DB_MAX_CONN_LIFE", DefaultDBMaxConnLife),

		TwitchClientID:      getEnv("TWITCH_CLIENT_ID", ""),
		TwitchClientSecret:  getEnv("TWITCH_CLIENT_SECRET", ""),
		TwitchCallbackURL:   getEnv("TWITCH_CALLBACK_URL", ""),
		TwitchWebhookSecret: getEnv("TWITCH_WEBHOOK_SECRET", ""),
		TwitchTimeout:       getEnvAsDuration("TWITCH_TIMEOUT", DefaultTwitchTimeout),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	portStr := getEnv("HTTP_PORT", strconv.Itoa(DefaultHTTPPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_PORT value: %w", err)
	}
	cfg.HTTPPort = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags and reports every offending field in one error.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s (%s)", e.Field(), e.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to defaultValue when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration, falling back to defaultValue when unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
