package config

import "time"

// Defaults for optional settings
const (
	DefaultEnvironment        = "dev"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultServiceName        = "creadors-bot"
	DefaultVersion            = "dev"
	DefaultControlChannelName = "bot-control"
	DefaultStreamerRoleName   = "streamer"
	DefaultHTTPPort           = 8082
	DefaultTwitchTimeout      = 10 * time.Second
	DefaultDBMaxConns         = 5
	DefaultDBMaxConnIdle      = 5 * time.Minute
	DefaultDBMaxConnLife      = time.Hour
)
