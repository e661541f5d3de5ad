package registry

import "time"

// DefaultGatewayTimeout bounds each Twitch gateway call when no timeout is configured.
const DefaultGatewayTimeout = 10 * time.Second

// TracerName is the OpenTelemetry tracer used for registry spans.
const TracerName = "creadors-bot/registry"

// MaxTwitchLoginLength is the longest login Twitch accepts.
const MaxTwitchLoginLength = 25

// Formatting
const (
	// MsgNoStreamersFound replaces an empty list so the reply is never blank.
	MsgNoStreamersFound = "No streamers found."

	// UnlinkedPlaceholder stands in for the Discord side of an incomplete record.
	UnlinkedPlaceholder = "(unlinked)"

	PairSeparator = " : "
)

// Log Messages
const (
	LogMsgLookupFailed        = "Twitch id lookup failed, continuing registration without twitch id"
	LogMsgSubscribeFailed     = "Live notification subscription failed"
	LogMsgUnsubscribeFailed   = "Unsubscribe failed, streamer kept in registry"
	LogMsgUnsubscribeAllError = "Unsubscribe-all failed, clearing registry anyway"
	LogMsgStreamerAdded       = "Streamer registered"
	LogMsgStreamerRemoved     = "Streamer removed"
	LogMsgRegistryCleared     = "Registry cleared"
)

// Log Context Keys
const (
	LogKeyTwitchUsername = "twitch_username"
	LogKeyTwitchUserUID  = "twitch_user_uid"
	LogKeyGroupID        = "group_id"
	LogKeyDiscordUser    = "discord_username"
	LogKeyError          = "error"
)
