package discord

// Discord API limits
const (
	MaxUserGuilds        = 200
	MemberPageSize       = 1000
	MaxEmbedDescription  = 4096
	TruncationSuffix     = "\n…"
	FooterCreadorsBot    = "CreadorsBot"
	OptionTwitchUsername = "twitch_username"
	OptionMember         = "member"
)

// Log Messages
const (
	LogMsgBotReady           = "Bot is ready"
	LogMsgControlResolved    = "Control channel resolved"
	LogMsgControlUnresolved  = "Control channel could not be resolved, all commands will be rejected"
	LogMsgCommandRejected    = "Command rejected"
	LogMsgUnknownCommand     = "Unknown command"
	LogMsgCommandFailed      = "Command failed"
	LogMsgRespondFailed      = "Failed to edit interaction response"
	LogMsgDeferFailed        = "Failed to send deferred response"
	LogMsgCommandsRegistered = "Commands updated successfully"
)
