package discord

// Friendly message constants for Discord responses
const (
	MsgAddedLinked    = "Added %s -> %s to db"
	MsgAddedUnlinked  = "Added %s to db"
	MsgRemoved        = "Removed %s from db"
	MsgCleared        = "db cleared"
	MsgRoleEmpty      = "I couldn't find any members in role %s. It's an error :("
	MsgMissingLogin   = "❓ **Missing Twitch username**"
	MsgDuplicate      = "⚠️ **Already Registered**\nThat Twitch username is already registered in this server."
	MsgInvalidLogin   = "❓ **Invalid Twitch username**\nUse 1-25 letters, digits or underscores."
	MsgUnsubscribeErr = "📡 **Twitch did not confirm the unsubscribe**\nThe streamer is still registered, try again later."
	MsgGenericError   = "❌ Something went wrong."
)

// Embed titles
const (
	TitleStreamers           = "Streamers"
	TitleRegistered          = "Streamers in this server"
	TitleIncomplete          = "Streamers without twitch"
	TitleUnlinkedRoleMembers = "Role members without a registration"
	TitleAdded               = "Streamer added"
	TitleRemoved             = "Streamer removed"
	TitleCleared             = "Registry cleared"
)

// Embed colors
const (
	ColorInfo    = 0x9146FF
	ColorSuccess = 0x2ecc71
	ColorWarning = 0xf39c12
)

// NineNineQuotes are the replies of the 99 command.
var NineNineQuotes = []string{
	"I'm the human form of the ???? emoji.",
	"Bingpot!",
	"Cool. Cool cool cool cool cool cool cool, no doubt no doubt no doubt no doubt.",
}
