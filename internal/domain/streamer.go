package domain

import "time"

// TwitchChannelURLPrefix is prepended to a login to build its channel URL.
const TwitchChannelURLPrefix = "https://www.twitch.tv/"

// StreamerRecord is one registered Twitch login within a guild.
// The Discord pair is nil for records registered without a linked member.
type StreamerRecord struct {
	TwitchUsername    string    `json:"twitch_username" db:"twitch_username"`
	TwitchUserUID     *string   `json:"twitch_user_uid,omitempty" db:"twitch_user_uid"`
	DiscordUsername   *string   `json:"discord_username,omitempty" db:"discord_username"`
	DiscordUserUID    *string   `json:"discord_user_uid,omitempty" db:"discord_user_uid"`
	DiscordChannelUID string    `json:"discord_channel_uid" db:"discord_channel_uid"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// IsIncomplete reports whether the record has no linked Discord member.
func (r StreamerRecord) IsIncomplete() bool {
	return r.DiscordUsername == nil
}

// StreamerPair is the (discord, twitch) projection used by list queries.
// DiscordUsername is empty when the record has no linked member.
type StreamerPair struct {
	DiscordUsername string `json:"discord_username"`
	TwitchUsername  string `json:"twitch_username"`
}

// ChatIdentity identifies a Discord member.
type ChatIdentity struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

// TwitchChannelURL returns the public channel URL for a login.
func TwitchChannelURL(login string) string {
	return TwitchChannelURLPrefix + login
}
