package repository

import (
	"context"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

// Streamer defines persistence for the streamer registry.
// All queries except ClearAll and ListStreamersByDiscordUsers are scoped to a guild.
type Streamer interface {
	// AddStreamer inserts a record; returns domain.ErrDuplicateKey when
	// (TwitchUsername, DiscordChannelUID) is already present.
	AddStreamer(ctx context.Context, rec domain.StreamerRecord) error
	// RemoveStreamer deletes the record for (twitchUsername, groupID). Absent rows are not an error.
	RemoveStreamer(ctx context.Context, twitchUsername, groupID string) error
	// ClearAll deletes every record of every guild.
	ClearAll(ctx context.Context) error

	ListStreamersByDiscordUsers(ctx context.Context, discordUsernames []string) ([]domain.StreamerPair, error)
	ListStreamersByGroup(ctx context.Context, groupID string) ([]domain.StreamerPair, error)
	ListIncompleteForGroup(ctx context.Context, groupID string) ([]domain.StreamerRecord, error)

	CountStreamers(ctx context.Context) (int, error)
}
