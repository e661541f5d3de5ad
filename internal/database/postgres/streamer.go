package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
)

// StreamerRepository implements repository.Streamer
type StreamerRepository struct {
	db *pgxpool.Pool
}

// NewStreamerRepository creates a new streamer repository
func NewStreamerRepository(db *pgxpool.Pool) *StreamerRepository {
	return &StreamerRepository{db: db}
}

// AddStreamer inserts a streamer record
func (r *StreamerRepository) AddStreamer(ctx context.Context, rec domain.StreamerRecord) error {
	query := `
		INSERT INTO streamers (twitch_username, twitch_user_uid, discord_username, discord_user_uid, discord_channel_uid)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		rec.TwitchUsername,
		rec.TwitchUserUID,
		rec.DiscordUsername,
		rec.DiscordUserUID,
		rec.DiscordChannelUID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, rec.TwitchUsername)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertStreamer, err)
	}
	return nil
}

// RemoveStreamer deletes the streamer registered in a guild
func (r *StreamerRepository) RemoveStreamer(ctx context.Context, twitchUsername, groupID string) error {
	query := `
		DELETE FROM streamers
		WHERE twitch_username = $1 AND discord_channel_uid = $2
	`
	tag, err := r.db.Exec(ctx, query, twitchUsername, groupID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStreamer, err)
	}
	if tag.RowsAffected() == 0 {
		logger.FromContext(ctx).Debug("No streamer row to delete", "twitch_username", twitchUsername, "group_id", groupID)
	}
	return nil
}

// ClearAll deletes every streamer of every guild
func (r *StreamerRepository) ClearAll(ctx context.Context) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM streamers`)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToClearStreamers, err)
	}
	logger.FromContext(ctx).Info("Streamer table cleared", "rows", tag.RowsAffected())
	return nil
}

// ListStreamersByDiscordUsers returns the pairs linked to any of the given Discord usernames, across guilds
func (r *StreamerRepository) ListStreamersByDiscordUsers(ctx context.Context, discordUsernames []string) ([]domain.StreamerPair, error) {
	if len(discordUsernames) == 0 {
		return []domain.StreamerPair{}, nil
	}
	query := `
		SELECT COALESCE(discord_username, ''), twitch_username
		FROM streamers
		WHERE discord_username = ANY($1)
		ORDER BY created_at, twitch_username
	`
	return r.queryPairs(ctx, query, discordUsernames)
}

// ListStreamersByGroup returns every pair registered in a guild
func (r *StreamerRepository) ListStreamersByGroup(ctx context.Context, groupID string) ([]domain.StreamerPair, error) {
	query := `
		SELECT COALESCE(discord_username, ''), twitch_username
		FROM streamers
		WHERE discord_channel_uid = $1
		ORDER BY created_at, twitch_username
	`
	return r.queryPairs(ctx, query, groupID)
}

// ListIncompleteForGroup returns the guild's records that have no linked Discord member
func (r *StreamerRepository) ListIncompleteForGroup(ctx context.Context, groupID string) ([]domain.StreamerRecord, error) {
	query := `
		SELECT twitch_username, twitch_user_uid, discord_username, discord_user_uid, discord_channel_uid, created_at
		FROM streamers
		WHERE discord_channel_uid = $1 AND discord_username IS NULL
		ORDER BY created_at, twitch_username
	`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStreamers, err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StreamerRecord, error) {
		var rec domain.StreamerRecord
		err := row.Scan(
			&rec.TwitchUsername,
			&rec.TwitchUserUID,
			&rec.DiscordUsername,
			&rec.DiscordUserUID,
			&rec.DiscordChannelUID,
			&rec.CreatedAt,
		)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanStreamers, err)
	}
	return records, nil
}

// CountStreamers returns the number of registered streamers across all guilds
func (r *StreamerRepository) CountStreamers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM streamers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountStreamers, err)
	}
	return n, nil
}

func (r *StreamerRepository) queryPairs(ctx context.Context, query string, args ...any) ([]domain.StreamerPair, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStreamers, err)
	}
	pairs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StreamerPair, error) {
		var p domain.StreamerPair
		err := row.Scan(&p.DiscordUsername, &p.TwitchUsername)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanStreamers, err)
	}
	return pairs, nil
}
