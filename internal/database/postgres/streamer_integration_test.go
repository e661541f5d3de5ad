package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

func strPtr(s string) *string { return &s }

func twitchNames(pairs []domain.StreamerPair) []string {
	names := make([]string, 0, len(pairs))
	for _, p := range pairs {
		names = append(names, p.TwitchUsername)
	}
	return names
}

func TestStreamerRepository_Integration(t *testing.T) {
	repo := setupStreamerRepo(t)
	ctx := context.Background()

	t.Run("AddAndListByGroup", func(t *testing.T) {
		err := repo.AddStreamer(ctx, domain.StreamerRecord{
			TwitchUsername:    "clicli",
			TwitchUserUID:     strPtr("1001"),
			DiscordUsername:   strPtr("CatSZekely"),
			DiscordUserUID:    strPtr("42"),
			DiscordChannelUID: "guild-a",
		})
		require.NoError(t, err)

		pairs, err := repo.ListStreamersByGroup(ctx, "guild-a")
		require.NoError(t, err)
		assert.Equal(t, []domain.StreamerPair{{DiscordUsername: "CatSZekely", TwitchUsername: "clicli"}}, pairs)
	})

	t.Run("DuplicateKeyLeavesStoreUnchanged", func(t *testing.T) {
		err := repo.AddStreamer(ctx, domain.StreamerRecord{
			TwitchUsername:    "clicli",
			DiscordUsername:   strPtr("Someone"),
			DiscordUserUID:    strPtr("43"),
			DiscordChannelUID: "guild-a",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)

		pairs, err := repo.ListStreamersByGroup(ctx, "guild-a")
		require.NoError(t, err)
		assert.Equal(t, []domain.StreamerPair{{DiscordUsername: "CatSZekely", TwitchUsername: "clicli"}}, pairs)
	})

	t.Run("SameLoginInAnotherGroup", func(t *testing.T) {
		err := repo.AddStreamer(ctx, domain.StreamerRecord{
			TwitchUsername:    "clicli",
			DiscordChannelUID: "guild-b",
		})
		require.NoError(t, err)

		pairs, err := repo.ListStreamersByGroup(ctx, "guild-b")
		require.NoError(t, err)
		assert.Equal(t, []string{"clicli"}, twitchNames(pairs))
		assert.Equal(t, "", pairs[0].DiscordUsername)
	})

	t.Run("ListIncompleteForGroup", func(t *testing.T) {
		require.NoError(t, repo.AddStreamer(ctx, domain.StreamerRecord{
			TwitchUsername:    "orphan",
			DiscordChannelUID: "guild-a",
		}))

		incomplete, err := repo.ListIncompleteForGroup(ctx, "guild-a")
		require.NoError(t, err)
		require.Len(t, incomplete, 1)
		assert.Equal(t, "orphan", incomplete[0].TwitchUsername)
		for _, rec := range incomplete {
			assert.Nil(t, rec.DiscordUsername)
			assert.True(t, rec.IsIncomplete())
		}
	})

	t.Run("ListStreamersByDiscordUsers", func(t *testing.T) {
		pairs, err := repo.ListStreamersByDiscordUsers(ctx, []string{"CatSZekely", "Nobody"})
		require.NoError(t, err)
		assert.Equal(t, []string{"clicli"}, twitchNames(pairs))

		empty, err := repo.ListStreamersByDiscordUsers(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("RemoveIsScopedToGroup", func(t *testing.T) {
		require.NoError(t, repo.RemoveStreamer(ctx, "clicli", "guild-b"))

		b, err := repo.ListStreamersByGroup(ctx, "guild-b")
		require.NoError(t, err)
		assert.Empty(t, b)

		a, err := repo.ListStreamersByGroup(ctx, "guild-a")
		require.NoError(t, err)
		assert.Contains(t, twitchNames(a), "clicli")
	})

	t.Run("RemoveMissingIsNoop", func(t *testing.T) {
		assert.NoError(t, repo.RemoveStreamer(ctx, "ghost", "guild-a"))
	})

	t.Run("ClearAllRemovesEveryGroup", func(t *testing.T) {
		require.NoError(t, repo.AddStreamer(ctx, domain.StreamerRecord{
			TwitchUsername:    "other",
			DiscordChannelUID: "guild-c",
		}))

		require.NoError(t, repo.ClearAll(ctx))

		n, err := repo.CountStreamers(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}
