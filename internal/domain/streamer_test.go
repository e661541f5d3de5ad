package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamerRecord_IsIncomplete(t *testing.T) {
	name := "CatSZekely"

	assert.True(t, StreamerRecord{TwitchUsername: "clicli"}.IsIncomplete())
	assert.False(t, StreamerRecord{TwitchUsername: "clicli", DiscordUsername: &name}.IsIncomplete())
}

func TestTwitchChannelURL(t *testing.T) {
	assert.Equal(t, "https://www.twitch.tv/clicli", TwitchChannelURL("clicli"))
}
