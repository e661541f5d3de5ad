package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

// Guard rejects an interaction before its handler runs.
type Guard func(i *discordgo.InteractionCreate, cc *ControlContext) error

// RequireControlChannel rejects interactions outside the resolved control channel.
// While the channel is unresolved every interaction is rejected.
func RequireControlChannel(i *discordgo.InteractionCreate, cc *ControlContext) error {
	if !cc.Resolved() {
		return fmt.Errorf("%w: %w", domain.ErrWrongChannel, domain.ErrChannelUnresolved)
	}
	if i.ChannelID != cc.ChannelID {
		return domain.ErrWrongChannel
	}
	return nil
}

// RequireAdministrator rejects callers without the Administrator permission.
func RequireAdministrator(i *discordgo.InteractionCreate, _ *ControlContext) error {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
		return domain.ErrPermissionDenied
	}
	return nil
}

// Guard sets shared by the command table.
var (
	queryGuards    = []Guard{RequireControlChannel}
	mutatingGuards = []Guard{RequireControlChannel, RequireAdministrator}
)
