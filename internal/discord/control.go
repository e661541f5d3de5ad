package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
)

// ControlContext is the guild, control channel and streamer role resolved once on Ready.
// It is never mutated after resolution; a new value replaces it on reconnect.
type ControlContext struct {
	GuildName   string
	GuildID     string
	ChannelName string
	ChannelID   string
	RoleName    string
	RoleID      string
}

// Resolved reports whether the control channel is known.
func (c *ControlContext) Resolved() bool {
	return c != nil && c.ChannelID != ""
}

// ResolveControlContext looks up the guild, control channel and streamer role by name.
// The returned context is never nil. When the guild or channel cannot be found the
// error wraps domain.ErrChannelUnresolved and the context stays unresolved.
func ResolveControlContext(s *discordgo.Session, guildName, channelName, roleName string) (*ControlContext, error) {
	cc := &ControlContext{
		GuildName:   guildName,
		ChannelName: channelName,
		RoleName:    roleName,
	}

	guilds, err := s.UserGuilds(MaxUserGuilds, "", "", false)
	if err != nil {
		return cc, fmt.Errorf("%w: list guilds: %w", domain.ErrChannelUnresolved, err)
	}
	for _, g := range guilds {
		if g.Name == guildName {
			cc.GuildID = g.ID
			break
		}
	}
	if cc.GuildID == "" {
		return cc, fmt.Errorf("%w: guild %q not found", domain.ErrChannelUnresolved, guildName)
	}

	channels, err := s.GuildChannels(cc.GuildID)
	if err != nil {
		return cc, fmt.Errorf("%w: list channels: %w", domain.ErrChannelUnresolved, err)
	}
	for _, ch := range channels {
		if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == channelName {
			cc.ChannelID = ch.ID
			break
		}
	}
	if cc.ChannelID == "" {
		return cc, fmt.Errorf("%w: channel %q not found in guild %q", domain.ErrChannelUnresolved, channelName, guildName)
	}

	// A missing role only empties the role-based listings.
	if roles, err := s.GuildRoles(cc.GuildID); err == nil {
		if role := findRole(roles, roleName); role != nil {
			cc.RoleID = role.ID
		}
	}

	return cc, nil
}

func findRole(roles []*discordgo.Role, name string) *discordgo.Role {
	for _, r := range roles {
		if r.Name == name {
			return r
		}
	}
	return nil
}
