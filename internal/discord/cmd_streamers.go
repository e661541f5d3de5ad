package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/registry"
)

// StreamersCommand lists members of the streamer role cross-referenced with the registry.
func StreamersCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        string(CommandStreamers),
			Description: "List streamer role members and their Twitch channels",
		},
		Guards: queryGuards,
		Handler: func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
			if !deferResponse(ctx, s, i) {
				return
			}

			members, err := deps.Members.RoleMembers(i.GuildID, deps.Control.RoleName)
			if err != nil {
				respondFriendlyError(ctx, s, i, CommandStreamers, err)
				return
			}
			if len(members) == 0 {
				sendEmbed(ctx, s, i, CommandStreamers,
					createEmbed(TitleStreamers, fmt.Sprintf(MsgRoleEmpty, deps.Control.RoleName), ColorWarning))
				return
			}

			pairs, err := deps.Service.ListStreamersByDiscordUsers(ctx, members)
			if err != nil {
				respondFriendlyError(ctx, s, i, CommandStreamers, err)
				return
			}
			sendEmbed(ctx, s, i, CommandStreamers,
				createEmbed(TitleStreamers, registry.FormatStreamerList(pairs), ColorInfo))
		},
	}
}

// TwitchCommand lists every registration of the invoking guild.
func TwitchCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        string(CommandTwitch),
			Description: "List every Twitch channel registered in this server",
		},
		Guards: queryGuards,
		Handler: func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
			if !deferResponse(ctx, s, i) {
				return
			}

			pairs, err := deps.Service.ListStreamersByGroup(ctx, i.GuildID)
			if err != nil {
				respondFriendlyError(ctx, s, i, CommandTwitch, err)
				return
			}
			sendEmbed(ctx, s, i, CommandTwitch,
				createEmbed(TitleRegistered, registry.FormatStreamerList(pairs), ColorInfo))
		},
	}
}

// FailStreamersCommand lists registrations without a linked member and
// role members that have no registration.
func FailStreamersCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        string(CommandFailStreamers),
			Description: "List streamers missing a Discord or Twitch link",
		},
		Guards: queryGuards,
		Handler: func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
			if !deferResponse(ctx, s, i) {
				return
			}

			members, err := deps.Members.RoleMembers(i.GuildID, deps.Control.RoleName)
			if err != nil {
				respondFriendlyError(ctx, s, i, CommandFailStreamers, err)
				return
			}
			if len(members) == 0 {
				sendEmbed(ctx, s, i, CommandFailStreamers,
					createEmbed(TitleIncomplete, fmt.Sprintf(MsgRoleEmpty, deps.Control.RoleName), ColorWarning))
				return
			}

			incomplete, err := deps.Service.ListIncompleteForGroup(ctx, i.GuildID)
			if err != nil {
				respondFriendlyError(ctx, s, i, CommandFailStreamers, err)
				return
			}
			linked, err := deps.Service.ListStreamersByDiscordUsers(ctx, members)
			if err != nil {
				respondFriendlyError(ctx, s, i, CommandFailStreamers, err)
				return
			}

			var b strings.Builder
			b.WriteString("**" + TitleIncomplete + "**\n")
			b.WriteString(registry.FormatNameList(registry.IncompleteLogins(incomplete)))
			b.WriteString("\n\n**" + TitleUnlinkedRoleMembers + "**\n")
			b.WriteString(registry.FormatNameList(registry.UnlinkedMembers(members, linked)))

			sendEmbed(ctx, s, i, CommandFailStreamers,
				createEmbed(TitleIncomplete, b.String(), ColorWarning))
		},
	}
}
