package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
	"github.com/osse101/CreadorsBot_Go/internal/registry"
)

var adminPermission int64 = discordgo.PermissionAdministrator

func streamerOptions(action string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        OptionTwitchUsername,
			Description: "Twitch username to " + action,
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        OptionMember,
			Description: "Discord member who owns the channel",
			Required:    false,
		},
	}
}

// AddStreamerCommand registers a Twitch login, optionally linked to a member, and subscribes to it.
func AddStreamerCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:                     string(CommandAddStreamer),
			Description:              "Register a Twitch channel for live notifications",
			DefaultMemberPermissions: &adminPermission,
			Options:                  streamerOptions("register"),
		},
		Guards: mutatingGuards,
		Handler: func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
			if !deferResponse(ctx, s, i) {
				return
			}

			login := optionString(i, OptionTwitchUsername)
			if login == "" {
				respondError(ctx, s, i, MsgMissingLogin)
				return
			}
			member, display := optionMember(i, OptionMember)

			rec, err := deps.Service.AddStreamer(ctx, login, member, i.GuildID)
			if err != nil {
				respondFriendlyError(ctx, s, i, CommandAddStreamer, err)
				return
			}

			url := domain.TwitchChannelURL(rec.TwitchUsername)
			msg := fmt.Sprintf(MsgAddedUnlinked, url)
			if member != nil {
				msg = fmt.Sprintf(MsgAddedLinked, display, url)
			}
			sendEmbed(ctx, s, i, CommandAddStreamer, createEmbed(TitleAdded, msg, ColorSuccess))
		},
	}
}

// RemoveStreamerCommand unsubscribes a Twitch login and, only if that worked, deletes it.
func RemoveStreamerCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:                     string(CommandRemoveStreamer),
			Description:              "Stop live notifications for a Twitch channel",
			DefaultMemberPermissions: &adminPermission,
			Options:                  streamerOptions("remove"),
		},
		Guards: mutatingGuards,
		Handler: func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
			if !deferResponse(ctx, s, i) {
				return
			}

			login := optionString(i, OptionTwitchUsername)
			if login == "" {
				respondError(ctx, s, i, MsgMissingLogin)
				return
			}
			if member, _ := optionMember(i, OptionMember); member != nil {
				logger.FromContext(ctx).Debug("Removing streamer", "twitch_username", login, "member", member.Username)
			}

			if err := deps.Service.RemoveStreamer(ctx, login, i.GuildID); err != nil {
				respondFriendlyError(ctx, s, i, CommandRemoveStreamer, err)
				return
			}

			msg := fmt.Sprintf(MsgRemoved, domain.TwitchChannelURL(registry.NormalizeLogin(login)))
			sendEmbed(ctx, s, i, CommandRemoveStreamer, createEmbed(TitleRemoved, msg, ColorSuccess))
		},
	}
}

// ClearDBCommand unsubscribes everything and wipes the registry of every guild.
func ClearDBCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:                     string(CommandClearDB),
			Description:              "Unsubscribe everything and clear the streamer registry",
			DefaultMemberPermissions: &adminPermission,
		},
		Guards: mutatingGuards,
		Handler: func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
			if !deferResponse(ctx, s, i) {
				return
			}

			if err := deps.Service.ClearAll(ctx); err != nil {
				respondFriendlyError(ctx, s, i, CommandClearDB, err)
				return
			}
			sendEmbed(ctx, s, i, CommandClearDB, createEmbed(TitleCleared, MsgCleared, ColorWarning))
		},
	}
}
