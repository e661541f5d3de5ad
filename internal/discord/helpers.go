package discord

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
	"github.com/osse101/CreadorsBot_Go/internal/metrics"
)

// Guard rejection reasons used as metric labels
const (
	ReasonChannelUnresolved = "channel_unresolved"
	ReasonWrongChannel      = "wrong_channel"
	ReasonPermissionDenied  = "permission_denied"
	ReasonOther             = "other"
)

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrChannelUnresolved):
		return ReasonChannelUnresolved
	case errors.Is(err, domain.ErrWrongChannel):
		return ReasonWrongChannel
	case errors.Is(err, domain.ErrPermissionDenied):
		return ReasonPermissionDenied
	default:
		return ReasonOther
	}
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before any call that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
func deferResponse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// respondError replaces the deferred response with a plain message.
func respondError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
}

// respondFriendlyError logs err, counts the failure and shows the user a readable message.
func respondFriendlyError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, command CommandName, err error) {
	logger.FromContext(ctx).Error(LogMsgCommandFailed, "error", err)
	metrics.CommandsTotal.WithLabelValues(string(command), metrics.OutcomeError).Inc()
	respondError(ctx, s, i, formatFriendlyError(err))
}

// formatFriendlyError maps domain errors to user-facing messages.
func formatFriendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateKey):
		return MsgDuplicate
	case errors.Is(err, domain.ErrInvalidInput):
		return MsgInvalidLogin
	case errors.Is(err, domain.ErrSubscriptionFailed):
		return MsgUnsubscribeErr
	default:
		return MsgGenericError
	}
}

// sendEmbed edits the deferred response into an embed and counts the command as ok.
func sendEmbed(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, command CommandName, embed *discordgo.MessageEmbed) {
	metrics.CommandsTotal.WithLabelValues(string(command), metrics.OutcomeOK).Inc()
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		logger.FromContext(ctx).Error(LogMsgRespondFailed, "error", err)
	}
}

// createEmbed creates a standard embed with the bot footer.
func createEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: truncate(description, MaxEmbedDescription),
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: FooterCreadorsBot,
		},
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	suffix := []rune(TruncationSuffix)
	return string(r[:limit-len(suffix)]) + TruncationSuffix
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
// Always returns a non-nil *discordgo.User.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

// getOptions indexes the command options by name.
func getOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

func optionString(i *discordgo.InteractionCreate, name string) string {
	if o, ok := getOptions(i)[name]; ok {
		return strings.TrimSpace(o.StringValue())
	}
	return ""
}

// optionMember returns the identity and display name of a user option, or nil when absent.
func optionMember(i *discordgo.InteractionCreate, name string) (*domain.ChatIdentity, string) {
	o, ok := getOptions(i)[name]
	if !ok {
		return nil, ""
	}

	user := o.UserValue(nil)
	if user == nil || user.ID == "" {
		return nil, ""
	}

	data := i.ApplicationCommandData()
	if data.Resolved != nil {
		if u, ok := data.Resolved.Users[user.ID]; ok && u != nil {
			user = u
		}
	}

	display := user.Username
	if user.GlobalName != "" {
		display = user.GlobalName
	}
	if data.Resolved != nil {
		if m, ok := data.Resolved.Members[user.ID]; ok && m != nil && m.Nick != "" {
			display = m.Nick
		}
	}

	return &domain.ChatIdentity{Username: user.Username, UserID: user.ID}, display
}
