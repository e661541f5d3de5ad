package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/logger"
	"github.com/osse101/CreadorsBot_Go/internal/metrics"
)

// NineNineCommand replies with a random Brooklyn 99 quote.
func NineNineCommand() *Command {
	return &Command{
		Definition: &discordgo.ApplicationCommand{
			Name:        string(CommandNineNine),
			Description: "Responds with a random quote from Brooklyn 99",
		},
		Guards: queryGuards,
		Handler: func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
			quote := NineNineQuotes[deps.intn(len(NineNineQuotes))]
			if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Content: quote,
				},
			}); err != nil {
				logger.FromContext(ctx).Error("Failed to respond to 99", "error", err)
				return
			}
			metrics.CommandsTotal.WithLabelValues(string(CommandNineNine), metrics.OutcomeOK).Inc()
		},
	}
}
