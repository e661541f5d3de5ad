package discord

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/logger"
	"github.com/osse101/CreadorsBot_Go/internal/metrics"
	"github.com/osse101/CreadorsBot_Go/internal/registry"
)

// CommandName is the closed set of slash commands the bot serves.
type CommandName string

const (
	CommandStreamers      CommandName = "streamers"
	CommandTwitch         CommandName = "twitch"
	CommandFailStreamers  CommandName = "failstreamers"
	CommandAddStreamer    CommandName = "addstreamer"
	CommandRemoveStreamer CommandName = "removestreamer"
	CommandClearDB        CommandName = "cleardb"
	CommandNineNine       CommandName = "99"
)

// AllCommands lists every CommandName; the command table must cover exactly this set.
var AllCommands = []CommandName{
	CommandStreamers,
	CommandTwitch,
	CommandFailStreamers,
	CommandAddStreamer,
	CommandRemoveStreamer,
	CommandClearDB,
	CommandNineNine,
}

// Deps carries what handlers need besides the interaction itself.
type Deps struct {
	Service registry.Service
	Members MemberDirectory
	Control *ControlContext

	// Intn picks a random index in [0, n).
	Intn func(n int) int
}

func (d *Deps) intn(n int) int {
	if d.Intn != nil {
		return d.Intn(n)
	}
	return rand.IntN(n)
}

// CommandHandler handles a slash command that passed its guards
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps)

// Command binds a definition to its guards and handler.
type Command struct {
	Definition *discordgo.ApplicationCommand
	Guards     []Guard
	Handler    CommandHandler
}

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[CommandName]*Command
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[CommandName]*Command),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name CommandName, cmd *Command) {
	r.Commands[name] = cmd
}

// DefaultCommands builds the full command table.
func DefaultCommands() *CommandRegistry {
	r := NewCommandRegistry()
	r.Register(CommandStreamers, StreamersCommand())
	r.Register(CommandTwitch, TwitchCommand())
	r.Register(CommandFailStreamers, FailStreamersCommand())
	r.Register(CommandAddStreamer, AddStreamerCommand())
	r.Register(CommandRemoveStreamer, RemoveStreamerCommand())
	r.Register(CommandClearDB, ClearDBCommand())
	r.Register(CommandNineNine, NineNineCommand())
	return r
}

// ValidateCommandTable checks that the table covers AllCommands exactly once,
// with a handler and a definition carrying the same name.
func ValidateCommandTable(r *CommandRegistry) error {
	known := make(map[CommandName]bool, len(AllCommands))
	for _, name := range AllCommands {
		known[name] = true

		cmd, ok := r.Commands[name]
		if !ok || cmd == nil {
			return fmt.Errorf("command %q is not registered", name)
		}
		if cmd.Handler == nil {
			return fmt.Errorf("command %q has no handler", name)
		}
		if cmd.Definition == nil || cmd.Definition.Name != string(name) {
			return fmt.Errorf("command %q has a mismatched definition", name)
		}
	}
	for name := range r.Commands {
		if !known[name] {
			return fmt.Errorf("unknown command %q in table", name)
		}
	}
	return nil
}

// Handle runs the command's guards in order, then its handler.
// A rejected interaction is logged once and gets no response at all.
func (r *CommandRegistry) Handle(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := CommandName(i.ApplicationCommandData().Name)
	log := logger.FromContext(ctx).With("command", string(name), "channel_id", i.ChannelID, "guild_id", i.GuildID)

	cmd, ok := r.Commands[name]
	if !ok {
		log.Warn(LogMsgUnknownCommand)
		return
	}

	for _, guard := range cmd.Guards {
		if err := guard(i, deps.Control); err != nil {
			log.Warn(LogMsgCommandRejected, "reason", err.Error(), "user", getInteractionUser(i).Username)
			metrics.GuardRejectionsTotal.WithLabelValues(string(name), rejectionReason(err)).Inc()
			metrics.CommandsTotal.WithLabelValues(string(name), metrics.OutcomeRejected).Inc()
			return
		}
	}

	cmd.Handler(ctx, s, i, deps)
}

// RegisterCommands intelligently registers/updates commands with Discord
// Only performs updates if commands have changed to avoid rate limits
func (b *Bot) RegisterCommands(cmds *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...")

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(cmds.Commands))
	for _, name := range AllCommands {
		if cmd, ok := cmds.Commands[name]; ok {
			desiredCmds = append(desiredCmds, cmd.Definition)
		}
	}

	if !forceUpdate {
		existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
		if err != nil {
			return fmt.Errorf("failed to fetch existing commands: %w", err)
		}
		if commandsEqual(existingCmds, desiredCmds) {
			slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
			return nil
		}
		slog.Info("Commands changed, updating...", "existing", len(existingCmds), "desired", len(desiredCmds))
	} else {
		slog.Info("Force update enabled - replacing all commands", "count", len(desiredCmds))
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info(LogMsgCommandsRegistered, "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		got, ok := existingMap[want.Name]
		if !ok || !commandEqual(got, want) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	return a.Type == b.Type && a.Name == b.Name && a.Description == b.Description && a.Required == b.Required
}
