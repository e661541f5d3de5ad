// Package discord serves the streamer registry slash commands and posts
// live notifications to the control channel.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
	"github.com/osse101/CreadorsBot_Go/internal/registry"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	Registry *CommandRegistry
	Service  registry.Service
	Members  MemberDirectory

	cfg     Config
	control atomic.Pointer[ControlContext]

	commandsReceived atomic.Int64
	lastCommandAt    atomic.Int64
}

// Config holds the bot configuration
type Config struct {
	Token              string
	AppID              string
	GuildName          string
	ControlChannelName string
	StreamerRoleName   string
	ForceCommandUpdate bool
}

// New creates a new Discord bot and validates its command table.
func New(cfg Config, svc registry.Service) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	// One interaction at a time, in arrival order.
	s.SyncEvents = true
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	commands := DefaultCommands()
	if err := ValidateCommandTable(commands); err != nil {
		return nil, fmt.Errorf("invalid command table: %w", err)
	}

	b := &Bot{
		Session:  s,
		AppID:    cfg.AppID,
		Registry: commands,
		Service:  svc,
		Members:  &SessionMemberDirectory{Session: s},
		cfg:      cfg,
	}
	b.control.Store(&ControlContext{
		GuildName:   cfg.GuildName,
		ChannelName: cfg.ControlChannelName,
		RoleName:    cfg.StreamerRoleName,
	})
	return b, nil
}

// Start starts the bot
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	if err := b.RegisterCommands(b.Registry, b.cfg.ForceCommandUpdate); err != nil {
		// Previously registered commands keep working.
		slog.Error("Failed to register commands", "error", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop stops the bot
func (b *Bot) Stop() {
	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing Discord session", "error", err)
	}
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

// Control returns the current control context.
func (b *Bot) Control() *ControlContext {
	return b.control.Load()
}

// ControlResolved reports whether commands can currently pass the channel guard.
func (b *Bot) ControlResolved() bool {
	return b.Control().Resolved()
}

// Connected reports whether the gateway session is ready.
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

// CommandsReceived returns the number of interactions seen and the time of the last one.
func (b *Bot) CommandsReceived() (int64, time.Time) {
	var last time.Time
	if ns := b.lastCommandAt.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return b.commandsReceived.Load(), last
}

// Notify posts msg to the control channel.
func (b *Bot) Notify(msg string) error {
	cc := b.Control()
	if !cc.Resolved() {
		return domain.ErrChannelUnresolved
	}
	if _, err := b.Session.ChannelMessageSend(cc.ChannelID, msg); err != nil {
		return fmt.Errorf("failed to post to control channel: %w", err)
	}
	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", r.User.Username)
	b.resolveControl(s)
}

// resolveControl replaces the control context; an unresolved channel blocks every command.
func (b *Bot) resolveControl(s *discordgo.Session) {
	cc, err := ResolveControlContext(s, b.cfg.GuildName, b.cfg.ControlChannelName, b.cfg.StreamerRoleName)
	b.control.Store(cc)

	if err != nil {
		slog.Error(LogMsgControlUnresolved, "error", err)
		return
	}
	slog.Info(LogMsgControlResolved,
		"guild", cc.GuildName, "guild_id", cc.GuildID,
		"channel", cc.ChannelName, "channel_id", cc.ChannelID,
		"role", cc.RoleName, "role_id", cc.RoleID)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.commandsReceived.Add(1)
	b.lastCommandAt.Store(time.Now().UnixNano())

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	b.Registry.Handle(ctx, s, i, b.deps())
}

func (b *Bot) deps() *Deps {
	return &Deps{
		Service: b.Service,
		Members: b.Members,
		Control: b.Control(),
	}
}
