package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
	"github.com/osse101/CreadorsBot_Go/internal/metrics"
	"github.com/osse101/CreadorsBot_Go/internal/repository"
	"github.com/osse101/CreadorsBot_Go/internal/telemetry"
)

// Subscriptions is the streaming-platform side of the registry:
// identity lookup and live-notification subscriptions.
type Subscriptions interface {
	ResolveIdentity(ctx context.Context, login string) (string, error)
	Subscribe(ctx context.Context, login string) error
	Unsubscribe(ctx context.Context, login string) error
	UnsubscribeAll(ctx context.Context) error
}

// Service defines the registry operations used by the command layer
type Service interface {
	AddStreamer(ctx context.Context, twitchUsername string, caller *domain.ChatIdentity, groupID string) (*domain.StreamerRecord, error)
	RemoveStreamer(ctx context.Context, twitchUsername, groupID string) error
	ClearAll(ctx context.Context) error

	ListStreamersByDiscordUsers(ctx context.Context, discordUsernames []string) ([]domain.StreamerPair, error)
	ListStreamersByGroup(ctx context.Context, groupID string) ([]domain.StreamerPair, error)
	ListIncompleteForGroup(ctx context.Context, groupID string) ([]domain.StreamerRecord, error)
	CountStreamers(ctx context.Context) (int, error)
}

type service struct {
	repo    repository.Streamer
	subs    Subscriptions
	timeout time.Duration
}

// NewService creates a registry service. A non-positive timeout falls back to DefaultGatewayTimeout.
func NewService(repo repository.Streamer, subs Subscriptions, timeout time.Duration) Service {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &service{
		repo:    repo,
		subs:    subs,
		timeout: timeout,
	}
}

// gatewayCall runs fn under the configured timeout and records its outcome.
func (s *service) gatewayCall(ctx context.Context, operation string, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := fn(callCtx)
	if err == nil && callCtx.Err() != nil {
		err = callCtx.Err()
	}
	metrics.RecordGatewayCall(operation, err)
	return err
}

func (s *service) AddStreamer(ctx context.Context, twitchUsername string, caller *domain.ChatIdentity, groupID string) (rec *domain.StreamerRecord, err error) {
	login := NormalizeLogin(twitchUsername)
	ctx, span := telemetry.StartSpan(ctx, TracerName, "registry.AddStreamer",
		attribute.String(LogKeyTwitchUsername, login),
		attribute.String(LogKeyGroupID, groupID),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	log := logger.FromContext(ctx).With(LogKeyTwitchUsername, login, LogKeyGroupID, groupID)

	if err := ValidateLogin(login); err != nil {
		return nil, err
	}

	record := domain.StreamerRecord{
		TwitchUsername:    login,
		DiscordChannelUID: groupID,
	}
	if caller != nil {
		username, userID := caller.Username, caller.UserID
		record.DiscordUsername = &username
		record.DiscordUserUID = &userID
		log = log.With(LogKeyDiscordUser, username)
	}

	var uid string
	lookupErr := s.gatewayCall(ctx, metrics.OperationResolve, func(callCtx context.Context) error {
		var resolveErr error
		uid, resolveErr = s.subs.ResolveIdentity(callCtx, login)
		return resolveErr
	})
	if lookupErr != nil {
		log.Warn(LogMsgLookupFailed, LogKeyError, lookupErr)
	} else {
		record.TwitchUserUID = &uid
	}

	if err := s.repo.AddStreamer(ctx, record); err != nil {
		return nil, err
	}
	log.Info(LogMsgStreamerAdded, LogKeyTwitchUserUID, uid)

	// Registration stands even when the subscription does not.
	subErr := s.gatewayCall(ctx, metrics.OperationSubscribe, func(callCtx context.Context) error {
		return s.subs.Subscribe(callCtx, login)
	})
	if subErr != nil {
		log.Warn(LogMsgSubscribeFailed, LogKeyError, subErr)
	}

	return &record, nil
}

func (s *service) RemoveStreamer(ctx context.Context, twitchUsername, groupID string) (err error) {
	login := NormalizeLogin(twitchUsername)
	ctx, span := telemetry.StartSpan(ctx, TracerName, "registry.RemoveStreamer",
		attribute.String(LogKeyTwitchUsername, login),
		attribute.String(LogKeyGroupID, groupID),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	log := logger.FromContext(ctx).With(LogKeyTwitchUsername, login, LogKeyGroupID, groupID)

	if err := ValidateLogin(login); err != nil {
		return err
	}

	unsubErr := s.gatewayCall(ctx, metrics.OperationUnsubscribe, func(callCtx context.Context) error {
		return s.subs.Unsubscribe(callCtx, login)
	})
	if unsubErr != nil {
		log.Warn(LogMsgUnsubscribeFailed, LogKeyError, unsubErr)
		if errors.Is(unsubErr, domain.ErrSubscriptionFailed) {
			return unsubErr
		}
		return fmt.Errorf("%w: %s: %w", domain.ErrSubscriptionFailed, login, unsubErr)
	}

	if err := s.repo.RemoveStreamer(ctx, login, groupID); err != nil {
		return err
	}
	log.Info(LogMsgStreamerRemoved)
	return nil
}

func (s *service) ClearAll(ctx context.Context) (err error) {
	ctx, span := telemetry.StartSpan(ctx, TracerName, "registry.ClearAll")
	defer func() { telemetry.EndSpan(span, err) }()

	log := logger.FromContext(ctx)

	unsubErr := s.gatewayCall(ctx, metrics.OperationUnsubscribeAll, s.subs.UnsubscribeAll)
	if unsubErr != nil {
		log.Warn(LogMsgUnsubscribeAllError, LogKeyError, unsubErr)
	}

	if err := s.repo.ClearAll(ctx); err != nil {
		return err
	}
	log.Info(LogMsgRegistryCleared)
	return nil
}

func (s *service) ListStreamersByDiscordUsers(ctx context.Context, discordUsernames []string) ([]domain.StreamerPair, error) {
	ctx, span := telemetry.StartSpan(ctx, TracerName, "registry.ListStreamersByDiscordUsers",
		attribute.Int("discord.usernames", len(discordUsernames)),
	)
	pairs, err := s.repo.ListStreamersByDiscordUsers(ctx, discordUsernames)
	telemetry.EndSpan(span, err)
	return pairs, err
}

func (s *service) ListStreamersByGroup(ctx context.Context, groupID string) ([]domain.StreamerPair, error) {
	ctx, span := telemetry.StartSpan(ctx, TracerName, "registry.ListStreamersByGroup",
		attribute.String(LogKeyGroupID, groupID),
	)
	pairs, err := s.repo.ListStreamersByGroup(ctx, groupID)
	telemetry.EndSpan(span, err)
	return pairs, err
}

func (s *service) ListIncompleteForGroup(ctx context.Context, groupID string) ([]domain.StreamerRecord, error) {
	ctx, span := telemetry.StartSpan(ctx, TracerName, "registry.ListIncompleteForGroup",
		attribute.String(LogKeyGroupID, groupID),
	)
	records, err := s.repo.ListIncompleteForGroup(ctx, groupID)
	telemetry.EndSpan(span, err)
	return records, err
}

func (s *service) CountStreamers(ctx context.Context) (int, error) {
	return s.repo.CountStreamers(ctx)
}
