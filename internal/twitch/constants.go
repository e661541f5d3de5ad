package twitch

import "time"

// Endpoints
const (
	DefaultHelixBaseURL = "https://api.twitch.tv/helix"
	DefaultTokenURL     = "https://id.twitch.tv/oauth2/token"

	PathUsers         = "/users"
	PathSubscriptions = "/eventsub/subscriptions"

	// CallbackPath is where the bot's HTTP server receives EventSub webhooks.
	CallbackPath = "/eventsub/callback"
)

// EventSub
const (
	SubscriptionTypeStreamOnline = "stream.online"
	SubscriptionVersion          = "1"
	TransportWebhook             = "webhook"

	MessageTypeVerification = "webhook_callback_verification"
	MessageTypeNotification = "notification"
	MessageTypeRevocation   = "revocation"

	HeaderMessageID        = "Twitch-Eventsub-Message-Id"
	HeaderMessageTimestamp = "Twitch-Eventsub-Message-Timestamp"
	HeaderMessageSignature = "Twitch-Eventsub-Message-Signature"
	HeaderMessageType      = "Twitch-Eventsub-Message-Type"

	SignaturePrefix = "sha256="

	// MaxMessageAge rejects replays older than Twitch's documented window.
	MaxMessageAge = 10 * time.Minute

	// MaxClockSkew is how far in the future a message timestamp may be.
	MaxClockSkew = time.Minute

	MaxWebhookBodyBytes = 1 << 20
)

// Caching
const (
	DefaultIDCacheSize = 512
	DefaultIDCacheTTL  = time.Hour

	SeenMessageCacheSize = 1024
	SeenMessageTTL       = MaxMessageAge
)

// Headers
const (
	HeaderClientID    = "Client-Id"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// LiveMessageFormat renders the control-channel announcement: login, channel URL.
const LiveMessageFormat = "%s is live! %s"

// Log Messages
const (
	LogMsgSubscribed          = "Subscribed to stream.online"
	LogMsgAlreadySubscribed   = "stream.online subscription already exists"
	LogMsgUnsubscribed        = "Deleted eventsub subscription"
	LogMsgUnknownBroadcaster  = "Login unknown to Twitch, no subscription to delete"
	LogMsgWebhookRejected     = "Rejected EventSub webhook"
	LogMsgWebhookVerified     = "EventSub callback verified"
	LogMsgWebhookDuplicate    = "Dropping duplicate EventSub message"
	LogMsgWebhookRevoked      = "EventSub subscription revoked"
	LogMsgLiveNotifyFailed    = "Failed to post live notification"
	LogMsgUnhandledNotifyType = "Ignoring EventSub notification type"
)
