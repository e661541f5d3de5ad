package twitch

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
	"github.com/osse101/CreadorsBot_Go/internal/metrics"
)

// LiveNotifier posts a message to the bot's control channel.
type LiveNotifier interface {
	Notify(msg string) error
}

// WebhookHandler receives EventSub webhook deliveries.
type WebhookHandler struct {
	secret   []byte
	notifier LiveNotifier
	seen     *expirable.LRU[string, struct{}]
	now      func() time.Time
}

// NewWebhookHandler creates a handler that verifies deliveries with secret.
func NewWebhookHandler(secret string, notifier LiveNotifier) *WebhookHandler {
	return &WebhookHandler{
		secret:   []byte(secret),
		notifier: notifier,
		seen:     expirable.NewLRU[string, struct{}](SeenMessageCacheSize, nil, SeenMessageTTL),
		now:      time.Now,
	}
}

// Mount registers the callback route on r.
func (h *WebhookHandler) Mount(r chi.Router) {
	r.Post(CallbackPath, h.ServeHTTP)
}

type eventSubEnvelope struct {
	Challenge    string `json:"challenge"`
	Subscription struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Status string `json:"status"`
	} `json:"subscription"`
	Event json.RawMessage `json:"event"`
}

// StreamOnlineEvent is the event body of a stream.online notification.
type StreamOnlineEvent struct {
	BroadcasterUserID    string `json:"broadcaster_user_id"`
	BroadcasterUserLogin string `json:"broadcaster_user_login"`
	BroadcasterUserName  string `json:"broadcaster_user_name"`
	Type                 string `json:"type"`
	StartedAt            string `json:"started_at"`
}

// LiveMessage renders the announcement for a login going live.
func LiveMessage(login string) string {
	return fmt.Sprintf(LiveMessageFormat, login, domain.TwitchChannelURL(login))
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxWebhookBodyBytes))
	if err != nil {
		log.Warn(LogMsgWebhookRejected, "reason", "body", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	msgID := r.Header.Get(HeaderMessageID)
	timestamp := r.Header.Get(HeaderMessageTimestamp)
	if err := h.verify(msgID, timestamp, r.Header.Get(HeaderMessageSignature), body); err != nil {
		log.Warn(LogMsgWebhookRejected, "reason", err.Error(), "message_id", msgID)
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if _, dup := h.seen.Get(msgID); dup {
		log.Debug(LogMsgWebhookDuplicate, "message_id", msgID)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var env eventSubEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Warn(LogMsgWebhookRejected, "reason", "decode", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// Only deliveries we could read count as seen; Twitch retries the rest.
	h.seen.Add(msgID, struct{}{})

	switch r.Header.Get(HeaderMessageType) {
	case MessageTypeVerification:
		log.Info(LogMsgWebhookVerified, "subscription_id", env.Subscription.ID, "type", env.Subscription.Type)
		w.Header().Set(HeaderContentType, "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(env.Challenge))
	case MessageTypeNotification:
		h.handleNotification(r, env)
		w.WriteHeader(http.StatusNoContent)
	case MessageTypeRevocation:
		log.Warn(LogMsgWebhookRevoked, "subscription_id", env.Subscription.ID, "status", env.Subscription.Status)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *WebhookHandler) handleNotification(r *http.Request, env eventSubEnvelope) {
	log := logger.FromContext(r.Context())

	if env.Subscription.Type != SubscriptionTypeStreamOnline {
		log.Debug(LogMsgUnhandledNotifyType, "type", env.Subscription.Type)
		return
	}

	var event StreamOnlineEvent
	if err := json.Unmarshal(env.Event, &event); err != nil || event.BroadcasterUserLogin == "" {
		log.Warn(LogMsgWebhookRejected, "reason", "stream.online event without login")
		return
	}

	if err := h.notifier.Notify(LiveMessage(event.BroadcasterUserLogin)); err != nil {
		log.Error(LogMsgLiveNotifyFailed, "login", event.BroadcasterUserLogin, "error", err)
		return
	}
	metrics.LiveNotificationsTotal.Inc()
}

// verify checks the HMAC-SHA256 signature over id + timestamp + body and the message age.
func (h *WebhookHandler) verify(msgID, timestamp, signature string, body []byte) error {
	if msgID == "" || timestamp == "" || signature == "" {
		return fmt.Errorf("missing eventsub headers")
	}

	sentAt, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return fmt.Errorf("invalid timestamp")
	}
	age := h.now().Sub(sentAt)
	if age > MaxMessageAge {
		return fmt.Errorf("message too old")
	}
	if age < -MaxClockSkew {
		return fmt.Errorf("message timestamp in the future")
	}

	if !hmac.Equal([]byte(signature), []byte(Sign(h.secret, msgID, timestamp, body))) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// Sign returns the Twitch-Eventsub-Message-Signature value for a delivery.
func Sign(secret []byte, msgID, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(msgID))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return SignaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
