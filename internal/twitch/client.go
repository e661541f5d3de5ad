// Package twitch talks to the Twitch Helix API for user lookups and
// stream.online EventSub subscriptions, and receives the matching webhooks.
package twitch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
)

// ErrUserNotFound means Helix answered the lookup with no matching user.
var ErrUserNotFound = errors.New("user not found")

// Config holds the app credentials and EventSub webhook settings.
type Config struct {
	ClientID      string
	ClientSecret  string
	CallbackURL   string
	WebhookSecret string

	// Overridable for tests.
	HelixBaseURL string
	TokenURL     string
	HTTPClient   *http.Client

	IDCacheSize int
	IDCacheTTL  time.Duration
}

// Client is a Helix client authenticated with an app access token.
type Client struct {
	clientID      string
	callbackURL   string
	webhookSecret string
	baseURL       string

	http *http.Client
	ids  *expirable.LRU[string, string]
}

// NewClient builds a Client. The app token is fetched lazily and refreshed by x/oauth2.
func NewClient(cfg Config) *Client {
	if cfg.HelixBaseURL == "" {
		cfg.HelixBaseURL = DefaultHelixBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	if cfg.IDCacheSize <= 0 {
		cfg.IDCacheSize = DefaultIDCacheSize
	}
	if cfg.IDCacheTTL <= 0 {
		cfg.IDCacheTTL = DefaultIDCacheTTL
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	tokenCtx := context.Background()
	if cfg.HTTPClient != nil {
		tokenCtx = context.WithValue(tokenCtx, oauth2.HTTPClient, cfg.HTTPClient)
	}

	return &Client{
		clientID:      cfg.ClientID,
		callbackURL:   cfg.CallbackURL,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       strings.TrimSuffix(cfg.HelixBaseURL, "/"),
		http:          cc.Client(tokenCtx),
		ids:           expirable.NewLRU[string, string](cfg.IDCacheSize, nil, cfg.IDCacheTTL),
	}
}

type helixUsersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Login string `json:"login"`
	} `json:"data"`
}

type subscriptionCondition struct {
	BroadcasterUserID string `json:"broadcaster_user_id"`
}

type subscriptionTransport struct {
	Method   string `json:"method"`
	Callback string `json:"callback"`
	Secret   string `json:"secret,omitempty"`
}

type createSubscriptionRequest struct {
	Type      string                `json:"type"`
	Version   string                `json:"version"`
	Condition subscriptionCondition `json:"condition"`
	Transport subscriptionTransport `json:"transport"`
}

type subscription struct {
	ID        string                `json:"id"`
	Status    string                `json:"status"`
	Type      string                `json:"type"`
	Condition subscriptionCondition `json:"condition"`
}

type subscriptionsResponse struct {
	Data       []subscription `json:"data"`
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
}

// ResolveIdentity returns the Twitch user id for login.
func (c *Client) ResolveIdentity(ctx context.Context, login string) (string, error) {
	if login == "" {
		return "", fmt.Errorf("%w: login empty", domain.ErrLookupFailed)
	}
	if id, ok := c.ids.Get(login); ok {
		return id, nil
	}

	q := url.Values{}
	q.Set("login", login)
	resp, err := c.do(ctx, http.MethodGet, PathUsers, q, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrLookupFailed, login, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s: %s", domain.ErrLookupFailed, login, readStatus(resp))
	}

	var body helixUsersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %s: decode: %w", domain.ErrLookupFailed, login, err)
	}
	if len(body.Data) == 0 {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrLookupFailed, login, ErrUserNotFound)
	}

	id := body.Data[0].ID
	c.ids.Add(login, id)
	return id, nil
}

// Subscribe registers a stream.online webhook for login. An existing subscription counts as success.
func (c *Client) Subscribe(ctx context.Context, login string) error {
	uid, err := c.ResolveIdentity(ctx, login)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubscriptionFailed, err)
	}

	payload := createSubscriptionRequest{
		Type:      SubscriptionTypeStreamOnline,
		Version:   SubscriptionVersion,
		Condition: subscriptionCondition{BroadcasterUserID: uid},
		Transport: subscriptionTransport{
			Method:   TransportWebhook,
			Callback: c.callbackURL,
			Secret:   c.webhookSecret,
		},
	}
	resp, err := c.do(ctx, http.MethodPost, PathSubscriptions, nil, payload)
	if err != nil {
		return fmt.Errorf("%w: subscribe %s: %w", domain.ErrSubscriptionFailed, login, err)
	}
	defer closeBody(resp)

	log := logger.FromContext(ctx)
	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		log.Info(LogMsgSubscribed, "login", login, "broadcaster_id", uid)
		return nil
	case http.StatusConflict:
		log.Debug(LogMsgAlreadySubscribed, "login", login, "broadcaster_id", uid)
		return nil
	default:
		return fmt.Errorf("%w: subscribe %s: %s", domain.ErrSubscriptionFailed, login, readStatus(resp))
	}
}

// Unsubscribe deletes every stream.online subscription for login's broadcaster id.
// A login Twitch does not know cannot have a subscription, so there is nothing to delete.
func (c *Client) Unsubscribe(ctx context.Context, login string) error {
	uid, err := c.ResolveIdentity(ctx, login)
	if errors.Is(err, ErrUserNotFound) {
		logger.FromContext(ctx).Info(LogMsgUnknownBroadcaster, "login", login)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubscriptionFailed, err)
	}

	q := url.Values{}
	q.Set("user_id", uid)
	subs, err := c.listSubscriptions(ctx, q)
	if err != nil {
		return err
	}

	for _, sub := range subs {
		if sub.Type != SubscriptionTypeStreamOnline || sub.Condition.BroadcasterUserID != uid {
			continue
		}
		if err := c.deleteSubscription(ctx, sub.ID); err != nil {
			return err
		}
	}
	return nil
}

// UnsubscribeAll deletes every EventSub subscription owned by the app.
func (c *Client) UnsubscribeAll(ctx context.Context) error {
	subs, err := c.listSubscriptions(ctx, url.Values{})
	if err != nil {
		return err
	}

	for _, sub := range subs {
		if err := c.deleteSubscription(ctx, sub.ID); err != nil {
			return err
		}
	}
	return nil
}

// listSubscriptions follows pagination cursors until the list is exhausted.
func (c *Client) listSubscriptions(ctx context.Context, filter url.Values) ([]subscription, error) {
	var all []subscription
	cursor := ""
	for {
		q := url.Values{}
		for k, v := range filter {
			q[k] = v
		}
		if cursor != "" {
			q.Set("after", cursor)
		}

		page, err := c.listSubscriptionsPage(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)

		if page.Pagination.Cursor == "" || len(page.Data) == 0 {
			return all, nil
		}
		cursor = page.Pagination.Cursor
	}
}

func (c *Client) listSubscriptionsPage(ctx context.Context, q url.Values) (*subscriptionsResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, PathSubscriptions, q, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: list subscriptions: %w", domain.ErrSubscriptionFailed, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list subscriptions: %s", domain.ErrSubscriptionFailed, readStatus(resp))
	}

	var page subscriptionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: list subscriptions: decode: %w", domain.ErrSubscriptionFailed, err)
	}
	return &page, nil
}

func (c *Client) deleteSubscription(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", id)
	resp, err := c.do(ctx, http.MethodDelete, PathSubscriptions, q, nil)
	if err != nil {
		return fmt.Errorf("%w: delete subscription %s: %w", domain.ErrSubscriptionFailed, id, err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		logger.FromContext(ctx).Debug(LogMsgUnsubscribed, "subscription_id", id)
		return nil
	default:
		return fmt.Errorf("%w: delete subscription %s: %s", domain.ErrSubscriptionFailed, id, readStatus(resp))
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderClientID, c.clientID)
	if body != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	return c.http.Do(req)
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		slog.Warn("failed to close response body", slog.Any("err", err))
	}
}

// readStatus returns the status line plus a short prefix of the body.
func readStatus(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return strings.TrimSpace(resp.Status + ": " + string(b))
}
