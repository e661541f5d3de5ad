package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/CreadorsBot_Go/internal/domain"
	"github.com/osse101/CreadorsBot_Go/internal/logger"
)

const (
	testGuildID   = "guild-1"
	testChannelID = "chan-control"
	otherChannel  = "chan-general"
	testAppID     = "app-1"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// CapturedRequest is one Discord REST call seen by the test transport.
type CapturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// TestContext wires a Discord session to an in-memory transport.
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
	Logs         *bytes.Buffer

	mu       sync.Mutex
	requests []CapturedRequest
	// Routes maps a path suffix to a JSON response body. Unmatched paths answer "{}".
	Routes map[string]string
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create mock session: %v", err)
	}

	ctx := &TestContext{
		Session: session,
		Logs:    &bytes.Buffer{},
		Routes:  map[string]string{},
	}

	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			ctx.mu.Lock()
			ctx.requests = append(ctx.requests, CapturedRequest{
				Method: req.Method,
				Path:   req.URL.Path,
				Query:  req.URL.RawQuery,
				Body:   body,
			})
			response := "{}"
			for suffix, resp := range ctx.Routes {
				if strings.HasSuffix(req.URL.Path, suffix) {
					response = resp
					break
				}
			}
			ctx.mu.Unlock()

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(response)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Request:    req,
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	previous := slog.Default()
	logger.InitLoggerWithWriter(logger.Config{Level: logger.LogLevelDebug, Format: logger.LogFormatJSON}, ctx.Logs)
	t.Cleanup(func() { slog.SetDefault(previous) })

	return ctx
}

// Requests returns a copy of the captured Discord calls.
func (c *TestContext) Requests() []CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CapturedRequest(nil), c.requests...)
}

// LogLines returns the decoded JSON log records.
func (c *TestContext) LogLines(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(c.Logs.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		out = append(out, rec)
	}
	return out
}

// LastEditContent returns the text of the last interaction response edit.
func (c *TestContext) LastEditContent(t *testing.T) string {
	t.Helper()
	reqs := c.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method != http.MethodPatch {
			continue
		}
		var edit struct {
			Content string                    `json:"content"`
			Embeds  []*discordgo.MessageEmbed `json:"embeds"`
		}
		if err := json.Unmarshal(reqs[i].Body, &edit); err != nil {
			t.Fatalf("invalid edit body: %v", err)
		}
		if len(edit.Embeds) > 0 {
			return edit.Embeds[0].Description
		}
		return edit.Content
	}
	t.Fatalf("no interaction edit captured")
	return ""
}

func resolvedControl() *ControlContext {
	return &ControlContext{
		GuildName:   "Creadors",
		GuildID:     testGuildID,
		ChannelName: "bot-control",
		ChannelID:   testChannelID,
		RoleName:    "streamer",
		RoleID:      "role-streamer",
	}
}

// newInteraction builds a slash command interaction.
func newInteraction(name CommandName, channelID string, admin bool, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	var perms int64
	if admin {
		perms = discordgo.PermissionAdministrator
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			AppID:     testAppID,
			Type:      discordgo.InteractionApplicationCommand,
			GuildID:   testGuildID,
			ChannelID: channelID,
			Token:     "interaction-token",
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "1001", Username: "mod_alice"},
				Permissions: perms,
			},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    string(name),
				Options: options,
			},
		},
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func userOption(name, userID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionUser,
		Value: userID,
	}
}

// MockRegistryService is a testify mock of registry.Service.
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) AddStreamer(ctx context.Context, twitchUsername string, caller *domain.ChatIdentity, groupID string) (*domain.StreamerRecord, error) {
	args := m.Called(ctx, twitchUsername, caller, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StreamerRecord), args.Error(1)
}

func (m *MockRegistryService) RemoveStreamer(ctx context.Context, twitchUsername, groupID string) error {
	args := m.Called(ctx, twitchUsername, groupID)
	return args.Error(0)
}

func (m *MockRegistryService) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRegistryService) ListStreamersByDiscordUsers(ctx context.Context, discordUsernames []string) ([]domain.StreamerPair, error) {
	args := m.Called(ctx, discordUsernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamerPair), args.Error(1)
}

func (m *MockRegistryService) ListStreamersByGroup(ctx context.Context, groupID string) ([]domain.StreamerPair, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamerPair), args.Error(1)
}

func (m *MockRegistryService) ListIncompleteForGroup(ctx context.Context, groupID string) ([]domain.StreamerRecord, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamerRecord), args.Error(1)
}

func (m *MockRegistryService) CountStreamers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// fakeMembers is a MemberDirectory with a fixed member list.
type fakeMembers struct {
	names []string
	err   error
}

func (f *fakeMembers) RoleMembers(_, _ string) ([]string, error) {
	return f.names, f.err
}

// wrapMembersPaging serves secondPage once the members endpoint has been called with an after cursor.
func wrapMembersPaging(base func(*http.Request) (*http.Response, error), tc *TestContext, calls *int, secondPage string) func(*http.Request) (*http.Response, error) {
	return func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/members") {
			return base(req)
		}
		*calls++
		if req.URL.Query().Get("after") == "" {
			return base(req)
		}
		tc.mu.Lock()
		tc.requests = append(tc.requests, CapturedRequest{Method: req.Method, Path: req.URL.Path, Query: req.URL.RawQuery})
		tc.mu.Unlock()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(secondPage)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Request:    req,
		}, nil
	}
}
