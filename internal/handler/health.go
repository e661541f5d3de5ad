package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/CreadorsBot_Go/internal/database"
)

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status                 string `json:"status"`
	Message                string `json:"message,omitempty"`
	DiscordConnected       *bool  `json:"discord_connected,omitempty"`
	ControlChannelResolved *bool  `json:"control_channel_resolved,omitempty"`
	Streamers              *int   `json:"streamers,omitempty"`
}

// BotStatus is the part of the Discord bot the readiness check inspects.
type BotStatus interface {
	Connected() bool
	ControlResolved() bool
}

// StreamerCounter reports the number of registry rows.
type StreamerCounter interface {
	CountStreamers(ctx context.Context) (int, error)
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready when the database answers, the gateway session is
// up and the control channel is resolved.
func HandleReadyz(dbPool database.Pool, bot BotStatus, counter StreamerCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			slog.Error("Readiness check failed", "error", err)
			writeHealth(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  StatusUnavailable,
				Message: MsgDatabaseFailed,
			})
			return
		}

		connected := bot.Connected()
		resolved := bot.ControlResolved()
		resp := HealthResponse{
			Status:                 StatusOK,
			DiscordConnected:       &connected,
			ControlChannelResolved: &resolved,
		}
		if n, err := counter.CountStreamers(ctx); err == nil {
			resp.Streamers = &n
		}

		code := http.StatusOK
		if !connected || !resolved {
			resp.Status = StatusDegraded
			resp.Message = MsgBotNotReady
			code = http.StatusServiceUnavailable
		}
		writeHealth(w, code, resp)
	}
}

func writeHealth(w http.ResponseWriter, code int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("Failed to encode health response", "error", err)
	}
}

// Health check settings
const (
	ReadinessTimeout = 2 * time.Second

	StatusOK          = "ok"
	StatusDegraded    = "degraded"
	StatusUnavailable = "unavailable"

	MsgDatabaseFailed = "database connection failed"
	MsgBotNotReady    = "discord session or control channel not ready"
)
