package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/bharat-abroad/internal/chat"
	"github.com/olegiv/bharat-abroad/internal/metrics"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// maxChatBody bounds the posted transcript.
const maxChatBody = 64 << 10

// Replier produces the assistant's next message.
type Replier interface {
	Reply(ctx context.Context, msgs []chat.Message) (chat.Reply, error)
}

// ChatHandler proxies the chat widget to the completion endpoint.
type ChatHandler struct {
	replier   Replier
	analytics *service.AnalyticsService
	metrics   *metrics.Metrics
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(replier Replier, analytics *service.AnalyticsService, m *metrics.Metrics) *ChatHandler {
	return &ChatHandler{replier: replier, analytics: analytics, metrics: m}
}

type chatRequest struct {
	Messages []chat.Message `json:"messages"`
}

// Chat handles POST /api/chat. Upstream failures still answer 200 with the
// apology so the widget always has something to show.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		h.metrics.ChatOutcome("invalid")
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msgs, err := chat.Normalize(req.Messages)
	if err != nil {
		h.metrics.ChatOutcome("invalid")
		writeJSONError(w, http.StatusBadRequest, "Message is empty")
		return
	}

	reply, err := h.replier.Reply(r.Context(), msgs)
	if err != nil {
		slog.Warn("chat reply failed", "error", err)
		h.metrics.ChatOutcome("error")
	} else {
		h.metrics.ChatOutcome("ok")
	}

	_ = h.analytics.Track(r.Context(), "chat", store.AnalyticsChatMessage, map[string]any{"turns": len(msgs), "ok": err == nil})
	writeJSON(w, http.StatusOK, reply)
}
