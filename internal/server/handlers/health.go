package handlers

import (
	"net/http"
	"time"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/parser"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "ardoq-adapter",
	})
}

// HandleReady handles GET /api/v1/ready.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.adapter == nil {
		response.ServiceUnavailable(w, "Adapter not configured")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"parsers":           parser.Names(),
		"uptime_seconds":    int64(time.Since(h.startTime).Seconds()),
		"subscribers":       h.broker.SubscriberCount(),
		"websocket_clients": h.wsHub.ClientCount(),
	})
}
