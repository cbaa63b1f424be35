// Package handlers implements the HTTP endpoints of the adapter API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	adapter "github.com/hmcts/dtsse-ardoq-adapter"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/metrics"
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/events"
	ws "github.com/hmcts/dtsse-ardoq-adapter/internal/server/websocket"
)

// Handlers holds the dependencies shared by every endpoint.
type Handlers struct {
	adapter   adapter.Adapter
	metrics   *metrics.Metrics
	broker    *events.Broker
	wsHub     *ws.Hub
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	startTime time.Time
	maxBody   int64
	timeout   time.Duration
}

// New creates the handlers.
func New(
	a adapter.Adapter,
	m *metrics.Metrics,
	broker *events.Broker,
	wsHub *ws.Hub,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	startTime time.Time,
	maxBody int64,
	timeout time.Duration,
) *Handlers {
	return &Handlers{
		adapter:   a,
		metrics:   m,
		broker:    broker,
		wsHub:     wsHub,
		upgrader:  upgrader,
		logger:    logger,
		startTime: startTime,
		maxBody:   maxBody,
		timeout:   timeout,
	}
}
