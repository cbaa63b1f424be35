package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/events"
	ws "github.com/hmcts/dtsse-ardoq-adapter/internal/server/websocket"
)

func TestWebSocketSubscriber_Send(t *testing.T) {
	logger := zerolog.Nop()
	hub := ws.NewHub(&logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	sub := NewWebSocketSubscriber(hub)
	for _, typ := range []events.EventType{
		events.ComponentCreated,
		events.ReferenceCreated,
		events.ReferenceUpdated,
		events.ReportProcessed,
	} {
		assert.NoError(t, sub.Send(events.Event{Type: typ, Timestamp: time.Now(), Data: nil}))
	}
}

func TestWebSocketSubscriber_Close(t *testing.T) {
	logger := zerolog.Nop()
	sub := NewWebSocketSubscriber(ws.NewHub(&logger))
	assert.NoError(t, sub.Close())
}
