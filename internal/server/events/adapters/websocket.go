// Package adapters connects event transports to the broker.
package adapters

import (
	"github.com/hmcts/dtsse-ardoq-adapter/internal/server/events"
	ws "github.com/hmcts/dtsse-ardoq-adapter/internal/server/websocket"
)

// WebSocketSubscriber forwards broker events to a websocket hub.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a subscriber for hub.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send broadcasts the event to every websocket client.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	w.hub.Broadcast(ws.Message{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return nil
}

// Close is a no-op; the hub owns its lifecycle.
func (w *WebSocketSubscriber) Close() error {
	return nil
}
