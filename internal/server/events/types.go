// Package events fans adapter write notifications out to realtime transports.
//
// Adapter hooks publish into a Broker; subscribers such as the websocket
// hub receive every event.
package events

import "time"

// EventType names a remote write or report notification.
type EventType string

// Event types.
const (
	ComponentCreated EventType = "component.created"
	ReferenceCreated EventType = "reference.created"
	ReferenceUpdated EventType = "reference.updated"
	ReportProcessed  EventType = "report.processed"

	// ClientConnected is sent by transports when a client attaches.
	ClientConnected EventType = "client.connected"
)

// Event is a single notification.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
