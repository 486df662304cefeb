package events

import "time"

// EventType indicates what kind of change occurred on the backend
type EventType string

const (
	EventResourceChanged EventType = "resource_changed"
	EventPing            EventType = "ping"
	EventPong            EventType = "pong"
)

// Resource names the backend collection an event invalidates
type Resource string

const (
	ResourceDeals    Resource = "deals"
	ResourceAccounts Resource = "accounts"
)

// Event represents one backend change notification. The client turns these
// into store invalidations so other views' edits show up on the board.
type Event struct {
	Type       EventType `json:"type"`
	Resource   Resource  `json:"resource"`
	TenantID   int       `json:"tenant_id"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"`
}

// NotificationMsg is a user-facing notification from the events client,
// delivered to the TUI as a Bubble Tea message. Level is one of "info",
// "warning", "error".
type NotificationMsg struct {
	Level   string
	Message string
}

// SubscribeMessage is sent to scope the feed to one tenant
type SubscribeMessage struct {
	TenantID int `json:"tenant_id"`
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Type      string            `json:"type"` // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:"event,omitempty"`
	Subscribe *SubscribeMessage `json:"subscribe,omitempty"`
}
