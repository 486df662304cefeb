package events

import "context"

// Listener defines the interface for receiving backend change events.
// Depending on behavior rather than the websocket client keeps the TUI
// testable and makes the feed optional: a nil Listener disables it.
type Listener interface {
	// Connect establishes the websocket connection to the change feed
	Connect(ctx context.Context) error

	// Listen starts delivering batched events on the returned channel
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe rescopes the feed to a specific tenant
	Subscribe(tenantID int) error

	// SetNotifyFunc registers a callback for connection notifications
	SetNotifyFunc(fn NotifyFunc)

	// Close closes the connection and stops all goroutines
	Close() error
}

// Compile-time verification that *Client implements Listener
var _ Listener = (*Client)(nil)
