// Package events receives backend change notifications over a websocket
// feed so edits made in other views invalidate the board's cache without
// polling. The feed is best-effort: the board works without it, it just
// refreshes on TTL alone.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a websocket connection to the backend change feed. It handles
// subscription scoping, debounced batching, deduplication by sequence id
// and reconnection with backoff.
type Client struct {
	url  string
	mu   sync.Mutex
	conn *websocket.Conn

	// Batching configuration
	debounce time.Duration

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	// Subscription state
	tenantID int

	// Event tracking
	lastSequence int64

	// Context for graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc

	// Optional callback for user-facing connection notifications
	notifyFunc NotifyFunc

	closed bool // prevent double-close panics
}

// NotifyFunc receives user-facing notifications about the feed connection.
// Level is one of "info", "warning", "error".
type NotifyFunc func(level, message string)

// SetNotifyFunc sets the callback for connection notifications.
// Safe to call on a nil client.
func (c *Client) SetNotifyFunc(fn NotifyFunc) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifyFunc = fn
}

// notify invokes the notification callback if one is set.
func (c *Client) notify(level, message string) {
	c.mu.Lock()
	fn := c.notifyFunc
	c.mu.Unlock()
	if fn != nil {
		fn(level, message)
	}
}

// NewClient creates a client for the given websocket URL but does not
// connect. The debounce window collapses event bursts (default 100ms,
// FIRSAT_EVENT_DEBOUNCE_MS overrides).
func NewClient(url string) *Client {
	debounceMs := 100
	if envVal := os.Getenv("FIRSAT_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		url:        url,
		debounce:   time.Duration(debounceMs) * time.Millisecond,
		maxRetries: 5,
		baseDelay:  1 * time.Second,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Connect establishes the websocket connection and sends the initial
// subscription for the configured tenant.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial event feed: %w", err)
	}
	c.conn = conn

	msg := Message{
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{TenantID: c.tenantID},
	}
	if err := conn.WriteJSON(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("error closing event connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}
	return nil
}

// Subscribe rescopes the feed to a specific tenant. Safe to call before
// Connect; the tenant is included in the initial subscription then.
func (c *Client) Subscribe(tenantID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tenantID = tenantID
	if c.conn == nil {
		return nil
	}
	msg := Message{
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{TenantID: tenantID},
	}
	return c.conn.WriteJSON(msg)
}

// Listen starts the read loop and returns the channel batched events are
// delivered on. The channel closes when the context ends, Close is called,
// or reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("not connected")
	}
	c.mu.Unlock()

	raw := make(chan Event, 100)
	out := make(chan Event, 100)

	go c.readLoop(ctx, raw)
	go c.batchLoop(ctx, raw, out)

	return out, nil
}

// readLoop reads messages off the socket, answers pings, drops duplicates
// and reconnects with exponential backoff on failure.
func (c *Client) readLoop(ctx context.Context, raw chan<- Event) {
	defer close(raw)

	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			select {
			case <-ctx.Done():
				return
			case <-c.ctx.Done():
				return
			default:
			}
			c.notify("warning", "Connection lost, reconnecting...")
			if !c.reconnect(ctx) {
				slog.Warn("event feed reconnection gave up", "url", c.url)
				c.notify("error", "Failed to reconnect to event feed")
				return
			}
			c.notify("info", "Reconnected to event feed")
			continue
		}

		switch msg.Type {
		case "ping":
			c.mu.Lock()
			if c.conn != nil {
				if err := c.conn.WriteJSON(Message{Type: "pong"}); err != nil {
					slog.Debug("failed to answer ping", "error", err)
				}
			}
			c.mu.Unlock()
		case "event":
			if msg.Event == nil {
				continue
			}
			if msg.Event.SequenceID != 0 && msg.Event.SequenceID <= c.lastSequence {
				continue // duplicate or out of order
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case raw <- *msg.Event:
			default:
				slog.Debug("event queue full, dropping event", "resource", msg.Event.Resource)
			}
		}
	}
}

// batchLoop collapses bursts: within one debounce window only the latest
// event per resource is delivered. Cache invalidation is idempotent, so
// collapsing loses nothing.
func (c *Client) batchLoop(ctx context.Context, raw <-chan Event, out chan<- Event) {
	defer close(out)

	pending := make(map[Resource]Event)
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		for _, ev := range pending {
			select {
			case out <- ev:
			default:
			}
		}
		clear(pending)
		fire = nil
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.ctx.Done():
			return
		case ev, ok := <-raw:
			if !ok {
				flush()
				return
			}
			pending[ev.Resource] = ev
			if fire == nil {
				timer = time.NewTimer(c.debounce)
				fire = timer.C
			}
		case <-fire:
			flush()
		}
	}
}

// reconnect retries the connection with exponential backoff.
// Returns false when retries are exhausted or the client is shutting down.
func (c *Client) reconnect(ctx context.Context) bool {
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		delay := c.baseDelay * (1 << attempt)
		select {
		case <-ctx.Done():
			return false
		case <-c.ctx.Done():
			return false
		case <-time.After(delay):
		}

		c.mu.Lock()
		if c.conn != nil {
			if err := c.conn.Close(); err != nil {
				slog.Debug("error closing stale connection", "error", err)
			}
			c.conn = nil
		}
		err := c.connectLocked(ctx)
		c.mu.Unlock()

		if err == nil {
			slog.Info("event feed reconnected", "attempt", attempt+1)
			return true
		}
		slog.Debug("event feed reconnect failed", "attempt", attempt+1, "error", err)
	}
	return false
}

// Close closes the connection and stops all goroutines. Safe to call twice.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.cancel()

	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
