package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{}

// startFeedServer runs a websocket server that records the subscription and
// then serves the given handler the connection.
func startFeedServer(t *testing.T, handle func(conn *websocket.Conn, sub SubscribeMessage)) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("read subscription failed: %v", err)
			return
		}
		if msg.Type != "subscribe" || msg.Subscribe == nil {
			t.Errorf("first message = %+v, want subscribe", msg)
			return
		}
		handle(conn, *msg.Subscribe)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClientReceivesEvents(t *testing.T) {
	url := startFeedServer(t, func(conn *websocket.Conn, sub SubscribeMessage) {
		if sub.TenantID != 3 {
			t.Errorf("subscribed tenant = %d, want 3", sub.TenantID)
		}
		ev := Message{Type: "event", Event: &Event{
			Type: EventResourceChanged, Resource: ResourceDeals, SequenceID: 1,
		}}
		if err := conn.WriteJSON(ev); err != nil {
			t.Errorf("write event failed: %v", err)
		}
		// Hold the connection open until the test ends
		time.Sleep(2 * time.Second)
	})

	client := NewClient(url)
	defer client.Close()

	if err := client.Subscribe(3); err != nil {
		t.Fatalf("Subscribe before connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	events, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Resource != ResourceDeals {
			t.Errorf("event resource = %v, want deals", ev.Resource)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestBurstsCollapsePerResource(t *testing.T) {
	url := startFeedServer(t, func(conn *websocket.Conn, sub SubscribeMessage) {
		// Three deal events inside one debounce window plus one account event
		for seq := int64(1); seq <= 3; seq++ {
			msg := Message{Type: "event", Event: &Event{
				Type: EventResourceChanged, Resource: ResourceDeals, SequenceID: seq,
			}}
			if err := conn.WriteJSON(msg); err != nil {
				t.Errorf("write failed: %v", err)
			}
		}
		msg := Message{Type: "event", Event: &Event{
			Type: EventResourceChanged, Resource: ResourceAccounts, SequenceID: 4,
		}}
		if err := conn.WriteJSON(msg); err != nil {
			t.Errorf("write failed: %v", err)
		}
		time.Sleep(2 * time.Second)
	})

	client := NewClient(url)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	events, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	got := map[Resource]int{}
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-events:
			got[ev.Resource]++
		case <-timeout:
			t.Fatalf("timed out, received %v", got)
		}
	}

	if got[ResourceDeals] != 1 {
		t.Errorf("deal events delivered = %d, want 1 (burst collapsed)", got[ResourceDeals])
	}
	if got[ResourceAccounts] != 1 {
		t.Errorf("account events delivered = %d, want 1", got[ResourceAccounts])
	}

	// The collapsed deal event is the latest in the burst
	select {
	case ev := <-events:
		t.Errorf("unexpected extra event: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestListenRequiresConnection(t *testing.T) {
	client := NewClient("ws://unused")
	defer client.Close()

	if _, err := client.Listen(context.Background()); err == nil {
		t.Error("Listen before Connect should fail")
	}
}

func TestSetNotifyFuncOnNilClient(t *testing.T) {
	var client *Client
	// Must not panic
	client.SetNotifyFunc(func(level, message string) {})
}

func TestCloseIsIdempotent(t *testing.T) {
	client := NewClient("ws://unused")
	if err := client.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		Type: "event",
		Event: &Event{
			Type:       EventResourceChanged,
			Resource:   ResourceDeals,
			TenantID:   3,
			SequenceID: 42,
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Event == nil || decoded.Event.SequenceID != 42 {
		t.Errorf("decoded = %+v, want sequence 42", decoded.Event)
	}
	if decoded.Subscribe != nil {
		t.Error("subscribe field should be omitted for event messages")
	}
}
