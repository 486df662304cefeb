package modelops

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oyilmaz/firsat/internal/tui"
)

// SubscribeToEvents returns a command that waits for the next batched event
// from the change feed and wraps it in a RefreshMsg.
// Returns nil if the event channel is not initialized.
func SubscribeToEvents(m *tui.Model) tea.Cmd {
	if m.EventChan == nil {
		return nil
	}

	return func() tea.Msg {
		select {
		case event, ok := <-m.EventChan:
			if !ok {
				// Channel closed, connection lost
				return tui.ConnectionLostMsg{}
			}
			return tui.RefreshMsg{Event: event}
		case <-m.Ctx.Done():
			return nil
		}
	}
}

// ListenForNotifications returns a command that waits for the next
// user-facing notification from the events client.
func ListenForNotifications(m *tui.Model) tea.Cmd {
	if m.NotifyChan == nil {
		return nil
	}

	return func() tea.Msg {
		select {
		case notification, ok := <-m.NotifyChan:
			if !ok {
				return nil
			}
			return notification
		case <-m.Ctx.Done():
			return nil
		}
	}
}
