// Package handlers implements the Update half of the Model-View-Update
// loop: message dispatch, key handling per mode, and pointer handling for
// drag and drop.
package handlers

import (
	"errors"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/events"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/modelops"
	"github.com/oyilmaz/firsat/internal/tui/state"
)

// Update is the main update dispatcher that handles all messages and updates the model.
// This implements the "Update" part of the Model-View-Update pattern.
func Update(m *tui.Model, msg tea.Msg) tea.Cmd {
	// Check if context is cancelled (graceful shutdown)
	select {
	case <-m.Ctx.Done():
		return tea.Quit
	default:
	}

	// Start listening for events on first update if not already started
	var cmd tea.Cmd
	if m.EventChan != nil && !m.SubscriptionStarted {
		m.SubscriptionStarted = true
		cmd = tea.Batch(
			modelops.SubscribeToEvents(m),
			modelops.ListenForNotifications(m),
		)
	}

	// The deal form needs ALL messages while it is active
	if m.UiState.Mode() == state.DealFormMode {
		if formCmd := HandleDealFormMsg(m, msg); formCmd != nil {
			return tea.Batch(cmd, formCmd)
		}
		return cmd
	}

	switch msg := msg.(type) {
	case tui.RefreshMsg:
		return tea.Batch(cmd, handleRefreshEvent(m, msg.Event))

	case tui.DealsLoadedMsg:
		handleDealsLoaded(m, msg)
		return cmd

	case tui.AccountsLoadedMsg:
		handleAccountsLoaded(m, msg)
		return cmd

	case tui.DetailLoadedMsg:
		handleDetailLoaded(m, msg)
		return cmd

	case tui.CommitResolvedMsg:
		handleCommitResolved(m, msg)
		return cmd

	case tui.DealSavedMsg:
		handleDealSaved(m, msg)
		return cmd

	case tui.TokenStatusMsg:
		m.AppState.SetTokenWarning(msg.Warning)
		return cmd

	case events.NotificationMsg:
		handleEventNotification(m, msg)
		return tea.Batch(cmd, modelops.ListenForNotifications(m))

	case tui.ConnectionEstablishedMsg:
		m.ConnectionState.SetStatus(state.Connected)
		return cmd

	case tui.ConnectionLostMsg:
		m.ConnectionState.SetStatus(state.Disconnected)
		return cmd

	case tui.ConnectionReconnectingMsg:
		m.ConnectionState.SetStatus(state.Reconnecting)
		return cmd

	case tea.KeyMsg:
		return tea.Batch(cmd, HandleKeyMsg(m, msg))

	case tea.MouseClickMsg:
		return tea.Batch(cmd, HandleMouseClick(m, msg))

	case tea.MouseMotionMsg:
		HandleMouseMotion(m, msg)
		return cmd

	case tea.MouseReleaseMsg:
		return tea.Batch(cmd, HandleMouseRelease(m, msg))

	case tea.MouseWheelMsg:
		HandleMouseWheel(m, msg)
		return cmd

	case tea.WindowSizeMsg:
		HandleWindowResize(m, msg)
		return cmd
	}

	return cmd
}

// HandleKeyMsg dispatches key messages to the appropriate mode handler.
func HandleKeyMsg(m *tui.Model, msg tea.KeyMsg) tea.Cmd {
	switch m.UiState.Mode() {
	case state.NormalMode:
		return HandleNormalMode(m, msg)
	case state.HelpMode:
		return HandleHelpMode(m, msg)
	case state.DetailMode:
		return HandleDetailMode(m, msg)
	case state.DashboardMode:
		return HandleDashboardMode(m, msg)
	case state.AccountsMode:
		return HandleAccountsMode(m, msg)
	}
	return nil
}

// HandleWindowResize handles terminal resize events.
func HandleWindowResize(m *tui.Model, msg tea.WindowSizeMsg) {
	m.UiState.SetWidth(msg.Width)
	m.UiState.SetHeight(msg.Height)

	m.NotificationState.SetWindowSize(msg.Width, msg.Height)

	// Ensure viewport offset is still valid after resize
	columns := len(m.Store.Stages())
	if m.UiState.ViewportOffset()+m.UiState.ViewportSize() > columns {
		m.UiState.SetViewportOffset(max(0, columns-m.UiState.ViewportSize()))
	}
}

// handleRefreshEvent invalidates the store for the changed resource and
// reloads it, then re-arms the event subscription.
func handleRefreshEvent(m *tui.Model, event events.Event) tea.Cmd {
	cmds := []tea.Cmd{modelops.SubscribeToEvents(m)}

	switch event.Resource {
	case events.ResourceDeals:
		// Don't clobber an in-flight drag with a background reload
		if m.Drag.Phase() == board.Idle {
			cmds = append(cmds, modelops.LoadDeals(m))
		}
	case events.ResourceAccounts:
		cmds = append(cmds, modelops.LoadAccounts(m))
	}
	return tea.Batch(cmds...)
}

func handleDealsLoaded(m *tui.Model, msg tui.DealsLoadedMsg) {
	m.AppState.SetLoading(false)

	if msg.Err != nil {
		slog.Warn("deal refresh failed", "error", msg.Err)
		m.NotificationState.Add(state.LevelError, "Could not load deals")
		return
	}

	m.AppState.SetOffline(msg.Offline)
	if msg.Offline {
		m.NotificationState.Add(state.LevelWarning, "Backend unreachable, showing saved data")
	} else {
		m.AppState.SetLastSync(m.Store.FetchedAt(store.KeyDeals))
	}
	m.ClampSelection()
}

func handleAccountsLoaded(m *tui.Model, msg tui.AccountsLoadedMsg) {
	if msg.Err != nil {
		slog.Warn("account refresh failed", "error", msg.Err)
		return
	}
	if cursor := m.UiState.AccountCursor(); cursor >= len(msg.Accounts) {
		m.UiState.SetAccountCursor(max(0, len(msg.Accounts)-1))
	}
}

func handleDetailLoaded(m *tui.Model, msg tui.DetailLoadedMsg) {
	if msg.Err != nil {
		slog.Warn("detail load failed", "error", msg.Err)
		m.NotificationState.Add(state.LevelError, "Could not load deal detail")
		m.UiState.SetMode(state.NormalMode)
		return
	}
	m.AppState.SetDetail(msg.Detail)
}

// handleCommitResolved settles an optimistic stage move with the backend's
// answer. Confirm and Rollback mutate the store here, on the update loop,
// so the renderer never reads a deal another goroutine is writing.
func handleCommitResolved(m *tui.Model, msg tui.CommitResolvedMsg) {
	if msg.Err == nil {
		msg.Commit.Confirm(msg.Updated)
		m.ClampSelection()
		return
	}

	msg.Commit.Rollback()
	slog.Warn("stage transition rejected",
		"deal", msg.Deal, "from", msg.From, "to", msg.To, "error", msg.Err)
	m.NotificationState.Add(state.LevelError, "Move rejected, change undone")
	m.ClampSelection()
}

func handleDealSaved(m *tui.Model, msg tui.DealSavedMsg) {
	if msg.Err != nil {
		slog.Warn("deal save failed", "error", msg.Err)
		m.NotificationState.Add(state.LevelError, "Could not save deal")
		return
	}
	if msg.Created {
		m.NotificationState.Add(state.LevelInfo, "Deal created")
	} else {
		m.NotificationState.Add(state.LevelInfo, "Deal updated")
	}
}

func handleEventNotification(m *tui.Model, msg events.NotificationMsg) {
	level := state.LevelInfo
	switch msg.Level {
	case "error":
		level = state.LevelError
	case "warning":
		level = state.LevelWarning
	}
	m.NotificationState.Add(level, msg.Message)

	switch msg.Message {
	case "Connection lost, reconnecting...":
		m.ConnectionState.SetStatus(state.Reconnecting)
	case "Reconnected to event feed":
		m.ConnectionState.SetStatus(state.Connected)
	case "Failed to reconnect to event feed":
		m.ConnectionState.SetStatus(state.Disconnected)
	}
}

// beginCommit starts an optimistic stage transition and returns the command
// that resolves it against the backend. Validation failures surface as
// notifications and no command.
func beginCommit(m *tui.Model, drop board.Drop) tea.Cmd {
	commit, err := m.Committer.Begin(drop.Deal, drop.To)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrNoChange):
			// Dropped back where it started, nothing to do
		case errors.Is(err, board.ErrTransitionBlocked):
			m.NotificationState.Add(state.LevelWarning, "That stage change is not allowed")
		case errors.Is(err, board.ErrStaleDeal):
			m.NotificationState.Add(state.LevelWarning, "Deal changed elsewhere, refreshing")
		default:
			slog.Warn("stage transition could not start", "deal", drop.Deal, "error", err)
			m.NotificationState.Add(state.LevelError, "Could not move deal")
		}
		return nil
	}
	return modelops.ResolveCommit(m, commit)
}
