package handlers

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/modelops"
	"github.com/oyilmaz/firsat/internal/tui/state"
)

// HandleHelpMode handles key messages in the help overlay. Any key closes it.
func HandleHelpMode(m *tui.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	default:
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}

// HandleDetailMode handles key messages in the deal detail overlay.
func HandleDetailMode(m *tui.Model, msg tea.KeyMsg) tea.Cmd {
	km := m.Config.KeyMappings

	switch msg.String() {
	case "esc", "q", " ", "space":
		m.AppState.ClearDetail()
		m.UiState.SetMode(state.NormalMode)

	case km.EditDeal:
		detail := m.AppState.Detail()
		if detail == nil {
			return nil
		}
		m.AppState.ClearDetail()
		return openDealForm(m, &detail.Deal)

	case "ctrl+c":
		return tea.Quit

	default:
		// Remaining keys scroll an overflowing detail body
		if m.AppState.DetailViewportReady {
			vp, cmd := m.AppState.DetailViewport.Update(msg)
			m.AppState.DetailViewport = vp
			return cmd
		}
	}
	return nil
}

// HandleDashboardMode handles key messages on the pipeline dashboard.
func HandleDashboardMode(m *tui.Model, msg tea.KeyMsg) tea.Cmd {
	km := m.Config.KeyMappings

	switch msg.String() {
	case km.Quit, "ctrl+c":
		return tea.Quit

	case "esc", km.ShowBoard:
		m.UiState.SetMode(state.NormalMode)

	case km.ShowAccounts:
		m.UiState.SetMode(state.AccountsMode)

	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)

	case km.Refresh:
		m.Store.Invalidate(store.KeyDeals)
		return modelops.LoadDeals(m)
	}
	return nil
}

// HandleAccountsMode handles key messages on the accounts list.
func HandleAccountsMode(m *tui.Model, msg tea.KeyMsg) tea.Cmd {
	km := m.Config.KeyMappings

	switch msg.String() {
	case km.Quit, "ctrl+c":
		return tea.Quit

	case "esc", km.ShowBoard:
		m.UiState.SetMode(state.NormalMode)

	case km.ShowDashboard:
		m.UiState.SetMode(state.DashboardMode)

	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)

	case km.PrevDeal, "up":
		if cursor := m.UiState.AccountCursor(); cursor > 0 {
			m.UiState.SetAccountCursor(cursor - 1)
		}

	case km.NextDeal, "down":
		if cursor := m.UiState.AccountCursor(); cursor < len(m.Store.Accounts())-1 {
			m.UiState.SetAccountCursor(cursor + 1)
		}

	case km.Refresh:
		m.Store.Invalidate(store.KeyAccounts)
		return modelops.LoadAccounts(m)
	}
	return nil
}
