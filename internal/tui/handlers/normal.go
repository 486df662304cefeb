package handlers

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/components"
	"github.com/oyilmaz/firsat/internal/tui/modelops"
	"github.com/oyilmaz/firsat/internal/tui/state"
)

// HandleNormalMode handles key messages on the board. A grabbed deal
// reinterprets the navigation keys as move/drop/cancel until the grab ends.
func HandleNormalMode(m *tui.Model, msg tea.KeyMsg) tea.Cmd {
	if m.Drag.Phase() == board.Dragging {
		return handleGrabbedKeys(m, msg)
	}

	km := m.Config.KeyMappings
	key := msg.String()
	if key == "space" {
		key = " "
	}

	switch key {
	case km.Quit, "ctrl+c":
		return tea.Quit

	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)

	case km.ShowDashboard:
		m.UiState.SetMode(state.DashboardMode)

	case km.ShowAccounts:
		m.UiState.SetMode(state.AccountsMode)

	case km.Refresh:
		m.Store.Invalidate(store.KeyDeals)
		m.Store.Invalidate(store.KeyAccounts)
		m.AppState.SetLoading(true)
		return tea.Batch(modelops.LoadDeals(m), modelops.LoadAccounts(m))

	case km.PrevColumn:
		moveColumnSelection(m, -1)

	case km.NextColumn:
		moveColumnSelection(m, 1)

	case km.PrevDeal:
		moveDealSelection(m, -1)

	case km.NextDeal:
		moveDealSelection(m, 1)

	case km.ScrollViewportLeft:
		if m.UiState.ScrollViewportLeft() {
			m.UiState.SetSelectedColumn(m.UiState.ViewportOffset())
			m.UiState.SetSelectedDeal(0)
		}

	case km.ScrollViewportRight:
		if m.UiState.ScrollViewportRight(len(m.Columns())) {
			m.UiState.SetSelectedColumn(m.UiState.ViewportOffset())
			m.UiState.SetSelectedDeal(0)
		}

	case km.AddDeal:
		return openDealForm(m, nil)

	case km.EditDeal:
		if deal := m.CurrentDeal(); deal != nil {
			return openDealForm(m, deal)
		}

	case km.ViewDeal, "enter":
		if deal := m.CurrentDeal(); deal != nil {
			m.UiState.SetMode(state.DetailMode)
			return modelops.LoadDetail(m, deal.ID)
		}

	case km.GrabDeal:
		if deal := m.CurrentDeal(); deal != nil {
			m.Drag.Grab(deal.ID, deal.Status)
		}

	case km.MoveDealLeft:
		return moveDealToAdjacent(m, -1)

	case km.MoveDealRight:
		return moveDealToAdjacent(m, 1)
	}

	return nil
}

// handleGrabbedKeys drives a keyboard drag session: h/l retarget the hover
// column, the grab key or enter drops, escape cancels.
func handleGrabbedKeys(m *tui.Model, msg tea.KeyMsg) tea.Cmd {
	km := m.Config.KeyMappings
	session := m.Drag.Session()
	if session == nil {
		return nil
	}

	switch msg.String() {
	case "esc":
		m.Drag.Cancel()

	case km.PrevColumn:
		retargetHover(m, session, -1)

	case km.NextColumn:
		retargetHover(m, session, 1)

	case km.GrabDeal, "enter":
		if drop, ok := m.Drag.Commit(); ok {
			followDrop(m, drop)
			return beginCommit(m, drop)
		}

	case km.Quit, "ctrl+c":
		return tea.Quit
	}

	return nil
}

// retargetHover moves the hover target one column left or right of the
// current hover, clamped to the board edges.
func retargetHover(m *tui.Model, session *board.Session, delta int) {
	columns := m.Columns()
	if len(columns) == 0 {
		return
	}

	current, ok := session.Hover()
	if !ok {
		current = session.Origin()
	}

	idx := 0
	for i, col := range columns {
		if col.Stage.ID == current {
			idx = i
			break
		}
	}

	idx += delta
	if idx < 0 || idx >= len(columns) {
		return
	}
	m.Drag.HoverStage(columns[idx].Stage.ID)
	m.UiState.SetSelectedColumn(idx)
	m.UiState.EnsureSelectionVisible(idx)
}

// moveDealToAdjacent commits the selected deal one column left or right
// without entering a grab session.
func moveDealToAdjacent(m *tui.Model, delta int) tea.Cmd {
	deal := m.CurrentDeal()
	if deal == nil {
		return nil
	}

	columns := m.Columns()
	idx := m.UiState.SelectedColumn() + delta
	if idx < 0 || idx >= len(columns) {
		return nil
	}

	drop := board.Drop{
		Deal: deal.ID,
		From: deal.Status,
		To:   columns[idx].Stage.ID,
	}
	followDrop(m, drop)
	return beginCommit(m, drop)
}

// followDrop moves the selection to the drop target column so the moved
// deal stays under the cursor after the board re-partitions.
func followDrop(m *tui.Model, drop board.Drop) {
	for i, col := range m.Columns() {
		if col.Stage.ID == drop.To {
			m.UiState.SetSelectedColumn(i)
			m.UiState.EnsureSelectionVisible(i)
			m.UiState.SetSelectedDeal(len(col.Deals)) // optimistic append position
			break
		}
	}
}

func moveColumnSelection(m *tui.Model, delta int) {
	columns := m.Columns()
	if len(columns) == 0 {
		return
	}

	idx := m.UiState.SelectedColumn() + delta
	if idx < 0 || idx >= len(columns) {
		return
	}

	m.UiState.SetSelectedColumn(idx)
	m.UiState.SetSelectedDeal(0)
	m.UiState.EnsureSelectionVisible(idx)
}

func moveDealSelection(m *tui.Model, delta int) {
	column, ok := m.CurrentColumn()
	if !ok || len(column.Deals) == 0 {
		return
	}

	idx := m.UiState.SelectedDeal() + delta
	if idx < 0 || idx >= len(column.Deals) {
		return
	}

	m.UiState.SetSelectedDeal(idx)
	visible := components.MaxVisibleDeals(m.UiState.ContentHeight())
	m.UiState.EnsureDealVisible(column.Stage.ID, idx, visible)
}
