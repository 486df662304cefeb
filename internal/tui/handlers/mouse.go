package handlers

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/components"
	"github.com/oyilmaz/firsat/internal/tui/modelops"
	"github.com/oyilmaz/firsat/internal/tui/state"
)

// HandleMouseClick arms a potential drag on the card under the pointer and
// moves the selection there. Whether the press becomes a drag or stays a
// click is decided by the session manager on subsequent motion.
func HandleMouseClick(m *tui.Model, msg tea.MouseClickMsg) tea.Cmd {
	if m.UiState.Mode() != state.NormalMode {
		return nil
	}

	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return nil
	}

	m.Drag.PointerDown(board.PointerEvent{X: mouse.X, Y: mouse.Y})
	selectDealUnderPointer(m, mouse.X, mouse.Y)
	return nil
}

// HandleMouseMotion feeds pointer movement to the drag session manager.
func HandleMouseMotion(m *tui.Model, msg tea.MouseMotionMsg) {
	if m.UiState.Mode() != state.NormalMode {
		return
	}

	mouse := msg.Mouse()
	m.Drag.PointerMove(board.PointerEvent{X: mouse.X, Y: mouse.Y})
}

// HandleMouseRelease ends the gesture. A drop onto a different column starts
// a stage commit; a plain click on a card opens its detail view.
func HandleMouseRelease(m *tui.Model, msg tea.MouseReleaseMsg) tea.Cmd {
	if m.UiState.Mode() != state.NormalMode {
		return nil
	}

	mouse := msg.Mouse()
	wasClick := m.Drag.Phase() == board.Pending

	drop, ok := m.Drag.PointerUp(board.PointerEvent{X: mouse.X, Y: mouse.Y})
	if ok {
		followDrop(m, drop)
		return beginCommit(m, drop)
	}

	if wasClick {
		if deal := m.CurrentDeal(); deal != nil {
			m.UiState.SetMode(state.DetailMode)
			return modelops.LoadDetail(m, deal.ID)
		}
	}
	return nil
}

// HandleMouseWheel scrolls the deal list of the column under the pointer.
func HandleMouseWheel(m *tui.Model, msg tea.MouseWheelMsg) {
	if m.UiState.Mode() != state.NormalMode {
		return
	}

	mouse := msg.Mouse()
	stage, ok := m.Layout.StageAt(mouse.X, mouse.Y)
	if !ok {
		return
	}

	switch mouse.Button {
	case tea.MouseWheelUp:
		m.UiState.ScrollDealsUp(stage)

	case tea.MouseWheelDown:
		for _, col := range m.Columns() {
			if col.Stage.ID != stage {
				continue
			}
			visible := components.MaxVisibleDeals(m.UiState.ContentHeight())
			m.UiState.ScrollDealsDown(stage, len(col.Deals), visible)
			break
		}
	}
}

// selectDealUnderPointer moves the keyboard selection to the card under the
// pointer so click and keyboard navigation stay consistent.
func selectDealUnderPointer(m *tui.Model, x, y int) {
	deal, stage, ok := m.Layout.DealAt(x, y)
	if !ok {
		return
	}

	for colIdx, col := range m.Columns() {
		if col.Stage.ID != stage {
			continue
		}
		for dealIdx, d := range col.Deals {
			if d.ID == deal {
				m.UiState.SetSelectedColumn(colIdx)
				m.UiState.SetSelectedDeal(dealIdx)
				return
			}
		}
	}
}
