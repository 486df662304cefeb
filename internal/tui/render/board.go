package render

import (
	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/components"
	"github.com/oyilmaz/firsat/internal/tui/notifications"
	"github.com/oyilmaz/firsat/internal/tui/state"
	"github.com/oyilmaz/firsat/internal/types"
)

// getInlineNotification returns the inline notification content for the tab bar.
// Returns empty string if no notifications.
func getInlineNotification(m *tui.Model) string {
	all := m.NotificationState.All()
	if len(all) == 0 {
		return ""
	}
	return notifications.RenderInlineFromState(all[0])
}

// ViewBoard renders the main pipeline board and registers the geometry of
// everything it draws in the model's layout, so pointer hit-testing always
// matches the frame on screen.
func ViewBoard(m *tui.Model) string {
	columns := m.Columns()

	if len(columns) == 0 {
		m.Layout.SetColumns(nil)
		emptyMsg := "No stages configured. Check your config file."
		footer := components.RenderStatusBar(statusBarProps(m))
		return lipgloss.JoinVertical(lipgloss.Left, "", emptyMsg, "", footer)
	}

	// Visible column range from the viewport
	endIdx := min(m.UiState.ViewportOffset()+m.UiState.ViewportSize(), len(columns))
	visibleColumns := columns[m.UiState.ViewportOffset():endIdx]

	columnHeight := m.UiState.ContentHeight()

	// The deal being dragged, if any, keeps a dimmed slot in its origin
	var grabbedDeal types.DealID
	var hoverStage types.StageID
	if m.Drag.Phase() == board.Dragging {
		session := m.Drag.Session()
		grabbedDeal = session.Deal()
		hoverStage, _ = session.Hover()
	}

	var rendered []string
	geoms := make([]board.ColumnGeom, 0, len(visibleColumns))
	for i, col := range visibleColumns {
		globalIndex := m.UiState.ViewportOffset() + i

		isSelected := globalIndex == m.UiState.SelectedColumn()
		selectedDealIdx := -1
		if isSelected {
			selectedDealIdx = m.UiState.SelectedDeal()
		}

		scrollOffset := m.UiState.DealScrollOffset(col.Stage.ID)
		isHovered := hoverStage != "" && col.Stage.ID == hoverStage

		rendered = append(rendered, components.RenderColumn(
			col.Stage, col.Deals, isSelected, selectedDealIdx,
			isHovered, grabbedDeal, columnHeight, scrollOffset,
		))

		geoms = append(geoms, columnGeometry(col, globalIndex, i, columnHeight, scrollOffset))
	}
	m.Layout.SetColumns(geoms)

	leftIndicator, rightIndicator := scrollIndicators(
		m.UiState.ViewportOffset(), m.UiState.ViewportSize(), len(columns))

	columnsView := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, leftIndicator, " ", columnsView, " ", rightIndicator)

	tabBar := components.RenderTabs(
		components.ViewTabs(), activeTab(m), m.UiState.Width(), getInlineNotification(m))

	footer := components.RenderStatusBar(statusBarProps(m))

	content := lipgloss.JoinVertical(lipgloss.Left, tabBar, boardView)

	// Pin the footer to the bottom of the terminal
	contentHeight := lipgloss.Height(content)
	gapLines := max(m.UiState.Height()-contentHeight-1, 0)
	var gap string
	for range gapLines {
		gap += "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, gap+footer)
}

// columnGeometry computes the cell rectangle a column and its visible cards
// occupy, using the same constants RenderColumn draws with.
func columnGeometry(col board.ColumnView, globalIndex, visibleIndex, columnHeight, scrollOffset int) board.ColumnGeom {
	x := components.BoardLeftMargin + visibleIndex*components.ColumnTotalWidth
	y := components.TabBarHeight

	geom := board.ColumnGeom{
		Stage: col.Stage.ID,
		X:     x,
		W:     components.ColumnTotalWidth,
		Y:     y,
		H:     columnHeight,
	}

	// Cards start after the top border, header line and indicator line
	cardTop := y + 1 + 1 + 1
	maxVisible := components.MaxVisibleDeals(columnHeight)
	endIdx := min(scrollOffset+maxVisible, len(col.Deals))
	for i, deal := range col.Deals[scrollOffset:endIdx] {
		geom.Cards = append(geom.Cards, board.CardGeom{
			Deal: deal.ID,
			Y:    cardTop + i*components.DealCardHeight,
			H:    components.DealCardHeight,
		})
	}
	return geom
}

// scrollIndicators returns the left/right viewport arrows
func scrollIndicators(offset, size, total int) (string, string) {
	left := " "
	right := " "
	if offset > 0 {
		left = components.IndicatorStyle.Render("◀")
	}
	if offset+size < total {
		right = components.IndicatorStyle.Render("▶")
	}
	return left, right
}

// activeTab maps the current view mode to its tab. Overlay modes such as
// grabbed or detail keep the board tab highlighted.
func activeTab(m *tui.Model) components.TabID {
	switch m.UiState.Mode() {
	case state.DashboardMode:
		return components.TabDashboard
	case state.AccountsMode:
		return components.TabAccounts
	default:
		return components.TabBoard
	}
}

func statusBarProps(m *tui.Model) components.StatusBarProps {
	return components.StatusBarProps{
		Width:            m.UiState.Width(),
		ConnectionStatus: m.ConnectionState.Status(),
		Offline:          m.AppState.Offline(),
		LastSync:         m.AppState.LastSync(),
		TokenWarning:     m.AppState.TokenWarning(),
	}
}
