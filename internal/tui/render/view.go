// Package render turns the model into terminal frames. Every view is a
// pure function of the model; the only side effect is the board view
// refreshing the layout registry used for pointer hit-testing.
package render

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/state"
	"github.com/oyilmaz/firsat/internal/tui/theme"
)

// View is the main view dispatcher that renders the current state of the
// application. This implements the "View" part of the Model-View-Update
// pattern.
func View(m *tui.Model) tea.View {
	var view tea.View
	view.AltScreen = true                                   // Use alternate screen buffer
	view.BackgroundColor = lipgloss.Color(theme.Background) // Set root background color
	view.MouseMode = tea.MouseModeAllMotion                 // Track all mouse motion for drag-and-drop

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	switch m.UiState.Mode() {
	case state.DashboardMode:
		view.Content = ViewDashboard(m)
		return view
	case state.AccountsMode:
		view.Content = ViewAccounts(m)
		return view
	}

	// Board-based modes: always draw the board, then stack modal layers
	baseView := ViewBoard(m)

	layerStack := []*lipgloss.Layer{
		lipgloss.NewLayer(baseView),
	}

	if dragLayer := RenderDragLayer(m); dragLayer != nil {
		layerStack = append(layerStack, dragLayer)
	}

	var modalLayer *lipgloss.Layer
	switch m.UiState.Mode() {
	case state.DealFormMode:
		modalLayer = RenderDealFormLayer(m)
	case state.DetailMode:
		modalLayer = RenderDetailLayer(m)
	case state.HelpMode:
		modalLayer = RenderHelpLayer(m)
	}
	if modalLayer != nil {
		layerStack = append(layerStack, modalLayer)
	}

	canvas := lipgloss.NewCanvas(layerStack...)
	view.Content = canvas.Render()
	return view
}
