package render

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/components"
	"github.com/oyilmaz/firsat/internal/tui/layers"
	"github.com/oyilmaz/firsat/internal/tui/theme"
)

// RenderDragLayer renders the ghost card that follows the pointer during a
// drag. Returns nil when no drag is in flight.
func RenderDragLayer(m *tui.Model) *lipgloss.Layer {
	if m.Drag.Phase() != board.Dragging {
		return nil
	}

	session := m.Drag.Session()
	deal, ok := m.Store.Deal(session.Deal())
	if !ok {
		return nil
	}

	ghost := components.RenderCard(deal, false, true)
	x, y := session.Position()

	// Offset so the card centers roughly under the pointer
	x -= components.CardWidth / 2
	y -= components.DealCardHeight / 2

	return layers.CreateLayerAt(ghost, x, y, m.UiState.Width(), m.UiState.Height())
}

// RenderDealFormLayer renders the deal creation/edit form modal as a layer
func RenderDealFormLayer(m *tui.Model) *lipgloss.Layer {
	form := m.FormState.DealForm()
	if form == nil {
		return nil
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight))
	var formTitle string
	if m.FormState.EditingDealID() == 0 {
		formTitle = titleStyle.Render("New Deal")
	} else {
		formTitle = titleStyle.Render("Edit Deal")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, formTitle, "", form.View())

	formBox := components.FormBoxStyle.
		Width(min(m.UiState.Width()*3/4, 70)).
		Render(content)

	return layers.CreateCenteredLayer(formBox, m.UiState.Width(), m.UiState.Height())
}

// RenderDetailLayer renders the deal detail popup as a layer.
// The detail content is markdown rendered with glamour, scrolled through a
// viewport when it does not fit the terminal.
func RenderDetailLayer(m *tui.Model) *lipgloss.Layer {
	detail := m.AppState.Detail()
	if detail == nil {
		return nil
	}

	boxWidth := min(m.UiState.Width()*3/4, 72)
	contentWidth := boxWidth - 6 // border + padding
	maxBodyHeight := max(m.UiState.Height()-8, 5)

	markdown := DetailMarkdown(m, detail)
	rendered := components.RenderMarkdown(markdown, contentWidth)

	body := rendered
	if lipgloss.Height(rendered) > maxBodyHeight {
		if !m.AppState.DetailViewportReady {
			vp := viewport.New()
			vp.Style = lipgloss.NewStyle()
			vp.MouseWheelEnabled = true
			m.AppState.DetailViewport = vp
			m.AppState.DetailViewportReady = true
		}
		m.AppState.DetailViewport.SetWidth(contentWidth)
		m.AppState.DetailViewport.SetHeight(maxBodyHeight)
		m.AppState.DetailViewport.SetContent(rendered)
		body = m.AppState.DetailViewport.View()
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))
	footer := helpStyle.Render("e: edit  esc: close")

	detailBox := components.DetailBoxStyle.
		Width(boxWidth).
		Render(body + "\n\n" + footer)

	return layers.CreateCenteredLayer(detailBox, m.UiState.Width(), m.UiState.Height())
}

// RenderHelpLayer renders the keyboard shortcuts help screen as a layer
func RenderHelpLayer(m *tui.Model) *lipgloss.Layer {
	helpBox := components.HelpBoxStyle.
		Width(50).
		Render(generateHelpText(m))

	return layers.CreateCenteredLayer(helpBox, m.UiState.Width(), m.UiState.Height())
}

// generateHelpText creates help text based on current key mappings
func generateHelpText(m *tui.Model) string {
	km := m.Config.KeyMappings
	lines := []string{
		"FIRSAT - Keyboard Shortcuts",
		"",
		"DEALS",
		fmt.Sprintf("  %s     Add new deal", km.AddDeal),
		fmt.Sprintf("  %s     Edit selected deal", km.EditDeal),
		fmt.Sprintf("  %s   Open deal detail", renderKeyName(km.ViewDeal)),
		fmt.Sprintf("  %s     Grab deal for keyboard move", km.GrabDeal),
		fmt.Sprintf("  %s     Move deal to previous stage", km.MoveDealLeft),
		fmt.Sprintf("  %s     Move deal to next stage", km.MoveDealRight),
		"",
		"NAVIGATION",
		fmt.Sprintf("  %s     Previous column", km.PrevColumn),
		fmt.Sprintf("  %s     Next column", km.NextColumn),
		fmt.Sprintf("  %s     Previous deal", km.PrevDeal),
		fmt.Sprintf("  %s     Next deal", km.NextDeal),
		"",
		"VIEWS",
		fmt.Sprintf("  %s     Board", km.ShowBoard),
		fmt.Sprintf("  %s     Dashboard", km.ShowDashboard),
		fmt.Sprintf("  %s     Accounts", km.ShowAccounts),
		"",
		"OTHER",
		fmt.Sprintf("  %s     Refresh from backend", km.Refresh),
		fmt.Sprintf("  %s     Show this help", km.ShowHelp),
		fmt.Sprintf("  %s     Quit", km.Quit),
		"",
		"Mouse: drag cards between columns",
		"",
		"Press any key to close",
	}
	return strings.Join(lines, "\n")
}

func renderKeyName(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
