package render

import (
	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/components"
	"github.com/oyilmaz/firsat/internal/tui/widgets"
)

// ViewDashboard renders the pipeline dashboard: headline totals, a value
// bar chart per stage and a stage breakdown table.
func ViewDashboard(m *tui.Model) string {
	summary := m.Store.Summary()
	stages := m.Store.Stages()

	width := max(m.UiState.Width()-4, 40)
	chartHeight := max(m.UiState.ContentHeight()/2, 8)

	totals := widgets.RenderPipelineTotals(summary, width)
	chart := widgets.RenderPipelineChart(summary, stages, width, chartHeight)
	breakdown := widgets.RenderStageBreakdown(summary, stages)

	body := lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, totals, "", chart, "", breakdown))

	tabBar := components.RenderTabs(components.ViewTabs(), activeTab(m), m.UiState.Width(), getInlineNotification(m))
	footer := components.RenderStatusBar(statusBarProps(m))

	content := lipgloss.JoinVertical(lipgloss.Left, tabBar, body)

	contentHeight := lipgloss.Height(content)
	gapLines := max(m.UiState.Height()-contentHeight-1, 0)
	var gap string
	for range gapLines {
		gap += "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, gap+footer)
}
