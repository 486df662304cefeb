package render

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/components"
	"github.com/oyilmaz/firsat/internal/tui/theme"
)

// ViewAccounts renders the accounts list: one row per account with type,
// contact info and balances.
func ViewAccounts(m *tui.Model) string {
	accounts := m.Store.Accounts()

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title))
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))
	selectedStyle := rowStyle.Background(lipgloss.Color(theme.SelectedBg)).Bold(true)
	subtleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	var b strings.Builder
	b.WriteString(headerStyle.Render(padCell("Account", 32)+padCell("Type", 10)+padCell("Phone", 16)+padCell("Receivable", 14)) + "\n")

	if len(accounts) == 0 {
		b.WriteString(subtleStyle.Italic(true).Render("No accounts loaded"))
	}

	visible := m.UiState.ContentHeight() - 2
	cursor := m.UiState.AccountCursor()
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(start+visible, len(accounts))

	for i, account := range accounts[start:end] {
		idx := start + i
		row := padCell(account.Title, 32) +
			padCell(string(account.AccountType), 10) +
			padCell(account.Phone, 16) +
			padCell(components.FormatTRY(account.ReceivableBalance), 14)
		if idx == cursor {
			b.WriteString(selectedStyle.Render("▸ "+row) + "\n")
		} else {
			b.WriteString(rowStyle.Render("  "+row) + "\n")
		}
	}

	body := lipgloss.NewStyle().Padding(0, 2).Render(strings.TrimRight(b.String(), "\n"))

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

// padCell truncates or pads a cell to a fixed display width
func padCell(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width-2 {
		s = string(runes[:width-3]) + "…"
	}
	pad := width - lipgloss.Width(s)
	if pad < 0 {
		pad = 0
	}
	return s + strings.Repeat(" ", pad)
}
