package components

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// TabID identifies one of the top-level views reachable from the tab bar.
type TabID int

const (
	TabBoard TabID = iota
	TabDashboard
	TabAccounts
)

// Tab pairs a view id with the label drawn in the tab bar.
type Tab struct {
	ID    TabID
	Label string
}

// ViewTabs lists the top-level views in display order.
func ViewTabs() []Tab {
	return []Tab{
		{ID: TabBoard, Label: "Board"},
		{ID: TabDashboard, Label: "Dashboard"},
		{ID: TabAccounts, Label: "Accounts"},
	}
}

// RenderTabs renders the view tab bar, highlighting the active tab.
// width is the total width to fill with the tab gap.
//
// Layout:
//
//	╭───────╮ ╭───────────╮                  [Notification]
//	│ Board │ │ Dashboard │──────────────────
//	     active      inactive
func RenderTabs(tabs []Tab, active TabID, width int, notificationContent string) string {
	var renderedTabs []string

	for _, tab := range tabs {
		if tab.ID == active {
			renderedTabs = append(renderedTabs, ActiveTabStyle.Render(tab.Label))
		} else {
			renderedTabs = append(renderedTabs, TabStyle.Render(tab.Label))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)

	// Calculate gap width accounting for notification if present
	notificationWidth := lipgloss.Width(notificationContent)
	gapWidth := max(width-lipgloss.Width(row)-notificationWidth-2, 0)
	gap := TabGapStyle.Render(strings.Repeat(" ", gapWidth))

	if notificationContent != "" {
		return lipgloss.JoinHorizontal(lipgloss.Bottom, row, gap, notificationContent)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, row, gap)
}
