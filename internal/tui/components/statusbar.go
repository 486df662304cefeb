package components

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/tui/state"
	"github.com/oyilmaz/firsat/internal/tui/theme"
)

// StatusBarProps carries everything the status bar displays.
type StatusBarProps struct {
	Width            int
	ConnectionStatus state.ConnectionStatus
	Offline          bool
	LastSync         time.Time
	TokenWarning     string
}

// RenderStatusBar renders a status bar with left and right aligned text.
// Left side: app name plus offline/token badges. Right side: feed status,
// last sync time and the help hint.
func RenderStatusBar(props StatusBarProps) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	left := style.Render("Fırsat - Sales Pipeline")
	if props.Offline {
		left += " " + OfflineBadgeStyle.Render("OFFLINE")
	}
	if props.TokenWarning != "" {
		left += " " + WarningBannerStyle.Render(props.TokenWarning)
	}

	var rightParts []string
	switch props.ConnectionStatus {
	case state.Connected:
		rightParts = append(rightParts, "● live")
	case state.Reconnecting:
		rightParts = append(rightParts, "◌ reconnecting")
	case state.Disconnected:
		rightParts = append(rightParts, "○ polling")
	}
	if !props.LastSync.IsZero() {
		rightParts = append(rightParts, "synced "+props.LastSync.Format("15:04:05"))
	}
	rightParts = append(rightParts, "press ? for help")
	right := style.Render(strings.Join(rightParts, "  "))

	gapWidth := props.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gapWidth < 1 {
		gapWidth = 1
	}
	gap := strings.Repeat(" ", gapWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)
}
