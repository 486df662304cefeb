// Package components provides reusable UI components and styles.
// Call InitStyles() before use to initialize all style variables.
package components

import (
	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/config"
	"github.com/oyilmaz/firsat/internal/tui/theme"
)

// These are cached to avoid recomputing on every redraw.
var (
	activeTabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}

	// TabStyle defines inactive tabs
	TabStyle lipgloss.Style

	// ActiveTabStyle defines the selected tab
	ActiveTabStyle lipgloss.Style

	// TabGapStyle fills the remaining space after tabs
	TabGapStyle lipgloss.Style

	// ColumnStyle defines the appearance of pipeline stage columns
	ColumnStyle lipgloss.Style

	// CardStyle defines the appearance of individual deals as cards
	CardStyle lipgloss.Style

	// TitleStyle defines the appearance of titles (stage names, app header)
	TitleStyle lipgloss.Style

	// FormBoxStyle defines the base style for deal forms
	FormBoxStyle lipgloss.Style

	// DetailBoxStyle defines the base style for the deal detail popup
	DetailBoxStyle lipgloss.Style

	// HelpBoxStyle defines the base style for the help screen
	HelpBoxStyle lipgloss.Style

	// InfoBannerStyle defines the appearance of info notifications
	InfoBannerStyle lipgloss.Style

	// WarningBannerStyle defines the appearance of warning notifications
	WarningBannerStyle lipgloss.Style

	// ErrorBannerStyle defines the appearance of error notifications
	ErrorBannerStyle lipgloss.Style

	// IndicatorStyle defines the appearance of scroll indicators
	IndicatorStyle lipgloss.Style

	// StatusBarStyle defines the base style for the status bar
	StatusBarStyle lipgloss.Style

	// OfflineBadgeStyle marks the board as showing snapshot data
	OfflineBadgeStyle lipgloss.Style
)

// InitStyles initializes all styles with the given color scheme
func InitStyles(colors config.ColorScheme) {
	// Initialize theme colors
	theme.Init(colors)

	// Tab styles
	TabStyle = lipgloss.NewStyle().
		Border(tabBorder, true).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(0, 1)

	ActiveTabStyle = TabStyle.Border(activeTabBorder, true)

	TabGapStyle = TabStyle.
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.ColumnBorder)).
		PaddingLeft(1).
		PaddingRight(1).
		Width(ColumnContentWidth)

	CardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(colors.CardBorder)).
		BorderBackground(lipgloss.Color(colors.CardBackground)).
		Background(lipgloss.Color(colors.CardBackground)).
		Padding(0).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	FormBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2)

	DetailBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Edit)).
		Padding(1, 2)

	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Edit)).
		Padding(1, 2)

	InfoBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Bold(true).
		Padding(0, 1)

	WarningBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Bold(true).
		Padding(0, 1)

	ErrorBannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Bold(true).
		Padding(0, 1)

	IndicatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Align(lipgloss.Center)

	StatusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(colors.StatusBarBg)).
		Foreground(lipgloss.Color(colors.StatusBarText))

	OfflineBadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Bold(true).
		Padding(0, 1)
}
