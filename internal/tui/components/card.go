package components

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/tui/theme"
)

// RenderCard renders a single deal as a card
//
//	┏━━━━━━━━━━━━━━━━━━━━━━┓
//	┃ {Deal Title}         ┃
//	┃ {Account}            ┃
//	┃ ₺12.500        %40   ┃
//	┗━━━━━━━━━━━━━━━━━━━━━━┛
//
// The card has a fixed width and height. Grabbed marks the card as the one
// currently being dragged.
func RenderCard(deal *models.Deal, selected bool, grabbed bool) string {
	var bg string
	if selected {
		bg = theme.SelectedBg
	} else {
		bg = theme.CardBg
	}

	title := renderCardTitle(deal, bg)
	account := renderCardAccount(deal, bg)
	valueLine := renderCardValue(deal, bg)
	content := title + "\n" + account + "\n" + valueLine

	style := CardStyle.
		Background(lipgloss.Color(bg)).
		BorderBackground(lipgloss.Color(bg))
	if grabbed {
		style = style.BorderForeground(lipgloss.Color(theme.GrabbedBorder))
	} else if selected {
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}

	return style.Render(content)
}

// RenderCardSlot renders a dimmed placeholder where a grabbed card sits in
// its origin column while the drag is in progress.
func RenderCardSlot() string {
	style := CardStyle.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.Subtle))
	placeholder := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Italic(true).
		Render(" moving...")
	return style.Render(placeholder + "\n\n")
}

// truncateCardLine shortens a line to the card's text width. Counting runes
// keeps Turkish titles intact instead of cutting a multibyte character in half.
func truncateCardLine(s string) string {
	runes := []rune(s)
	if len(runes) <= dealTitleMaxLength {
		return s
	}
	return string(runes[:dealTitleMaxLength-1]) + "…"
}

func renderCardTitle(deal *models.Deal, bg string) string {
	title := truncateCardLine(deal.Title)

	return lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(theme.Normal)).
		Render(" " + title)
}

func renderCardAccount(deal *models.Deal, bg string) string {
	if !deal.HasAccount() {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Background(lipgloss.Color(bg)).
			Italic(true).
			Render(" no account")
	}

	name := deal.AccountTitle
	if name == "" {
		name = fmt.Sprintf("account #%d", deal.AccountID.ToInt())
	}
	name = truncateCardLine(name)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Background(lipgloss.Color(bg)).
		Render(" " + name)
}

func renderCardValue(deal *models.Deal, bg string) string {
	value := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Create)).
		Background(lipgloss.Color(bg)).
		Render(" " + FormatTRY(deal.EstimatedValue))

	prob := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Highlight)).
		Background(lipgloss.Color(bg)).
		Render(fmt.Sprintf("%%%d ", int(deal.Probability)))

	gap := CardWidth - lipgloss.Width(value) - lipgloss.Width(prob)
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Render(fmt.Sprintf("%*s", gap, ""))

	return value + spacer + prob
}
