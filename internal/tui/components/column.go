package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/tui/theme"
	"github.com/oyilmaz/firsat/internal/types"
)

// RenderColumn renders a complete stage column with its header and deals.
// This is a pure, reusable component that composes individual card components.
//
// Layout:
//
//	{Stage Label} ({count})
//	▲ (if scrolled down)
//	{Deal 1}
//	{Deal 2}
//	...
//	▼ (if more deals below)
//
// Parameters:
//   - stage: The stage this column shows
//   - deals: Deals in this stage, in store order
//   - selected: Whether this column is currently selected
//   - selectedDealIdx: Index of selected deal in this column (-1 if not this column)
//   - hovered: Whether a drag is currently hovering over this column
//   - grabbedDeal: ID of the deal being dragged (0 when no drag is active)
//   - height: Fixed height for the column (0 for auto)
//   - scrollOffset: Index of first visible deal
func RenderColumn(
	stage *models.Stage,
	deals []*models.Deal,
	selected bool,
	selectedDealIdx int,
	hovered bool,
	grabbedDeal types.DealID,
	height int,
	scrollOffset int,
) string {
	header := fmt.Sprintf("%s (%d)", stage.Label, len(deals))
	content := TitleStyle.Render(header) + "\n"

	if len(deals) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Padding(1, 0)
		content += emptyStyle.Render("No deals")
	} else {
		availableHeight := height - ColumnOverhead
		maxVisibleDeals := max(availableHeight/DealCardHeight, 1)

		// Always reserve space for the top indicator line
		if scrollOffset > 0 {
			content += IndicatorStyle.Render("▲ more above") + "\n"
		} else {
			content += "\n"
		}

		endIdx := min(scrollOffset+maxVisibleDeals, len(deals))
		visibleDeals := deals[scrollOffset:endIdx]

		for i, deal := range visibleDeals {
			actualIdx := scrollOffset + i
			if grabbedDeal != 0 && deal.ID == grabbedDeal {
				// Origin slot of an active drag
				content += RenderCardSlot()
				continue
			}
			isDealSelected := selected && actualIdx == selectedDealIdx
			content += RenderCard(deal, isDealSelected, false)
		}

		// Pad remaining space so the bottom indicator sits flush with the
		// bottom of the column. The height parameter is the total box
		// height; lipgloss adds the border and padding lines itself.
		usedLines := headerLines + topIndicatorLines + (len(visibleDeals) * DealCardHeight)

		hasBottomIndicator := endIdx < len(deals)
		var bottomIndicatorLines int
		if hasBottomIndicator {
			bottomIndicatorLines = 2 // newline + indicator text
		}

		contentHeight := height - columnBorderOverhead
		remainingLines := contentHeight - usedLines - bottomIndicatorLines
		if remainingLines > 0 {
			content += strings.Repeat("\n", remainingLines)
		}

		if hasBottomIndicator {
			content += "\n" + IndicatorStyle.Render("▼ more below")
		}
	}

	style := ColumnStyle
	if stage.Color != "" {
		style = style.BorderForeground(lipgloss.Color(stage.Color))
	}
	if hovered {
		style = style.BorderForeground(lipgloss.Color(theme.GrabbedBorder))
	} else if selected {
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if height > 0 {
		// Subtract 2 for top and bottom borders since .Height() sets content area height
		style = style.Height(height - 2)
	}

	return style.Render(content)
}

// MaxVisibleDeals returns how many cards fit in a column of the given total
// height. Used by handlers and the layout registry so scrolling and hit
// testing agree with what RenderColumn draws.
func MaxVisibleDeals(height int) int {
	return max((height-ColumnOverhead)/DealCardHeight, 1)
}
