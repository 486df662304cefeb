package render

import (
	"fmt"
	"strings"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/components"
)

// DetailMarkdown builds the markdown body for the deal detail popup from
// the deal, its account and its quotes.
func DetailMarkdown(m *tui.Model, detail *models.DealDetail) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", detail.Title)

	stageLabel := string(detail.Status)
	for _, s := range m.Store.Stages() {
		if s.ID == detail.Status {
			stageLabel = s.Label
			break
		}
	}

	fmt.Fprintf(&b, "**Stage:** %s  \n", stageLabel)
	fmt.Fprintf(&b, "**Value:** %s  \n", components.FormatTRY(detail.EstimatedValue))
	fmt.Fprintf(&b, "**Probability:** %%%d  \n", int(detail.Probability))
	fmt.Fprintf(&b, "**Weighted:** %s  \n", components.FormatTRY(detail.WeightedValue()))
	if detail.Source != "" {
		fmt.Fprintf(&b, "**Source:** %s  \n", detail.Source)
	}
	if !detail.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "**Created:** %s  \n", detail.CreatedAt.Format("Jan 2, 2006"))
	}

	if detail.Account != nil {
		b.WriteString("\n## Account\n\n")
		fmt.Fprintf(&b, "%s (%s)\n", detail.Account.Title, detail.Account.AccountType)
		if detail.Account.Phone != "" {
			fmt.Fprintf(&b, "\nPhone: %s  \n", detail.Account.Phone)
		}
		if detail.Account.Email != "" {
			fmt.Fprintf(&b, "Email: %s  \n", detail.Account.Email)
		}
		if detail.Account.ReceivableBalance != 0 {
			fmt.Fprintf(&b, "Receivable: %s  \n", components.FormatTRY(detail.Account.ReceivableBalance))
		}
	}

	if len(detail.Quotes) > 0 {
		b.WriteString("\n## Quotes\n\n")
		for _, q := range detail.Quotes {
			fmt.Fprintf(&b, "- **%s** v%d - %s - %s\n",
				q.QuoteNo, q.Version, q.Status, components.FormatTRY(q.TotalAmount))
		}
	}

	return b.String()
}
