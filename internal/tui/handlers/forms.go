package handlers

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/huhforms"
	"github.com/oyilmaz/firsat/internal/tui/modelops"
	"github.com/oyilmaz/firsat/internal/tui/state"
)

// openDealForm builds the deal form, empty for a new deal or populated from
// an existing one, and switches to form mode.
func openDealForm(m *tui.Model, existing *models.Deal) tea.Cmd {
	if existing == nil {
		m.FormState.Clear()
	} else {
		m.FormState.Populate(
			existing.ID,
			existing.Title,
			existing.Source,
			formatFloatField(existing.EstimatedValue),
			formatFloatField(existing.Probability),
			existing.AccountID,
		)
	}

	form := huhforms.CreateDealForm(
		m.FormState.TitlePtr(),
		m.FormState.SourcePtr(),
		m.FormState.ValuePtr(),
		m.FormState.ProbabilityPtr(),
		m.FormState.AccountIDPtr(),
		m.Store.Accounts(),
		m.FormState.ConfirmPtr(),
	).WithTheme(huhforms.CreateFormTheme(m.Config.ColorScheme))

	m.FormState.SetDealForm(form)
	m.UiState.SetMode(state.DealFormMode)
	return form.Init()
}

// HandleDealFormMsg routes messages while the deal form is active. Escape
// closes the form; everything else is forwarded to huh.
func HandleDealFormMsg(m *tui.Model, msg tea.Msg) tea.Cmd {
	form := m.FormState.DealForm()
	if form == nil {
		m.UiState.SetMode(state.NormalMode)
		return nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			closeDealForm(m)
			return tea.ClearScreen
		case "ctrl+c":
			return tea.Quit
		}
	}

	model, cmd := form.Update(msg)
	updated, ok := model.(*huh.Form)
	if !ok {
		return cmd
	}
	m.FormState.SetDealForm(updated)

	if updated.State == huh.StateCompleted {
		var submit tea.Cmd
		if m.FormState.Confirm() {
			// Capture the form values before they are cleared
			submit = modelops.SubmitDealForm(m)
		}
		closeDealForm(m)
		return tea.Batch(tea.ClearScreen, submit)
	}

	return cmd
}

func closeDealForm(m *tui.Model) {
	m.FormState.Clear()
	m.UiState.SetMode(state.NormalMode)
}

// formatFloatField renders a stored numeric value back into form input text,
// dropping a trailing ".0" so whole numbers round-trip cleanly.
func formatFloatField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
