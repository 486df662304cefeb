// Package modelops contains the asynchronous operations the TUI dispatches
// as Bubble Tea commands: backend loads, commit resolution and form
// submission. Handlers mutate the model synchronously; everything that
// talks to the network goes through here.
package modelops

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/oyilmaz/firsat/internal/api"
	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/services/deal"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/types"
)

// LoadDeals returns a command that refreshes deals from the backend,
// falling back to the local snapshot when offline.
func LoadDeals(m *tui.Model) tea.Cmd {
	return func() tea.Msg {
		deals, err := m.Service.RefreshDeals(m.Ctx)
		return tui.DealsLoadedMsg{
			Deals:   deals,
			Offline: m.Service.Offline(),
			Err:     err,
		}
	}
}

// LoadAccounts returns a command that refreshes accounts from the backend.
func LoadAccounts(m *tui.Model) tea.Cmd {
	return func() tea.Msg {
		accounts, err := m.Service.RefreshAccounts(m.Ctx)
		return tui.AccountsLoadedMsg{Accounts: accounts, Err: err}
	}
}

// LoadDetail returns a command that fetches the detail view data for a deal.
func LoadDetail(m *tui.Model, id types.DealID) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.Service.GetDealDetail(m.Ctx, id)
		return tui.DetailLoadedMsg{Detail: detail, Err: err}
	}
}

// ResolveCommit returns a command that asks the backend to confirm an
// optimistic stage transition. The command only does the network round
// trip; the handler settles the store from the resulting message, keeping
// every deal mutation on the update loop.
func ResolveCommit(m *tui.Model, commit *board.Commit) tea.Cmd {
	return func() tea.Msg {
		updated, err := commit.Resolve(m.Ctx)
		return tui.CommitResolvedMsg{
			Commit:  commit,
			Updated: updated,
			Deal:    commit.Deal(),
			From:    commit.From(),
			To:      commit.To(),
			Err:     err,
		}
	}
}

// SubmitDealForm returns a command that parses the form fields and creates
// or updates the deal. Numeric fields arrive as text from the form inputs.
func SubmitDealForm(m *tui.Model) tea.Cmd {
	title := strings.TrimSpace(m.FormState.Title())
	source := strings.TrimSpace(m.FormState.Source())
	valueText := strings.TrimSpace(m.FormState.Value())
	probText := strings.TrimSpace(m.FormState.Probability())
	accountID := m.FormState.AccountID()
	editingID := m.FormState.EditingDealID()

	return func() tea.Msg {
		value, err := parseAmount(valueText)
		if err != nil {
			return tui.DealSavedMsg{Err: err}
		}
		probability, err := parsePercent(probText)
		if err != nil {
			return tui.DealSavedMsg{Err: err}
		}

		req := deal.CreateDealRequest{
			Title:          title,
			Source:         source,
			Status:         types.StageLead,
			Probability:    probability,
			EstimatedValue: value,
			AccountID:      accountID,
		}

		if editingID != 0 {
			existing, ok := m.Store.Deal(editingID)
			if ok {
				req.Status = existing.Status
			}
			updated, err := m.Service.UpdateDeal(m.Ctx, deal.UpdateDealRequest{
				DealID:            editingID,
				CreateDealRequest: req,
			})
			return tui.DealSavedMsg{Deal: updated, Err: err}
		}

		created, err := m.Service.CreateDeal(m.Ctx, req)
		return tui.DealSavedMsg{Deal: created, Created: true, Err: err}
	}
}

// CheckToken returns a command that inspects the configured bearer token
// and reports a warning when it is expired or about to expire.
func CheckToken(m *tui.Model) tea.Cmd {
	token := m.Config.API.Token
	return func() tea.Msg {
		if token == "" {
			return tui.TokenStatusMsg{}
		}
		remaining, err := api.CheckToken(token, time.Now())
		if errors.Is(err, api.ErrTokenExpired) {
			return tui.TokenStatusMsg{Warning: "Token expired, refresh your session"}
		}
		if err != nil {
			return tui.TokenStatusMsg{Warning: "Token could not be parsed"}
		}
		if remaining > 0 && remaining < 10*time.Minute {
			return tui.TokenStatusMsg{
				Warning: fmt.Sprintf("Token expires in %d min", int(remaining.Minutes())),
			}
		}
		return tui.TokenStatusMsg{}
	}
}

// parseAmount parses an estimated value entered as text. Both "12500" and
// "12500.50" are accepted; a comma decimal separator is tolerated.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// parsePercent parses a probability entered as text, with or without a
// trailing percent sign.
func parsePercent(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid probability %q", s)
	}
	return v, nil
}
