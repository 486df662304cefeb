package tui

import (
	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/events"
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// RefreshMsg is sent when the backend change feed reports a data change
type RefreshMsg struct {
	Event events.Event
}

// DealsLoadedMsg is sent when a deal refresh completes. Offline reports
// whether the data came from the local snapshot instead of the backend.
type DealsLoadedMsg struct {
	Deals   []*models.Deal
	Offline bool
	Err     error
}

// AccountsLoadedMsg is sent when an account refresh completes
type AccountsLoadedMsg struct {
	Accounts []*models.Account
	Err      error
}

// DetailLoadedMsg is sent when a deal detail fetch completes
type DetailLoadedMsg struct {
	Detail *models.DealDetail
	Err    error
}

// CommitResolvedMsg carries the backend's answer to an optimistic stage
// transition. The handler settles the store through the Commit (Confirm on
// success, Rollback on failure) so all deal mutation stays on the update
// loop.
type CommitResolvedMsg struct {
	Commit  *board.Commit
	Updated *models.Deal
	Deal    types.DealID
	From    types.StageID
	To      types.StageID
	Err     error
}

// DealSavedMsg is sent when a create/edit form submission completes
type DealSavedMsg struct {
	Deal    *models.Deal
	Created bool
	Err     error
}

// TokenStatusMsg carries the result of a token expiry check. Warning is
// empty when the token is fine.
type TokenStatusMsg struct {
	Warning string
}

// ConnectionEstablishedMsg is sent when the event feed connects
type ConnectionEstablishedMsg struct{}

// ConnectionLostMsg is sent when the event feed disconnects
type ConnectionLostMsg struct{}

// ConnectionReconnectingMsg is sent while the event feed is reconnecting
type ConnectionReconnectingMsg struct{}
