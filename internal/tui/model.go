package tui

import (
	"context"

	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/config"
	"github.com/oyilmaz/firsat/internal/events"
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/services/deal"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/tui/state"
)

// DragThreshold is the pointer movement (in cells) required before a press
// on a card becomes a drag. Below this a press-and-release is a click.
const DragThreshold = 1

// Model holds all application state for the TUI. Fields are exported so the
// handlers, modelops and render subpackages can operate on the model without
// import cycles.
type Model struct {
	// Ctx is the application context, cancelled on shutdown
	Ctx context.Context

	// Config is the loaded application configuration
	Config *config.Config

	// Store is the single source of truth for deals, accounts and stages
	Store *store.Store

	// Service loads and mutates deals against the backend
	Service deal.Service

	// Committer applies optimistic stage transitions with rollback
	Committer *board.Committer

	// Drag is the pointer/keyboard drag session state machine
	Drag *board.Manager

	// Layout maps screen coordinates to cards and columns. The board
	// renderer refreshes it every frame from the geometry it draws.
	Layout *board.Layout

	// State objects
	AppState          *state.AppState
	UiState           *state.UIState
	FormState         *state.FormState
	NotificationState *state.NotificationState
	ConnectionState   *state.ConnectionState

	// EventChan delivers batched backend change events, nil when the
	// change feed is disabled
	EventChan <-chan events.Event

	// NotifyChan delivers user-facing connection notifications from the
	// events client
	NotifyChan <-chan events.NotificationMsg

	// SubscriptionStarted tracks whether the event listener command has
	// been dispatched
	SubscriptionStarted bool
}

// InitialModel creates the TUI model. The event channels may be nil when the
// change feed is disabled.
func InitialModel(
	ctx context.Context,
	cfg *config.Config,
	svc deal.Service,
	st *store.Store,
	committer *board.Committer,
	eventChan <-chan events.Event,
	notifyChan <-chan events.NotificationMsg,
) Model {
	layout := board.NewLayout()

	connStatus := state.Disconnected
	if eventChan != nil {
		connStatus = state.Connected
	}

	return Model{
		Ctx:               ctx,
		Config:            cfg,
		Store:             st,
		Service:           svc,
		Committer:         committer,
		Drag:              board.NewManager(layout, DragThreshold),
		Layout:            layout,
		AppState:          state.NewAppState(),
		UiState:           state.NewUIState(),
		FormState:         state.NewFormState(),
		NotificationState: state.NewNotificationState(),
		ConnectionState:   state.NewConnectionState(connStatus),
		EventChan:         eventChan,
		NotifyChan:        notifyChan,
	}
}

// Columns partitions the store's deals into stage columns in board order.
// Deals whose stage is not configured are excluded.
func (m *Model) Columns() []board.ColumnView {
	return board.Partition(m.Store.Deals(), m.Store.Stages())
}

// CurrentColumn returns the currently selected column view.
// Returns a zero value and false if there are no columns.
func (m *Model) CurrentColumn() (board.ColumnView, bool) {
	columns := m.Columns()
	if len(columns) == 0 {
		return board.ColumnView{}, false
	}
	idx := m.UiState.SelectedColumn()
	if idx >= len(columns) {
		idx = len(columns) - 1
	}
	return columns[idx], true
}

// CurrentDeal returns the currently selected deal.
// Returns nil if the selected column is empty.
func (m *Model) CurrentDeal() *models.Deal {
	column, ok := m.CurrentColumn()
	if !ok {
		return nil
	}
	if len(column.Deals) == 0 {
		return nil
	}
	idx := m.UiState.SelectedDeal()
	if idx >= len(column.Deals) {
		idx = len(column.Deals) - 1
	}
	return column.Deals[idx]
}

// ClampSelection keeps the column and deal selection within bounds after
// the underlying data changed (refresh, event invalidation, drag commit).
func (m *Model) ClampSelection() {
	columns := m.Columns()
	if len(columns) == 0 {
		m.UiState.ResetSelection()
		return
	}
	if m.UiState.SelectedColumn() >= len(columns) {
		m.UiState.SetSelectedColumn(len(columns) - 1)
	}
	column := columns[m.UiState.SelectedColumn()]
	if m.UiState.SelectedDeal() >= len(column.Deals) {
		m.UiState.SetSelectedDeal(max(0, len(column.Deals)-1))
	}
}
