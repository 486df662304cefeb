// Package core wires the TUI model to Bubble Tea. The model, handlers and
// render packages have no dependency on each other's internals; App is the
// single place they meet.
package core

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/oyilmaz/firsat/internal/board"
	"github.com/oyilmaz/firsat/internal/config"
	"github.com/oyilmaz/firsat/internal/events"
	"github.com/oyilmaz/firsat/internal/services/deal"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/tui"
	"github.com/oyilmaz/firsat/internal/tui/handlers"
	"github.com/oyilmaz/firsat/internal/tui/modelops"
	"github.com/oyilmaz/firsat/internal/tui/render"
)

// App wraps the TUI Model and implements the tea.Model interface.
// This is the single entry point for the Bubble Tea application.
type App struct {
	model *tui.Model
}

// New creates a new App with an initialized Model. The event channels may be
// nil when the change feed is disabled.
func New(
	ctx context.Context,
	cfg *config.Config,
	svc deal.Service,
	st *store.Store,
	committer *board.Committer,
	eventChan <-chan events.Event,
	notifyChan <-chan events.NotificationMsg,
) *App {
	model := tui.InitialModel(ctx, cfg, svc, st, committer, eventChan, notifyChan)
	return &App{model: &model}
}

// Init kicks off the initial loads.
// Implements tea.Model interface.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		modelops.LoadDeals(a.model),
		modelops.LoadAccounts(a.model),
		modelops.CheckToken(a.model),
	)
}

// Update handles all messages and updates the model.
// Implements tea.Model interface.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := handlers.Update(a.model, msg)
	return a, cmd
}

// View renders the current state of the application.
// Implements tea.Model interface.
func (a *App) View() tea.View {
	return render.View(a.model)
}

// GetModel returns the underlying Model, primarily for tests.
func (a *App) GetModel() *tui.Model {
	return a.model
}
