package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/oyilmaz/firsat/internal/config"
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/types"
)

// DealUpdater is the backend write the committer needs. *api.Client
// satisfies it; tests substitute a stub.
type DealUpdater interface {
	UpdateDealStatus(ctx context.Context, id types.DealID, status types.StageID) (*models.Deal, error)
}

// Committer applies a drop as an explicit two-phase optimistic protocol:
// Begin mutates the store so the card appears in the new column immediately,
// Resolve issues the backend update and either confirms or rolls back.
//
// One commit per deal is in flight at a time. That is structural, not a
// lock: the session manager admits a single active drag, so a second drag
// of the same card cannot start before this one's gesture ended.
type Committer struct {
	store       *store.Store
	api         DealUpdater
	stages      map[types.StageID]bool
	transitions config.Transitions
}

// NewCommitter creates a committer for the configured stage set and
// transition matrix.
func NewCommitter(s *store.Store, api DealUpdater, stages []*models.Stage, transitions config.Transitions) *Committer {
	known := make(map[types.StageID]bool, len(stages))
	for _, st := range stages {
		known[st.ID] = true
	}
	return &Committer{
		store:       s,
		api:         api,
		stages:      known,
		transitions: transitions,
	}
}

// Commit is one in-flight optimistic status transition
type Commit struct {
	committer *Committer
	deal      types.DealID
	from      types.StageID
	to        types.StageID
}

// Begin validates the drop and applies the optimistic write. The returned
// Commit must be resolved exactly once.
//
// ErrStaleDeal means the deal left the store between drag-start and drop;
// callers treat it as a silent no-op, not a user-facing failure.
func (c *Committer) Begin(dealID types.DealID, to types.StageID) (*Commit, error) {
	deal, ok := c.store.Deal(dealID)
	if !ok {
		return nil, ErrStaleDeal
	}
	if !c.stages[to] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, to)
	}
	if deal.Status == to {
		return nil, ErrNoChange
	}
	if !c.transitions.Allowed(deal.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTransitionBlocked, deal.Status, to)
	}

	prev, ok := c.store.SetDealStatus(dealID, to)
	if !ok {
		return nil, ErrStaleDeal
	}

	return &Commit{committer: c, deal: dealID, from: prev, to: to}, nil
}

// Resolve issues the backend update for the optimistic write and returns
// the backend's authoritative copy. It performs only network work: the
// store is settled afterwards by Confirm or Rollback on the update loop,
// so commands running on their own goroutine never mutate deal structs the
// renderer is reading. No automatic retry: a failed transition needs a new
// drag.
//
// An issued request is not cancellable; a failure response is compensated,
// never aborted.
func (cm *Commit) Resolve(ctx context.Context) (*models.Deal, error) {
	updated, err := cm.committer.api.UpdateDealStatus(ctx, cm.deal, cm.to)
	if err != nil {
		return nil, fmt.Errorf("status update for deal %d failed: %w", cm.deal, err)
	}
	return updated, nil
}

// Confirm swaps in the backend's copy after a successful Resolve and marks
// the collection fresh. Must run on the update loop.
func (cm *Commit) Confirm(updated *models.Deal) {
	cm.committer.store.ReplaceDeal(updated)
	cm.committer.store.MarkFresh(store.KeyDeals)
}

// Rollback restores the pre-commit status after a failed Resolve. Must run
// on the update loop. If the deal vanished from the store while the request
// was outstanding (a refresh replaced the collection), there is nothing to
// restore: the refresh already holds the backend's truth.
func (cm *Commit) Rollback() {
	if _, ok := cm.committer.store.SetDealStatus(cm.deal, cm.from); !ok {
		slog.Debug("rollback skipped, deal no longer in store", "deal", cm.deal.ToInt())
	}
}

// From returns the pre-commit stage, for the snap-back notification
func (cm *Commit) From() types.StageID {
	return cm.from
}

// To returns the target stage
func (cm *Commit) To() types.StageID {
	return cm.to
}

// Deal returns the committed deal id
func (cm *Commit) Deal() types.DealID {
	return cm.deal
}
