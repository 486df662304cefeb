// Package store holds the client's copy of backend collections. It replaces
// the hidden global query cache of a typical SPA data-fetching layer with an
// explicit, injectable object: typed keys, TTL freshness, and an Invalidate
// API. The store is the single source of truth for deal status; only the
// board committer and full-collection refreshes mutate it.
package store

import (
	"sync"
	"time"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// Key identifies one cached collection or derived view
type Key string

const (
	KeyDeals           Key = "deals"
	KeyAccounts        Key = "accounts"
	KeyPipelineSummary Key = "pipeline_summary"
)

// Store caches backend collections with a time-to-live/invalidate-on-mutation
// policy. Safe for concurrent use: reads come from the UI goroutine while
// network callbacks write from tea command goroutines.
type Store struct {
	mu    sync.RWMutex
	ttl   time.Duration
	clock func() time.Time

	deals     []*models.Deal
	dealIndex map[types.DealID]*models.Deal
	accounts  []*models.Account
	stages    []*models.Stage

	summary *models.PipelineSummary

	fetchedAt map[Key]time.Time
}

// New creates a store for the given stage configuration and freshness TTL
func New(stages []*models.Stage, ttl time.Duration) *Store {
	return &Store{
		ttl:       ttl,
		clock:     time.Now,
		dealIndex: make(map[types.DealID]*models.Deal),
		stages:    stages,
		fetchedAt: make(map[Key]time.Time),
	}
}

// WithClock overrides the store's clock. Test hook.
func (s *Store) WithClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// SetDeals replaces the deal collection (read replace) and marks it fresh.
// Any derived aggregate is invalidated because its inputs changed.
func (s *Store) SetDeals(deals []*models.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deals = deals
	s.dealIndex = make(map[types.DealID]*models.Deal, len(deals))
	for _, d := range deals {
		s.dealIndex[d.ID] = d
	}
	s.fetchedAt[KeyDeals] = s.clock()
	s.invalidateLocked(KeyPipelineSummary)
}

// Deals returns the cached deal collection in backend order.
// Callers must not mutate the returned slice or its elements.
func (s *Store) Deals() []*models.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deals
}

// Deal looks up one deal by id
func (s *Store) Deal(id types.DealID) (*models.Deal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dealIndex[id]
	return d, ok
}

// SetDealStatus mutates one deal's status in place and returns the previous
// value. This is the optimistic write (and its rollback) used by the board
// committer; aggregate views depending on status are invalidated.
// Returns ok=false when the deal is no longer in the store.
func (s *Store) SetDealStatus(id types.DealID, status types.StageID) (prev types.StageID, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, found := s.dealIndex[id]
	if !found {
		return "", false
	}
	prev = d.Status
	d.Status = status
	s.invalidateLocked(KeyPipelineSummary)
	return prev, true
}

// ReplaceDeal swaps in the backend's authoritative copy of one deal,
// preserving collection order. Used after a successful commit or edit.
func (s *Store) ReplaceDeal(deal *models.Deal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.deals {
		if d.ID == deal.ID {
			s.deals[i] = deal
			s.dealIndex[deal.ID] = deal
			s.invalidateLocked(KeyPipelineSummary)
			return
		}
	}
}

// SetAccounts replaces the account collection and marks it fresh
func (s *Store) SetAccounts(accounts []*models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
	s.fetchedAt[KeyAccounts] = s.clock()
}

// Accounts returns the cached account collection
func (s *Store) Accounts() []*models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts
}

// Summary returns the pipeline aggregate, recomputing it only when a
// mutation invalidated the cached copy.
func (s *Store) Summary() *models.PipelineSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summary != nil && !s.fetchedAt[KeyPipelineSummary].IsZero() {
		return s.summary
	}
	s.summary = models.Summarize(s.deals, s.stages)
	s.fetchedAt[KeyPipelineSummary] = s.clock()
	return s.summary
}

// Stages returns the configured pipeline stages in display order
func (s *Store) Stages() []*models.Stage {
	return s.stages
}

// Invalidate drops the freshness of one key so the next read refetches or
// recomputes. Called by the committer for aggregates and by the change-event
// listener for backend-driven invalidation.
func (s *Store) Invalidate(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateLocked(key)
}

func (s *Store) invalidateLocked(key Key) {
	delete(s.fetchedAt, key)
	if key == KeyPipelineSummary {
		s.summary = nil
	}
}

// MarkFresh stamps a key without replacing its data. Used after a commit
// whose response confirmed the optimistic state.
func (s *Store) MarkFresh(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchedAt[key] = s.clock()
}

// Fresh reports whether a key was populated within the TTL
func (s *Store) Fresh(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.fetchedAt[key]
	if !ok {
		return false
	}
	return s.clock().Sub(at) < s.ttl
}

// FetchedAt returns when a key was last populated, zero if never or invalidated
func (s *Store) FetchedAt(key Key) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt[key]
}
