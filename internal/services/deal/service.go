package deal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oyilmaz/firsat/internal/api"
	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/store"
	"github.com/oyilmaz/firsat/internal/types"
)

// Backend is the slice of the API client the service needs
type Backend interface {
	ListDeals(ctx context.Context) ([]*models.Deal, error)
	GetDeal(ctx context.Context, id types.DealID) (*models.Deal, error)
	CreateDeal(ctx context.Context, req api.DealRequest) (*models.Deal, error)
	UpdateDeal(ctx context.Context, id types.DealID, req api.DealRequest) (*models.Deal, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	ListQuotesForDeal(ctx context.Context, dealID types.DealID) ([]*models.QuoteSummary, error)
}

// Service defines all deal-related business operations above the raw client
type Service interface {
	// Refresh operations: fetch, cache, snapshot
	RefreshDeals(ctx context.Context) ([]*models.Deal, error)
	RefreshAccounts(ctx context.Context) ([]*models.Account, error)

	// Read operations
	GetDealDetail(ctx context.Context, dealID types.DealID) (*models.DealDetail, error)

	// Write operations
	CreateDeal(ctx context.Context, req CreateDealRequest) (*models.Deal, error)
	UpdateDeal(ctx context.Context, req UpdateDealRequest) (*models.Deal, error)

	// Offline reports whether the last refresh served snapshot data
	Offline() bool
}

// CreateDealRequest encapsulates all data needed to create a deal
type CreateDealRequest struct {
	Title          string
	Source         string
	Status         types.StageID
	Probability    float64
	EstimatedValue float64
	AccountID      types.AccountID
}

// UpdateDealRequest encapsulates all data needed to update a deal
type UpdateDealRequest struct {
	DealID types.DealID
	CreateDealRequest
}

// service implements Service
type service struct {
	backend  Backend
	store    *store.Store
	snapshot *store.Snapshot // optional, nil disables offline support
	offline  bool
}

// NewService creates a new deal service. snapshot may be nil.
func NewService(backend Backend, s *store.Store, snapshot *store.Snapshot) Service {
	return &service{
		backend:  backend,
		store:    s,
		snapshot: snapshot,
	}
}

// RefreshDeals replaces the cached deal collection from the backend. On
// transport failure it falls back to the local snapshot so the board can
// still render, flagged as offline.
func (s *service) RefreshDeals(ctx context.Context) ([]*models.Deal, error) {
	deals, err := s.backend.ListDeals(ctx)
	if err != nil {
		return s.dealsFromSnapshot(ctx, err)
	}

	s.offline = false

	// Snapshot first: once SetDeals publishes these structs the update
	// loop may start mutating statuses through the committer.
	if s.snapshot != nil {
		if saveErr := s.snapshot.SaveDeals(ctx, deals); saveErr != nil {
			slog.Warn("failed to save deal snapshot", "error", saveErr)
		}
	}
	s.store.SetDeals(deals)
	return deals, nil
}

func (s *service) dealsFromSnapshot(ctx context.Context, cause error) ([]*models.Deal, error) {
	// Backend rejections are real answers, not connectivity problems;
	// only transport-level failures fall back to the snapshot.
	if errors.Is(cause, api.ErrUnauthorized) || errors.Is(cause, api.ErrValidation) {
		return nil, cause
	}
	if s.snapshot == nil {
		return nil, cause
	}

	deals, loadErr := s.snapshot.LoadDeals(ctx)
	if loadErr != nil || len(deals) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrOffline, cause)
	}

	slog.Info("serving deals from snapshot", "count", len(deals), "cause", cause)
	s.offline = true
	s.store.SetDeals(deals)
	s.store.Invalidate(store.KeyDeals) // stale: next refresh must hit the backend
	return deals, nil
}

// RefreshAccounts replaces the cached account collection from the backend,
// with the same snapshot fallback as deals.
func (s *service) RefreshAccounts(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.backend.ListAccounts(ctx)
	if err != nil {
		if s.snapshot == nil {
			return nil, err
		}
		accounts, loadErr := s.snapshot.LoadAccounts(ctx)
		if loadErr != nil || len(accounts) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrOffline, err)
		}
		s.offline = true
		s.store.SetAccounts(accounts)
		s.store.Invalidate(store.KeyAccounts)
		return accounts, nil
	}

	s.store.SetAccounts(accounts)
	if s.snapshot != nil {
		if saveErr := s.snapshot.SaveAccounts(ctx, accounts); saveErr != nil {
			slog.Warn("failed to save account snapshot", "error", saveErr)
		}
	}
	return accounts, nil
}

// GetDealDetail composes the full deal view: the deal, its account and its
// quote versions. Quote fetch failures degrade to an empty list rather than
// failing the whole view.
func (s *service) GetDealDetail(ctx context.Context, dealID types.DealID) (*models.DealDetail, error) {
	if dealID <= 0 {
		return nil, ErrInvalidDealID
	}

	d, err := s.backend.GetDeal(ctx, dealID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to fetch deal %d: %w", dealID, err)
	}

	detail := &models.DealDetail{Deal: *d}

	if d.HasAccount() {
		for _, a := range s.store.Accounts() {
			if a.ID == d.AccountID {
				detail.Account = a
				break
			}
		}
	}

	quotes, err := s.backend.ListQuotesForDeal(ctx, dealID)
	if err != nil {
		slog.Warn("failed to fetch quotes for deal", "deal", dealID.ToInt(), "error", err)
	} else {
		detail.Quotes = quotes
	}

	return detail, nil
}

// CreateDeal handles deal creation with validation and cache upkeep
func (s *service) CreateDeal(ctx context.Context, req CreateDealRequest) (*models.Deal, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	created, err := s.backend.CreateDeal(ctx, toAPIRequest(req))
	if err != nil {
		return nil, fmt.Errorf("failed to create deal: %w", err)
	}

	// The new deal's collection position is the backend's call; refetch
	// rather than guessing where to splice it.
	s.store.Invalidate(store.KeyDeals)
	return created, nil
}

// UpdateDeal handles full-field deal updates (not status-only moves; those
// go through the board committer).
func (s *service) UpdateDeal(ctx context.Context, req UpdateDealRequest) (*models.Deal, error) {
	if req.DealID <= 0 {
		return nil, ErrInvalidDealID
	}
	if err := validate(req.CreateDealRequest); err != nil {
		return nil, err
	}

	updated, err := s.backend.UpdateDeal(ctx, req.DealID, toAPIRequest(req.CreateDealRequest))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to update deal %d: %w", req.DealID, err)
	}

	s.store.ReplaceDeal(updated)
	return updated, nil
}

func (s *service) Offline() bool {
	return s.offline
}

func validate(req CreateDealRequest) error {
	if req.Title == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > 255 {
		return ErrTitleTooLong
	}
	if req.EstimatedValue < 0 {
		return ErrNegativeValue
	}
	if req.Probability < 0 || req.Probability > 100 {
		return ErrInvalidProbability
	}
	return nil
}

func toAPIRequest(req CreateDealRequest) api.DealRequest {
	return api.DealRequest{
		Title:          req.Title,
		Source:         req.Source,
		Status:         req.Status.String(),
		Probability:    req.Probability,
		EstimatedValue: req.EstimatedValue,
		CustomerID:     req.AccountID.ToInt(),
	}
}
