package api

import (
	"context"
	"fmt"
	"time"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// dealPayload is the wire shape of one deal as serialized by the backend
type dealPayload struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	Source         *string         `json:"source"`
	Status         string          `json:"status"`
	Probability    float64         `json:"probability"`
	EstimatedValue float64         `json:"estimated_value"`
	CustomerID     *int            `json:"customer_id"`
	CreatedAt      time.Time       `json:"created_at"`
	Customer       *accountPayload `json:"customer"`
}

func (p *dealPayload) toModel() *models.Deal {
	deal := &models.Deal{
		ID:             types.DealID(p.ID),
		Title:          p.Title,
		Status:         types.StageID(p.Status),
		Probability:    p.Probability,
		EstimatedValue: p.EstimatedValue,
		CreatedAt:      p.CreatedAt,
	}
	if p.Source != nil {
		deal.Source = *p.Source
	}
	if p.CustomerID != nil {
		deal.AccountID = types.AccountID(*p.CustomerID)
	}
	if p.Customer != nil {
		deal.AccountTitle = p.Customer.Title
	}
	return deal
}

// DealRequest is the write shape for creating or updating a deal
type DealRequest struct {
	Title          string  `json:"title"`
	Source         string  `json:"source,omitempty"`
	Status         string  `json:"status"`
	Probability    float64 `json:"probability"`
	EstimatedValue float64 `json:"estimated_value"`
	CustomerID     int     `json:"customer_id"`
}

// ListDeals fetches the full deal collection for the tenant,
// newest first as the backend orders it.
func (c *Client) ListDeals(ctx context.Context) ([]*models.Deal, error) {
	var payloads []*dealPayload
	if err := c.do(ctx, "GET", "/sales/deals", nil, &payloads); err != nil {
		return nil, err
	}

	deals := make([]*models.Deal, 0, len(payloads))
	for _, p := range payloads {
		deals = append(deals, p.toModel())
	}
	return deals, nil
}

// GetDeal fetches a single deal by id
func (c *Client) GetDeal(ctx context.Context, id types.DealID) (*models.Deal, error) {
	var payload dealPayload
	if err := c.do(ctx, "GET", fmt.Sprintf("/sales/deals/%d", id.ToInt()), nil, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// CreateDeal creates a new deal and returns the backend's copy
func (c *Client) CreateDeal(ctx context.Context, req DealRequest) (*models.Deal, error) {
	var payload dealPayload
	if err := c.do(ctx, "POST", "/sales/deals", req, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// UpdateDeal replaces a deal's editable fields
func (c *Client) UpdateDeal(ctx context.Context, id types.DealID, req DealRequest) (*models.Deal, error) {
	var payload dealPayload
	if err := c.do(ctx, "PUT", fmt.Sprintf("/sales/deals/%d", id.ToInt()), req, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}

// UpdateDealStatus updates only the status field of one deal. This is the
// single write a board drag-drop produces; the backend answers with the
// updated deal or a validation error for an illegal transition.
func (c *Client) UpdateDealStatus(ctx context.Context, id types.DealID, status types.StageID) (*models.Deal, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status.String()}

	var payload dealPayload
	if err := c.do(ctx, "PATCH", fmt.Sprintf("/sales/deals/%d/status", id.ToInt()), body, &payload); err != nil {
		return nil, err
	}
	return payload.toModel(), nil
}
