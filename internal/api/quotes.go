package api

import (
	"context"
	"fmt"
	"time"

	"github.com/oyilmaz/firsat/internal/models"
	"github.com/oyilmaz/firsat/internal/types"
)

// quotePayload is the wire shape of one quote summary
type quotePayload struct {
	ID          int        `json:"id"`
	QuoteNo     string     `json:"quote_no"`
	Version     int        `json:"version"`
	Status      string     `json:"status"`
	TotalAmount float64    `json:"total_amount"`
	ValidUntil  *time.Time `json:"valid_until"`
}

func (p *quotePayload) toModel() *models.QuoteSummary {
	quote := &models.QuoteSummary{
		ID:          types.QuoteID(p.ID),
		QuoteNo:     p.QuoteNo,
		Version:     p.Version,
		Status:      models.QuoteStatus(p.Status),
		TotalAmount: p.TotalAmount,
	}
	if p.ValidUntil != nil {
		quote.ValidUntil = *p.ValidUntil
	}
	return quote
}

// ListQuotesForDeal fetches the quote versions generated from one deal
func (c *Client) ListQuotesForDeal(ctx context.Context, dealID types.DealID) ([]*models.QuoteSummary, error) {
	var payloads []*quotePayload
	path := fmt.Sprintf("/sales/quotes?deal_id=%d", dealID.ToInt())
	if err := c.do(ctx, "GET", path, nil, &payloads); err != nil {
		return nil, err
	}

	quotes := make([]*models.QuoteSummary, 0, len(payloads))
	for _, p := range payloads {
		quotes = append(quotes, p.toModel())
	}
	return quotes, nil
}
