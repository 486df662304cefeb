package models

import (
	"time"

	"github.com/oyilmaz/firsat/internal/types"
)

// Deal represents a single sales opportunity in the pipeline
type Deal struct {
	ID             types.DealID
	Title          string
	Source         string
	Status         types.StageID
	Probability    float64
	EstimatedValue float64
	AccountID      types.AccountID
	AccountTitle   string
	CreatedAt      time.Time
}

// HasAccount reports whether the deal carries a customer reference.
// Deals imported from CSV may have none.
func (d *Deal) HasAccount() bool {
	return d.AccountID > 0
}

// WeightedValue is the estimated value scaled by the win probability,
// used by the pipeline dashboard.
func (d *Deal) WeightedValue() float64 {
	return d.EstimatedValue * d.Probability / 100
}

// DealDetail is a DTO for the full deal view.
// Contains the account snapshot and quotes in addition to the card fields.
type DealDetail struct {
	Deal
	Account *Account
	Quotes  []*QuoteSummary
}
