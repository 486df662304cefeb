package models

import (
	"time"

	"github.com/oyilmaz/firsat/internal/types"
)

// QuoteStatus mirrors the backend's quote status enumeration
type QuoteStatus string

const (
	QuoteDraft    QuoteStatus = "Draft"
	QuoteSent     QuoteStatus = "Sent"
	QuoteAccepted QuoteStatus = "Accepted"
	QuoteRejected QuoteStatus = "Rejected"
	QuoteExpired  QuoteStatus = "Expired"
)

// QuoteSummary is a DTO for listing the quotes attached to a deal.
// Line items and VAT breakdowns stay on the backend; the client only
// shows the rolled-up totals.
type QuoteSummary struct {
	ID          types.QuoteID
	QuoteNo     string
	Version     int
	Status      QuoteStatus
	TotalAmount float64
	ValidUntil  time.Time
}
