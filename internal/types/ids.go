package types

// ID type aliases give the backend's integer identifiers semantic meaning and
// keep conversions explicit at package boundaries.

// DealID identifies a sales opportunity on the backend
type DealID int

// AccountID identifies a customer/supplier account on the backend
type AccountID int

// QuoteID identifies a quote generated from a deal
type QuoteID int

// TenantID identifies the tenant all requests are scoped to
type TenantID int

// StageID identifies a pipeline stage. Stages are client-side configuration,
// not backend entities, so the identifier is the status string itself.
type StageID string

// Stage identifiers matching the backend's deal status enumeration. The
// backend rejects status values outside this set, so configured stages
// beyond it only partition deals the backend already holds.
const (
	StageLead          StageID = "Lead"
	StageOpportunity   StageID = "Opportunity"
	StageQuoteSent     StageID = "Quote Sent"
	StageOrderReceived StageID = "Order Received"
	StageInvoiced      StageID = "Invoiced"
	StageLost          StageID = "Lost"
)

// ToInt converts type alias back to int for wire and storage code
func (id DealID) ToInt() int {
	return int(id)
}

func (id AccountID) ToInt() int {
	return int(id)
}

func (id QuoteID) ToInt() int {
	return int(id)
}

func (id TenantID) ToInt() int {
	return int(id)
}

// String returns the raw status value sent over the wire
func (id StageID) String() string {
	return string(id)
}
