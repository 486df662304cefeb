package deal

import "errors"

// Deal-related errors
var (
	// Validation errors
	ErrEmptyTitle         = errors.New("deal title cannot be empty")
	ErrTitleTooLong       = errors.New("deal title cannot exceed 255 characters")
	ErrInvalidDealID      = errors.New("invalid deal ID")
	ErrInvalidAccountID   = errors.New("invalid account ID")
	ErrNegativeValue      = errors.New("estimated value cannot be negative")
	ErrInvalidProbability = errors.New("probability must be between 0 and 100")

	// Business logic errors
	ErrDealNotFound = errors.New("deal not found")
	ErrOffline      = errors.New("backend unreachable and no snapshot available")
)
