package board

import "errors"

// Commit preconditions and failures
var (
	// ErrStaleDeal indicates the dragged deal left the store between
	// drag-start and drop (e.g. a concurrent refresh removed it).
	// The commit is a no-op, not a failure surfaced to the user.
	ErrStaleDeal = errors.New("deal no longer present in store")

	// ErrUnknownStage indicates the target stage id matches no configured column
	ErrUnknownStage = errors.New("target stage is not a configured column")

	// ErrNoChange indicates the target stage equals the deal's current stage
	ErrNoChange = errors.New("deal is already in the target stage")

	// ErrTransitionBlocked indicates the configured transition matrix
	// forbids moving from the origin stage to the target stage.
	ErrTransitionBlocked = errors.New("transition not allowed by configuration")
)
