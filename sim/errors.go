package sim

import "errors"

// Failure kinds reported by the core. Operations wrap these with context via
// fmt.Errorf("...: %w", ...) so callers can branch with errors.Is while logs
// keep the full story. Every failing operation leaves all state unchanged.
var (
	// ErrValidation reports malformed or out-of-domain input: blank names,
	// negative times, non-positive sizes or rates.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientCapacity reports an allocation that would exceed the
	// available capacity of a ledger or device.
	ErrInsufficientCapacity = errors.New("insufficient capacity")

	// ErrCapacityTooSmall reports a resize below the currently allocated amount.
	ErrCapacityTooSmall = errors.New("capacity smaller than current allocation")

	// ErrInvalidCapacity reports a processor capacity of zero or fewer PEs.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrFileNotFound reports a lookup or removal of a name a device never registered.
	ErrFileNotFound = errors.New("file not found")
)
