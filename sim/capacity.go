package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Capacity is an integral ledger of finite allocatable capacity, the building
// block under Processor and StorageDevice. The invariant
// 0 <= allocated <= capacity holds after every call: allocation is
// all-or-nothing and every failing operation leaves the ledger untouched.
//
// The ledger is exclusively owned by the component that embeds it and is not
// goroutine-safe; the surrounding engine serializes mutations per simulated
// instant.
type Capacity struct {
	capacity  int64
	allocated int64
	unit      string // descriptive only, e.g. "MB" or "PE"

	// Count of deallocations that asked for more than was allocated and got
	// clamped. Release beyond the allocation succeeds (idempotent-safe), but
	// silent over-release is a latent bug class worth surfacing.
	overReleases int64
}

// NewCapacity creates a ledger with the given fixed capacity and unit label.
func NewCapacity(capacity int64, unit string) (*Capacity, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("capacity must be >= 0, got %d: %w", capacity, ErrValidation)
	}
	return &Capacity{capacity: capacity, unit: unit}, nil
}

// Allocate reserves amount units. It succeeds iff amount > 0 and amount is
// currently available; otherwise it fails with ErrInsufficientCapacity and
// changes nothing. Partial allocation never happens.
func (c *Capacity) Allocate(amount int64) error {
	if amount <= 0 || amount > c.Available() {
		return fmt.Errorf("allocate %d %s with %d available: %w",
			amount, c.unit, c.Available(), ErrInsufficientCapacity)
	}
	c.allocated += amount
	return nil
}

// Deallocate releases min(amount, allocated) units. Releasing more than is
// allocated clamps to zero rather than failing; each clamped call is counted
// in OverReleases and logged, since it usually means the caller's own
// bookkeeping drifted.
func (c *Capacity) Deallocate(amount int64) {
	if amount <= 0 {
		return
	}
	if amount > c.allocated {
		c.overReleases++
		logrus.Warnf("over-release: deallocating %d %s with only %d allocated", amount, c.unit, c.allocated)
		amount = c.allocated
	}
	c.allocated -= amount
}

// IsAvailable reports whether amount units could be allocated right now.
// Pure predicate, no state change.
func (c *Capacity) IsAvailable(amount int64) bool {
	return amount <= c.Available()
}

// Resize replaces the capacity. It fails with ErrCapacityTooSmall if the new
// capacity would not cover the current allocation.
func (c *Capacity) Resize(newCapacity int64) error {
	if newCapacity < c.allocated {
		return fmt.Errorf("resize to %d %s with %d allocated: %w",
			newCapacity, c.unit, c.allocated, ErrCapacityTooSmall)
	}
	c.capacity = newCapacity
	return nil
}

// Cap returns the total capacity.
func (c *Capacity) Cap() int64 { return c.capacity }

// Allocated returns the currently allocated amount.
func (c *Capacity) Allocated() int64 { return c.allocated }

// Available returns the capacity still free to allocate.
func (c *Capacity) Available() int64 { return c.capacity - c.allocated }

// Unit returns the descriptive unit label. Not semantically load-bearing.
func (c *Capacity) Unit() string { return c.unit }

// IsFull reports whether no capacity remains.
func (c *Capacity) IsFull() bool { return c.Available() <= 0 }

// UtilizationPercent returns allocated/capacity in [0, 100].
// A zero-capacity ledger reports 0.
func (c *Capacity) UtilizationPercent() float64 {
	if c.capacity == 0 {
		return 0
	}
	return float64(c.allocated) / float64(c.capacity) * 100
}

// OverReleases returns how many Deallocate calls were clamped because they
// asked for more than was allocated.
func (c *Capacity) OverReleases() int64 { return c.overReleases }
