package sim

import (
	"errors"
	"testing"
)

func TestCapacity_Allocate_WithinAvailable_Succeeds(t *testing.T) {
	// GIVEN a ledger with 100 MB capacity
	c, err := NewCapacity(100, "MB")
	if err != nil {
		t.Fatalf("NewCapacity: %v", err)
	}

	// WHEN 60 MB are allocated
	if err := c.Allocate(60); err != nil {
		t.Fatalf("Allocate(60): %v", err)
	}

	// THEN the ledger reflects the allocation
	if c.Allocated() != 60 {
		t.Errorf("Allocated: got %d, want 60", c.Allocated())
	}
	if c.Available() != 40 {
		t.Errorf("Available: got %d, want 40", c.Available())
	}
}

func TestCapacity_Allocate_BeyondAvailable_FailsUnchanged(t *testing.T) {
	c, _ := NewCapacity(100, "MB")
	_ = c.Allocate(90)

	err := c.Allocate(20)
	if !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("Allocate(20): got %v, want ErrInsufficientCapacity", err)
	}
	// All-or-nothing: a failed allocation changes nothing
	if c.Allocated() != 90 {
		t.Errorf("Allocated after failed allocate: got %d, want 90", c.Allocated())
	}
}

func TestCapacity_Allocate_NonPositive_Fails(t *testing.T) {
	c, _ := NewCapacity(100, "MB")
	for _, amount := range []int64{0, -5} {
		if err := c.Allocate(amount); !errors.Is(err, ErrInsufficientCapacity) {
			t.Errorf("Allocate(%d): got %v, want ErrInsufficientCapacity", amount, err)
		}
	}
}

func TestCapacity_AllocateDeallocate_RoundTrip(t *testing.T) {
	// GIVEN a ledger with a pre-existing allocation
	c, _ := NewCapacity(100, "slot")
	_ = c.Allocate(30)

	// WHEN an allocation is immediately released
	if err := c.Allocate(25); err != nil {
		t.Fatalf("Allocate(25): %v", err)
	}
	c.Deallocate(25)

	// THEN the ledger is back at its pre-allocation value
	if c.Allocated() != 30 {
		t.Errorf("Allocated after round-trip: got %d, want 30", c.Allocated())
	}
}

func TestCapacity_Deallocate_BeyondAllocated_ClampsAndCounts(t *testing.T) {
	c, _ := NewCapacity(100, "MB")
	_ = c.Allocate(10)

	// Releasing more than allocated clamps to zero instead of failing
	c.Deallocate(50)

	if c.Allocated() != 0 {
		t.Errorf("Allocated after over-release: got %d, want 0", c.Allocated())
	}
	if c.OverReleases() != 1 {
		t.Errorf("OverReleases: got %d, want 1", c.OverReleases())
	}
}

func TestCapacity_Deallocate_NonPositive_IsNoOp(t *testing.T) {
	c, _ := NewCapacity(100, "MB")
	_ = c.Allocate(10)

	c.Deallocate(0)
	c.Deallocate(-3)

	if c.Allocated() != 10 {
		t.Errorf("Allocated: got %d, want 10", c.Allocated())
	}
	if c.OverReleases() != 0 {
		t.Errorf("OverReleases: got %d, want 0", c.OverReleases())
	}
}

func TestCapacity_Resize_BelowAllocation_FailsUnchanged(t *testing.T) {
	c, _ := NewCapacity(100, "MB")
	_ = c.Allocate(70)

	err := c.Resize(50)
	if !errors.Is(err, ErrCapacityTooSmall) {
		t.Fatalf("Resize(50): got %v, want ErrCapacityTooSmall", err)
	}
	if c.Cap() != 100 {
		t.Errorf("Cap after failed resize: got %d, want 100", c.Cap())
	}
}

func TestCapacity_Resize_CoveringAllocation_Succeeds(t *testing.T) {
	c, _ := NewCapacity(100, "MB")
	_ = c.Allocate(70)

	if err := c.Resize(70); err != nil {
		t.Fatalf("Resize(70): %v", err)
	}
	if c.Cap() != 70 || c.Available() != 0 {
		t.Errorf("after resize: cap=%d available=%d, want 70/0", c.Cap(), c.Available())
	}
	if !c.IsFull() {
		t.Error("IsFull: got false, want true")
	}
}

func TestCapacity_InvariantHolds_AcrossCallSequences(t *testing.T) {
	// Mixed sequences of allocate/deallocate must never push the ledger
	// outside 0 <= allocated <= capacity.
	type op struct {
		alloc  bool
		amount int64
	}
	sequences := [][]op{
		{{true, 50}, {true, 50}, {false, 30}, {true, 20}, {false, 100}},
		{{false, 10}, {true, 100}, {false, 1}, {true, 1}, {true, 5}},
		{{true, 33}, {true, 33}, {true, 33}, {true, 2}, {false, 99}},
	}
	for i, seq := range sequences {
		c, _ := NewCapacity(100, "MB")
		for _, o := range seq {
			if o.alloc {
				_ = c.Allocate(o.amount)
			} else {
				c.Deallocate(o.amount)
			}
			if c.Allocated() < 0 || c.Allocated() > c.Cap() {
				t.Fatalf("sequence %d: invariant violated, allocated=%d cap=%d", i, c.Allocated(), c.Cap())
			}
		}
	}
}

func TestCapacity_IsAvailable_PurePredicate(t *testing.T) {
	c, _ := NewCapacity(100, "MB")
	_ = c.Allocate(40)

	if !c.IsAvailable(60) {
		t.Error("IsAvailable(60): got false, want true")
	}
	if c.IsAvailable(61) {
		t.Error("IsAvailable(61): got true, want false")
	}
	if c.Allocated() != 40 {
		t.Errorf("IsAvailable mutated state: allocated=%d, want 40", c.Allocated())
	}
}

func TestCapacity_UtilizationPercent(t *testing.T) {
	c, _ := NewCapacity(200, "MB")
	_ = c.Allocate(50)

	if got := c.UtilizationPercent(); got != 25 {
		t.Errorf("UtilizationPercent: got %v, want 25", got)
	}

	empty, _ := NewCapacity(0, "MB")
	if got := empty.UtilizationPercent(); got != 0 {
		t.Errorf("UtilizationPercent on zero capacity: got %v, want 0", got)
	}
}

func TestNewCapacity_Negative_Fails(t *testing.T) {
	if _, err := NewCapacity(-1, "MB"); !errors.Is(err, ErrValidation) {
		t.Errorf("NewCapacity(-1): got %v, want ErrValidation", err)
	}
}
