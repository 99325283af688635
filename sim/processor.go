package sim

import "fmt"

// Processor models a set of uniform-speed processing elements (PEs) owned by
// a compute unit. Capacity is the PE count; SlotSpeed is the MIPS rating of
// each PE. It is a typed view over a Capacity ledger plus the speed
// multiplier: CPU-time scheduling lives with external schedulers that use
// TotalCapacitySpeed to convert instruction counts into simulated durations.
type Processor struct {
	*Capacity

	slotSpeed float64 // MIPS per PE
	ownerID   string  // opaque handle to the owning compute unit, never dereferenced
}

// NewProcessor creates a processor with pes processing elements rated at
// slotSpeed MIPS each, owned by the compute unit identified by ownerID.
// A processor must have at least one PE.
func NewProcessor(ownerID string, pes int64, slotSpeed float64) (*Processor, error) {
	if pes <= 0 {
		return nil, fmt.Errorf("processor must have at least one PE, got %d: %w", pes, ErrInvalidCapacity)
	}
	ledger, err := NewCapacity(pes, "PE")
	if err != nil {
		return nil, err
	}
	p := &Processor{Capacity: ledger, ownerID: ownerID}
	if err := p.SetSlotSpeed(slotSpeed); err != nil {
		return nil, err
	}
	return p, nil
}

// Resize changes the PE count. Unlike the plain ledger, a processor rejects
// zero or negative capacity with ErrInvalidCapacity; shrinking below the
// current allocation still fails with ErrCapacityTooSmall.
func (p *Processor) Resize(pes int64) error {
	if pes <= 0 {
		return fmt.Errorf("processor must have at least one PE, got %d: %w", pes, ErrInvalidCapacity)
	}
	return p.Capacity.Resize(pes)
}

// SetSlotSpeed sets the MIPS rating of each PE. Negative values fail with
// ErrValidation.
func (p *Processor) SetSlotSpeed(mips float64) error {
	if mips < 0 {
		return fmt.Errorf("slot speed must be >= 0, got %v: %w", mips, ErrValidation)
	}
	p.slotSpeed = mips
	return nil
}

// SlotSpeed returns the MIPS rating of each PE.
func (p *Processor) SlotSpeed() float64 { return p.slotSpeed }

// TotalCapacitySpeed returns the aggregate MIPS across all PEs.
func (p *Processor) TotalCapacitySpeed() float64 {
	return p.slotSpeed * float64(p.Cap())
}

// OwnerID returns the opaque identifier of the owning compute unit.
func (p *Processor) OwnerID() string { return p.ownerID }
