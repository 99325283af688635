package sim

import (
	"fmt"
	"strings"
)

// ComputeUnit is a simulated machine that owns a Processor and a delayed
// lifecycle. It is the entity the Processor back-references by ID and the
// thing the event engine starts and stops; schedulers query IsOperational
// before placing work on it.
type ComputeUnit struct {
	id        string
	processor *Processor
	lifecycle *Lifecycle
}

// NewComputeUnit creates a compute unit with pes processing elements rated at
// slotSpeed MIPS, observing the given clock.
func NewComputeUnit(id string, pes int64, slotSpeed float64, clock Clock) (*ComputeUnit, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("compute unit ID cannot be blank: %w", ErrValidation)
	}
	proc, err := NewProcessor(id, pes, slotSpeed)
	if err != nil {
		return nil, err
	}
	return &ComputeUnit{
		id:        id,
		processor: proc,
		lifecycle: NewLifecycle(clock),
	}, nil
}

// ID returns the unit's identifier.
func (u *ComputeUnit) ID() string { return u.id }

// Processor returns the unit's processor.
func (u *ComputeUnit) Processor() *Processor { return u.processor }

// Lifecycle returns the unit's startup/shutdown state machine.
func (u *ComputeUnit) Lifecycle() *Lifecycle { return u.lifecycle }

// Start records the simulated time the unit powers on. With a startup delay
// configured the unit stays in Starting until the clock reaches
// StartupCompletionTime; with none it is operational immediately.
func (u *ComputeUnit) Start(now float64) error {
	return u.lifecycle.SetStartTime(now)
}

// Stop records the simulated time the unit powers off.
func (u *ComputeUnit) Stop(now float64) error {
	return u.lifecycle.SetFinishTime(now)
}

// IsOperational reports whether the unit has started, completed its startup
// delay, and has not been stopped.
func (u *ComputeUnit) IsOperational() bool {
	return u.lifecycle.HasStarted() && !u.lifecycle.IsStartingUp() && !u.lifecycle.HasFinished()
}
