package sim

import (
	"fmt"
	"math"
)

// NotAssigned marks a simulated time value that has not been set yet.
const NotAssigned = -1

// Lifecycle gives any simulated entity an optional startup delay and shutdown
// delay, expressed relative to an external simulation clock.
//
// States: NotStarted -> Starting -> Started -> (ShuttingDown) -> Stopped.
// Starting is entered when the entity's start operation records a start time;
// the transition to Started is observed lazily: predicates evaluate against
// the live clock on every call, so callers must not cache their results. With
// a zero startup delay there is no observable Starting window at all.
type Lifecycle struct {
	clock Clock

	startTime  float64 // NotAssigned until the entity formally starts
	finishTime float64 // NotAssigned until the entity formally stops

	startupDelay  float64 // seconds, >= 0
	shutdownDelay float64 // seconds, >= 0
}

// NewLifecycle creates a lifecycle bound to the given clock, with no delays
// and neither start nor finish time assigned.
func NewLifecycle(clock Clock) *Lifecycle {
	return &Lifecycle{
		clock:      clock,
		startTime:  NotAssigned,
		finishTime: NotAssigned,
	}
}

// SetStartTime records the simulated time the entity formally started.
// Negative times fail with ErrValidation.
func (l *Lifecycle) SetStartTime(t float64) error {
	if t < 0 {
		return fmt.Errorf("start time must be >= 0, got %v: %w", t, ErrValidation)
	}
	l.startTime = t
	return nil
}

// StartTime returns when the entity started, NotAssigned if it never did.
func (l *Lifecycle) StartTime() float64 { return l.startTime }

// HasStarted reports whether the entity's start operation has run.
func (l *Lifecycle) HasStarted() bool { return l.startTime > NotAssigned }

// SetFinishTime records the simulated time the entity formally stopped.
// Negative times fail with ErrValidation.
func (l *Lifecycle) SetFinishTime(t float64) error {
	if t < 0 {
		return fmt.Errorf("finish time must be >= 0, got %v: %w", t, ErrValidation)
	}
	l.finishTime = t
	return nil
}

// FinishTime returns when the entity stopped, NotAssigned if it never did.
func (l *Lifecycle) FinishTime() float64 { return l.finishTime }

// HasFinished reports whether the entity's stop operation has run.
func (l *Lifecycle) HasFinished() bool { return l.finishTime > NotAssigned }

// SetStartupDelay sets the seconds the entity needs after starting before it
// is operationally available. Negative delays fail with ErrValidation.
func (l *Lifecycle) SetStartupDelay(delay float64) error {
	if delay < 0 {
		return fmt.Errorf("startup delay must be >= 0, got %v: %w", delay, ErrValidation)
	}
	l.startupDelay = delay
	return nil
}

// StartupDelay returns the configured startup delay in seconds.
func (l *Lifecycle) StartupDelay() float64 { return l.startupDelay }

// SetShutdownDelay sets the seconds the entity needs after stopping before it
// is operationally unavailable. Negative delays fail with ErrValidation.
func (l *Lifecycle) SetShutdownDelay(delay float64) error {
	if delay < 0 {
		return fmt.Errorf("shutdown delay must be >= 0, got %v: %w", delay, ErrValidation)
	}
	l.shutdownDelay = delay
	return nil
}

// ShutdownDelay returns the configured shutdown delay in seconds.
func (l *Lifecycle) ShutdownDelay() float64 { return l.shutdownDelay }

// HasStartupDelay reports whether a startup delay is configured.
func (l *Lifecycle) HasStartupDelay() bool { return l.startupDelay > 0 }

// IsShutdownDelayed reports whether a shutdown delay is configured.
func (l *Lifecycle) IsShutdownDelayed() bool { return l.shutdownDelay > 0 }

// StartupCompletionTime returns the simulated time the entity finishes
// starting up. Before the entity starts, this is the relative completion time
// it would reach after starting at time zero.
func (l *Lifecycle) StartupCompletionTime() float64 {
	return math.Max(0, l.startTime) + l.startupDelay
}

// ShutdownCompletionTime returns the simulated time the entity finishes
// shutting down, with the same before-stop convention as
// StartupCompletionTime.
func (l *Lifecycle) ShutdownCompletionTime() float64 {
	return math.Max(0, l.finishTime) + l.shutdownDelay
}

// IsStartingUp reports whether the entity has started but the clock has not
// yet reached its startup completion time.
func (l *Lifecycle) IsStartingUp() bool {
	return l.HasStarted() && l.clock.Now() < l.StartupCompletionTime()
}

// RemainingStartupTime returns how much longer the startup will take, zero if
// no startup delay is configured or the startup already completed.
func (l *Lifecycle) RemainingStartupTime() float64 {
	if !l.HasStartupDelay() {
		return 0
	}
	return math.Max(l.StartupCompletionTime()-l.clock.Now(), 0)
}
