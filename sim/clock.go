package sim

// Clock supplies the current simulated time in seconds. It is the only
// temporal dependency of the core: Lifecycle predicates are evaluated lazily
// against a live Clock rather than caching transition times.
type Clock interface {
	Now() float64
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() float64

func (f ClockFunc) Now() float64 { return f() }

// VirtualClock is a monotonically non-decreasing simulated clock advanced by
// the event engine. Attempts to move it backwards are ignored.
type VirtualClock struct {
	now float64
}

// Now returns the current simulated time in seconds.
func (c *VirtualClock) Now() float64 {
	return c.now
}

// AdvanceTo moves the clock forward to t. Regressions are dropped so the
// clock stays monotonically non-decreasing even if an event is scheduled in
// the past by mistake.
func (c *VirtualClock) AdvanceTo(t float64) {
	if t > c.now {
		c.now = t
	}
}
