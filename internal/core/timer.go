package core

import "time"

// FixedStep paces generations independently of the render loop: the loop
// polls ShouldStep every frame and advances the sim only when a full period
// has elapsed.
type FixedStep struct {
	period      time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep that fires once per period. A
// non-positive period fires on every poll.
func NewFixedStep(period time.Duration) *FixedStep {
	f := &FixedStep{now: time.Now}
	f.SetPeriod(period)
	f.accumulator = f.period
	return f
}

// SetPeriod changes the time between generations.
func (f *FixedStep) SetPeriod(period time.Duration) {
	if period < 0 {
		period = 0
	}
	f.period = period
}

// Period returns the configured time between generations.
func (f *FixedStep) Period() time.Duration { return f.period }

// ShouldStep reports whether the simulation should advance by one generation.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.period {
		f.accumulator -= f.period
		if f.accumulator > f.period {
			// Drop backlog after a stall instead of stepping in a burst.
			f.accumulator = 0
		}
		return true
	}
	return false
}
