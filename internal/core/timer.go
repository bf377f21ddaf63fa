package core

import "time"

// DefaultInterval is the simulation step used when a non-positive interval is given.
const DefaultInterval = 150 * time.Millisecond

// FixedStep helps run simulation updates at a steady interval from a
// frame-driven loop such as ebiten's Update.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller firing once per interval.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetInterval(interval)
	return fs
}

// SetInterval changes the step length. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	f.step = interval
}

// Interval returns the current step length.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset drops accumulated time so the next step fires one full interval later.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one tick. At
// most one step is reported per call; leftover time carries over.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator > f.step {
			// drop backlog after a stall instead of replaying it
			f.accumulator = f.step
		}
		return true
	}
	return false
}
