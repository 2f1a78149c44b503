package mochi

import "time"

// Deferred is a fire-once callback that runs after a delay measured in host
// update time. It is advanced by Update and never fires on its own; there is
// no goroutine or wall-clock timer behind it. Cancel before it fires and the
// callback never runs.
type Deferred struct {
	remaining time.Duration
	fn        func()
	fired     bool
	canceled  bool
}

// NewDeferred schedules fn to run once delay of update time has elapsed.
// A delay <= 0 fires on the first Update.
func NewDeferred(delay time.Duration, fn func()) *Deferred {
	return &Deferred{remaining: delay, fn: fn}
}

// Update advances the timer by dt and runs the callback if the delay has
// elapsed. It reports whether the callback ran during this call.
func (d *Deferred) Update(dt time.Duration) bool {
	if d == nil || d.fired || d.canceled {
		return false
	}
	d.remaining -= dt
	if d.remaining > 0 {
		return false
	}
	d.fired = true
	if d.fn != nil {
		d.fn()
	}
	return true
}

// Cancel stops the timer. It reports whether the callback was still pending.
func (d *Deferred) Cancel() bool {
	if d == nil || d.fired || d.canceled {
		return false
	}
	d.canceled = true
	return true
}

// Pending reports whether the callback is still waiting to fire.
func (d *Deferred) Pending() bool {
	return d != nil && !d.fired && !d.canceled
}

// Fired reports whether the callback has run.
func (d *Deferred) Fired() bool {
	return d != nil && d.fired
}

// Remaining returns the time left before firing, or 0 once resolved.
func (d *Deferred) Remaining() time.Duration {
	if !d.Pending() {
		return 0
	}
	return max(d.remaining, 0)
}
