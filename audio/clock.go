package audio

import "time"

// Clock abstracts timer scheduling so the sequencer runs on real timers in
// the browser and on a manually advanced clock under test.
type Clock interface {
	// Now reports elapsed time since the clock started.
	Now() time.Duration
	// AfterFunc schedules fn to run once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending.
	Stop() bool
}

// NewClock returns a Clock backed by the runtime's timers. Under gopherjs
// these compile down to setTimeout.
func NewClock() Clock {
	return &wallClock{start: time.Now()}
}

type wallClock struct {
	start time.Time
}

func (c *wallClock) Now() time.Duration { return time.Since(c.start) }

func (c *wallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return wallTimer{t: time.AfterFunc(d, fn)}
}

type wallTimer struct {
	t *time.Timer
}

func (w wallTimer) Stop() bool { return w.t.Stop() }

// ManualClock is a Clock advanced explicitly by the caller. Tests and the
// preview tool use it to drive the step loop deterministically. It is not
// safe for concurrent use.
type ManualClock struct {
	now    time.Duration
	timers []*manualTimer
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Now() time.Duration { return c.now }

func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &manualTimer{due: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due callbacks in order.
// Callbacks may schedule further timers; those fire too if they fall
// within the advanced window.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := c.earliest(target)
		if next == nil {
			break
		}
		c.now = next.due
		next.fired = true
		next.fn()
	}
	c.now = target
}

func (c *ManualClock) earliest(upTo time.Duration) *manualTimer {
	var best *manualTimer
	for _, t := range c.timers {
		if t.fired || t.stopped || t.due > upTo {
			continue
		}
		if best == nil || t.due < best.due {
			best = t
		}
	}
	return best
}

type manualTimer struct {
	due     time.Duration
	fn      func()
	fired   bool
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
