package robot

import (
	"sync"
	"time"
)

// Clock is the monotonic time source used by the motion engine.
// Now is measured from an arbitrary fixed origin.
type Clock interface {
	Now() time.Duration
	SleepUntil(deadline time.Duration)
}

// SystemClock is a Clock backed by the Go runtime's monotonic clock.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a clock whose origin is the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}

// SleepUntil blocks until Now() >= deadline. Deadlines are absolute, so
// successive ticks do not accumulate drift.
func (c *SystemClock) SleepUntil(deadline time.Duration) {
	if d := deadline - c.Now(); d > 0 {
		time.Sleep(d)
	}
}

// FakeClock is a deterministic Clock for tests and offline rendering.
// Every call to Now advances time by Step, which models the cost of one
// loop iteration; SleepUntil jumps straight to the deadline.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Duration
	step time.Duration
}

// NewFakeClock returns a FakeClock starting at zero. A non-positive step
// is replaced by one millisecond so free-running loops still terminate.
func NewFakeClock(step time.Duration) *FakeClock {
	if step <= 0 {
		step = time.Millisecond
	}
	return &FakeClock{step: step}
}

// Now returns the current fake time and then advances it by one step.
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now += c.step
	return t
}

// SleepUntil moves the fake time forward to deadline.
func (c *FakeClock) SleepUntil(deadline time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if deadline > c.now {
		c.now = deadline
	}
}

// Elapsed returns the current fake time without advancing it.
func (c *FakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
