// Package clock converts elapsed wall time into discrete ticks at a fixed rate.
package clock

import "time"

// MaxCatchUp limits the number of ticks reported by a single call to Due.
// Ticks beyond it are dropped.
const MaxCatchUp = 1000

// Clock produces ticks at a fixed frequency.
type Clock struct {
	now    func() time.Time // Time source.
	period time.Duration    // Time between ticks.
	last   time.Time        // Time of the last accounted tick.
	count  uint64           // Ticks reported since the last reset.
	start  time.Time        // Time of the last reset.
}

// New creates a new clock running at hz ticks per second.
func New(hz int) *Clock {
	if hz < 1 {
		hz = 1
	}

	c := &Clock{
		now:    time.Now,
		period: time.Second / time.Duration(hz),
	}

	c.Reset()
	return c
}

// Reset restarts the clock. No ticks are due immediately after.
func (c *Clock) Reset() {
	c.last = c.now()
	c.start = c.last
	c.count = 0
}

// Period returns the time between ticks.
func (c *Clock) Period() time.Duration {
	return c.period
}

// Due returns the number of ticks that elapsed since the previous call.
// Fractional ticks carry over to the next call.
func (c *Clock) Due() int {
	n := int(c.now().Sub(c.last) / c.period)
	if n <= 0 {
		return 0
	}

	c.last = c.last.Add(time.Duration(n) * c.period)

	if n > MaxCatchUp {
		n = MaxCatchUp
	}

	c.count += uint64(n)
	return n
}

// Frequency returns the effective tick rate in herz since the last reset.
func (c *Clock) Frequency() float64 {
	elapsed := c.now().Sub(c.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(c.count) / elapsed
}
