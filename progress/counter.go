package progress

import (
	"sync/atomic"
	"time"
)

// RedrawInterval is the minimum time between two draws of the same bar,
// enforced by Counter.TryDraw. 100ms keeps per-update I/O overhead low
// even when updates arrive at millions per second.
const RedrawInterval = 100 * time.Millisecond

// smoothing is the blend weight of the cumulative average rate against
// the instantaneous rate.
const smoothing = 0.7

// Counter is the lock-free per-bar progress block: a start timestamp, a
// cumulative counter, and the snapshot taken at the last draw. Every
// field is touched from the hot update() path without a lock; only the
// eventual draw takes the bar's mutex, and only to serialize the render
// itself, never the counter bump.
type Counter struct {
	begin  time.Time
	n      atomic.Int64
	lastN  atomic.Int64
	prevNs atomic.Int64
}

// NewCounter returns a counter whose clock starts now.
func NewCounter() *Counter {
	return &Counter{begin: time.Now()}
}

// Add advances the cumulative count. Safe to call from any number of
// goroutines concurrently.
func (c *Counter) Add(n int64) int64 {
	if n == 0 {
		return c.n.Load()
	}
	return c.n.Add(n)
}

// N returns the current cumulative count.
func (c *Counter) N() int64 { return c.n.Load() }

// ClampTo caps the cumulative count at max, so a closed bounded bar
// never reports more than its total. A non-positive max is a no-op
// (unbounded bars have no total to clamp to).
func (c *Counter) ClampTo(max int64) {
	if max <= 0 {
		return
	}
	for {
		cur := c.n.Load()
		if cur <= max {
			return
		}
		if c.n.CompareAndSwap(cur, max) {
			return
		}
	}
}

// Begin returns the instant the counter was created.
func (c *Counter) Begin() time.Time { return c.begin }

// Elapsed is the time since Begin.
func (c *Counter) Elapsed() time.Duration { return time.Since(c.begin) }

// TryDraw reports whether RedrawInterval has elapsed since the last
// committed draw and, if so, claims the redraw window by advancing the
// last-draw timestamp. Of any number of goroutines racing past the
// interval check, exactly one wins the claim and goes on to draw; the
// rest return false without blocking.
func (c *Counter) TryDraw() bool {
	nowNs := time.Since(c.begin).Nanoseconds()
	prevNs := c.prevNs.Load()
	if nowNs-prevNs <= RedrawInterval.Nanoseconds() {
		return false
	}
	return c.prevNs.CompareAndSwap(prevNs, nowNs)
}

// Commit records the state a just-completed draw was based on, so the
// next TryDraw/Rate calls measure from here. Called after each draw made
// through a Handle, and by Close just before the final frame.
func (c *Counter) Commit() {
	c.lastN.Store(c.n.Load())
	c.prevNs.Store(time.Since(c.begin).Nanoseconds())
}

// Rate returns the smoothed items-per-second estimate: a blend of the
// cumulative average and the instantaneous rate since the last committed
// draw. final, when true, disables the blend and returns the plain
// cumulative average, used for the one last render at close.
func (c *Counter) Rate(final bool) float64 {
	n := c.n.Load()
	elapsed := time.Since(c.begin).Seconds()
	if elapsed <= 0 {
		return 0
	}
	avg := float64(n) / elapsed

	lastN := c.lastN.Load()
	if final || n == lastN {
		return avg
	}

	prevNs := c.prevNs.Load()
	dt := time.Duration(time.Since(c.begin).Nanoseconds() - prevNs).Seconds()
	if dt <= 0 {
		return avg
	}
	instant := float64(n-lastN) / dt
	return smoothing*avg + (1-smoothing)*instant
}
