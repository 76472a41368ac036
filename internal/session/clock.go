package session

import (
	"time"

	"github.com/abhisek/spiread/internal/clock"
)

// Clock measures active play time. Elapsed time is derived from the
// time source on every read, so late or dropped ticks never skew it.
type Clock struct {
	src       clock.Clock
	duration  time.Duration
	startedAt time.Time

	running   bool
	stopped   bool
	spanStart time.Time
	active    time.Duration // closed running spans
	pausedAt  time.Time
	paused    time.Duration // closed paused spans
}

// NewClock returns a stopped clock. A zero duration means unbounded.
func NewClock(src clock.Clock, duration time.Duration) *Clock {
	return &Clock{src: src, duration: duration}
}

// Start resets the clock to zero and starts it.
func (c *Clock) Start() {
	now := c.src.Now()
	c.startedAt = now
	c.spanStart = now
	c.active = 0
	c.paused = 0
	c.running = true
	c.stopped = false
}

// Pause freezes elapsed time.
func (c *Clock) Pause() {
	if !c.running {
		return
	}
	now := c.src.Now()
	c.active += span(c.spanStart, now)
	c.pausedAt = now
	c.running = false
}

// Resume continues counting. Time spent paused is not counted.
func (c *Clock) Resume() {
	if c.running || c.stopped || c.startedAt.IsZero() {
		return
	}
	now := c.src.Now()
	c.paused += span(c.pausedAt, now)
	c.spanStart = now
	c.running = true
}

// Stop freezes the clock for good.
func (c *Clock) Stop() {
	if c.stopped {
		return
	}
	if c.running {
		c.Pause()
	} else if !c.pausedAt.IsZero() {
		c.paused += span(c.pausedAt, c.src.Now())
		c.pausedAt = time.Time{}
	}
	c.stopped = true
}

// Elapsed returns active play time.
func (c *Clock) Elapsed() time.Duration {
	if c.running {
		return c.active + span(c.spanStart, c.src.Now())
	}
	return c.active
}

// PausedFor returns the total time spent paused, including an ongoing pause.
func (c *Clock) PausedFor() time.Duration {
	if !c.running && !c.stopped && !c.pausedAt.IsZero() {
		return c.paused + span(c.pausedAt, c.src.Now())
	}
	return c.paused
}

// Duration returns the configured session length, 0 if unbounded.
func (c *Clock) Duration() time.Duration {
	return c.duration
}

// Remaining returns the time left in a bounded session, never negative.
// It is always 0 for unbounded sessions.
func (c *Clock) Remaining() time.Duration {
	if c.duration <= 0 {
		return 0
	}
	return max(0, c.duration-c.Elapsed())
}

// Expired reports whether a bounded session has used its duration.
func (c *Clock) Expired() bool {
	return c.duration > 0 && c.Elapsed() >= c.duration
}

// StartedAt returns when Start was last called.
func (c *Clock) StartedAt() time.Time {
	return c.startedAt
}

func span(from, to time.Time) time.Duration {
	if d := to.Sub(from); d > 0 {
		return d
	}
	return 0
}
