package session

import (
	"testing"
	"time"

	"github.com/abhisek/spiread/internal/clock"
)

func TestClockElapsed(t *testing.T) {
	fc := clock.NewFake(epoch)
	c := NewClock(fc, 30*time.Second)
	c.Start()

	steps := []struct {
		action      func()
		advance     time.Duration
		wantElapsed time.Duration
		wantPaused  time.Duration
	}{
		{nil, 4 * time.Second, 4 * time.Second, 0},
		{c.Pause, 6 * time.Second, 4 * time.Second, 6 * time.Second},
		{c.Pause, time.Second, 4 * time.Second, 7 * time.Second},
		{c.Resume, 3 * time.Second, 7 * time.Second, 7 * time.Second},
		{c.Resume, time.Second, 8 * time.Second, 7 * time.Second},
	}
	for i, s := range steps {
		if s.action != nil {
			s.action()
		}
		fc.Advance(s.advance)
		if got := c.Elapsed(); got != s.wantElapsed {
			t.Errorf("step %d: Elapsed = %s, want %s", i, got, s.wantElapsed)
		}
		if got := c.PausedFor(); got != s.wantPaused {
			t.Errorf("step %d: PausedFor = %s, want %s", i, got, s.wantPaused)
		}
	}

	if got := c.Remaining(); got != 22*time.Second {
		t.Errorf("Remaining = %s, want 22s", got)
	}
	if c.Expired() {
		t.Error("Expired = true before duration")
	}
}

func TestClockExpiry(t *testing.T) {
	fc := clock.NewFake(epoch)
	c := NewClock(fc, 10*time.Second)
	c.Start()
	fc.Advance(12 * time.Second)

	if !c.Expired() {
		t.Error("Expired = false after duration")
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("Remaining = %s, want 0", got)
	}
}

func TestClockStopFreezes(t *testing.T) {
	fc := clock.NewFake(epoch)
	c := NewClock(fc, 0)
	c.Start()
	fc.Advance(2 * time.Second)
	c.Pause()
	fc.Advance(time.Second)
	c.Stop()
	fc.Advance(time.Hour)
	c.Resume()

	if got := c.Elapsed(); got != 2*time.Second {
		t.Errorf("Elapsed = %s, want 2s", got)
	}
	if got := c.PausedFor(); got != time.Second {
		t.Errorf("PausedFor = %s, want 1s", got)
	}
	if c.Expired() {
		t.Error("unbounded clock expired")
	}
}

func TestClockRestartResets(t *testing.T) {
	fc := clock.NewFake(epoch)
	c := NewClock(fc, time.Minute)
	c.Start()
	fc.Advance(5 * time.Second)
	c.Start()

	if got := c.Elapsed(); got != 0 {
		t.Errorf("Elapsed after restart = %s, want 0", got)
	}
	if got := c.StartedAt(); !got.Equal(epoch.Add(5 * time.Second)) {
		t.Errorf("StartedAt = %s", got)
	}
}
