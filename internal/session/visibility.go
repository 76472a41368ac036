package session

import (
	"time"

	"github.com/abhisek/spiread/internal/clock"
)

// visibility tracks whether the host surface is in the background and owns
// the grace timer that turns a long absence into an auto-pause. Every
// method is called with the machine lock held.
type visibility struct {
	clk   clock.Clock
	grace time.Duration // <0 disables auto-pause

	hidden bool
	gen    uint64
	timer  clock.Timer
}

// arm starts the grace timer. fire receives the generation it was armed
// with so stale firings can be told apart.
func (v *visibility) arm(fire func(gen uint64)) {
	v.cancel()
	if v.grace < 0 {
		return
	}
	gen := v.gen
	v.timer = v.clk.AfterFunc(v.grace, func() { fire(gen) })
}

// cancel stops a pending grace timer and invalidates any firing already
// in flight.
func (v *visibility) cancel() {
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	v.gen++
}

// pending reports whether a grace timer is armed.
func (v *visibility) pending() bool {
	return v.timer != nil
}

// current reports whether gen belongs to the armed timer.
func (v *visibility) current(gen uint64) bool {
	return v.timer != nil && gen == v.gen
}
