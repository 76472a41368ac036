package session

import (
	"fmt"
	"time"
)

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseIdle     Phase = iota // Created, not started
	PhasePlaying               // Clock running, trials accepted
	PhasePaused                // Clock frozen
	PhaseComplete              // Terminal; results emitted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PauseReason says who paused the session.
type PauseReason string

const (
	PauseManual PauseReason = "manual"
	PauseAuto   PauseReason = "auto"
)

// EndReason says how a session reached Complete.
type EndReason string

const (
	EndTimeout    EndReason = "timeout"
	EndManualStop EndReason = "manual_stop"
	EndExit       EndReason = "exit"
)

// Snapshot is a point-in-time view of a session for display.
type Snapshot struct {
	Phase       Phase
	Level       int
	StartedAt   time.Time
	Elapsed     time.Duration
	Duration    time.Duration // 0 when unbounded
	Remaining   time.Duration // 0 when unbounded
	PausedFor   time.Duration
	PauseReason PauseReason // set while Paused
	Hidden      bool
	Score       int
}

// Progress returns the elapsed fraction of a bounded session in [0, 1].
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(1, float64(s.Elapsed)/float64(s.Duration))
}
