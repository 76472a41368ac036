package session

import (
	"time"

	"github.com/abhisek/spiread/internal/drill"
	sess "github.com/abhisek/spiread/internal/session"
)

// sessionInitMsg is sent when the machine and generator are ready.
type sessionInitMsg struct {
	Machine   *sess.Machine
	Generator drill.Generator
	Err       error
}

// timerTickMsg drives the machine's timeout check and stimulus exposure.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the feedback display period ends.
type feedbackDoneMsg struct{}

// sessionEndMsg carries the final results once persistence has settled.
type sessionEndMsg struct {
	Results sess.Results
}
