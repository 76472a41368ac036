package difficulty

import "time"

// Trial is one recorded outcome. Trials are values and never modified
// after they are appended to a window.
type Trial struct {
	Success    bool           `json:"success"`
	ResponseMs int            `json:"response_ms,omitempty"`
	Timed      bool           `json:"timed"`
	At         time.Time      `json:"at"`
	Level      int            `json:"level"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// TrialOption customizes a recorded trial.
type TrialOption func(*Trial)

// WithResponseTime records how long the user took to respond.
func WithResponseTime(ms int) TrialOption {
	return func(t *Trial) {
		t.ResponseMs = ms
		t.Timed = true
	}
}

// WithMetadata attaches game-specific data to the trial.
func WithMetadata(md map[string]any) TrialOption {
	return func(t *Trial) {
		t.Metadata = md
	}
}

// WithTimestamp overrides the time the trial is recorded at.
func WithTimestamp(at time.Time) TrialOption {
	return func(t *Trial) {
		t.At = at
	}
}

// Window is a trailing collection of trials bounded by count, by age, or
// both. The zero value is unbounded.
type Window struct {
	maxLen int
	maxAge time.Duration
	trials []Trial
}

// NewCountWindow returns a window keeping the last n trials.
func NewCountWindow(n int) *Window {
	return &Window{maxLen: n}
}

// NewAgeWindow returns a window keeping trials recorded within d of now.
func NewAgeWindow(d time.Duration) *Window {
	return &Window{maxAge: d}
}

// Add appends t and evicts trials past the window bounds.
func (w *Window) Add(t Trial) {
	w.trials = append(w.trials, t)
	if w.maxLen > 0 && len(w.trials) > w.maxLen {
		w.trials = w.trials[len(w.trials)-w.maxLen:]
	}
}

// Prune drops trials older than the age bound, measured from now.
func (w *Window) Prune(now time.Time) {
	if w.maxAge <= 0 {
		return
	}
	cutoff := now.Add(-w.maxAge)
	i := 0
	for i < len(w.trials) && w.trials[i].At.Before(cutoff) {
		i++
	}
	if i > 0 {
		w.trials = append([]Trial(nil), w.trials[i:]...)
	}
}

// Clear empties the window.
func (w *Window) Clear() {
	w.trials = nil
}

// Len returns the number of trials held.
func (w *Window) Len() int {
	return len(w.trials)
}

// Trials returns a copy of the held trials, oldest first.
func (w *Window) Trials() []Trial {
	return append([]Trial(nil), w.trials...)
}

// Summary aggregates the trials currently in a window.
type Summary struct {
	Trials    int
	Successes int
	Failures  int

	// AvgResponseMs is the mean response time of all timed trials.
	AvgResponseMs float64

	// AvgSuccessMs is the mean response time of timed successes, or 0
	// when there are none.
	AvgSuccessMs   float64
	TimedSuccesses int
}

// Accuracy returns the success ratio, or 0 for an empty window.
func (s Summary) Accuracy() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Trials)
}

// Summarize computes aggregate statistics over the window.
func (w *Window) Summarize() Summary {
	var s Summary
	var timed, timedSum, successSum int
	for _, t := range w.trials {
		s.Trials++
		if t.Success {
			s.Successes++
		} else {
			s.Failures++
		}
		if !t.Timed {
			continue
		}
		timed++
		timedSum += t.ResponseMs
		if t.Success {
			s.TimedSuccesses++
			successSum += t.ResponseMs
		}
	}
	if timed > 0 {
		s.AvgResponseMs = float64(timedSum) / float64(timed)
	}
	if s.TimedSuccesses > 0 {
		s.AvgSuccessMs = float64(successSum) / float64(s.TimedSuccesses)
	}
	return s
}
