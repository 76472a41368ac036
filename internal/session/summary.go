package session

import (
	"time"

	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
)

// Results is emitted exactly once when a session completes.
type Results struct {
	RunID         string           `json:"run_id"`
	GameID        games.ID         `json:"game_id"`
	StartedAt     time.Time        `json:"started_at"`
	EndedAt       time.Time        `json:"ended_at"`
	DurationMs    int64            `json:"duration_ms"`
	PausedMs      int64            `json:"paused_ms"`
	StartLevel    int              `json:"start_level"`
	FinalLevel    int              `json:"final_level"`
	AdaptiveStats difficulty.Stats `json:"adaptive_stats"`
	Score         *int             `json:"score,omitempty"`
	EndReason     EndReason        `json:"end_reason"`
	Pauses        int              `json:"pauses"`
	AutoPauses    int              `json:"auto_pauses"`

	// Valid reports whether the run was long enough to count toward
	// records.
	Valid bool `json:"valid"`
}

// Duration returns DurationMs as a time.Duration.
func (r Results) Duration() time.Duration {
	return time.Duration(r.DurationMs) * time.Millisecond
}

// LevelDelta is the net level change over the session.
func (r Results) LevelDelta() int {
	return r.FinalLevel - r.StartLevel
}

// ScoreFunc computes a final score from completed results. It sees the
// points accumulated through AddScore in r.Score, if any.
type ScoreFunc func(r Results) int

// DefaultScore rewards correct trials and the level they were reached at.
func DefaultScore(r Results) int {
	base := 0
	if r.Score != nil {
		base = *r.Score
	}
	return base + r.AdaptiveStats.TotalSuccesses*10*r.FinalLevel
}

// buildResults assembles results from the final machine state. Called with
// the machine lock held.
func buildResults(m *Machine, reason EndReason, endedAt time.Time) Results {
	elapsed := m.clock.Elapsed()
	if d := m.clock.Duration(); d > 0 && (reason == EndTimeout || elapsed > d) {
		elapsed = d
	}
	r := Results{
		RunID:         m.runID,
		GameID:        m.profile.ID,
		StartedAt:     m.clock.StartedAt(),
		EndedAt:       endedAt,
		DurationMs:    elapsed.Milliseconds(),
		PausedMs:      m.clock.PausedFor().Milliseconds(),
		StartLevel:    m.startLevel,
		FinalLevel:    m.ctrl.Level(),
		AdaptiveStats: m.ctrl.Stats(),
		EndReason:     reason,
		Pauses:        m.pauses,
		AutoPauses:    m.autoPauses,
		Valid:         elapsed >= m.profile.MinValidDuration,
	}
	if m.scored {
		score := m.score
		r.Score = &score
	}
	return r
}
