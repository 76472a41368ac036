package difficulty

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/spiread/internal/clock"
	"github.com/abhisek/spiread/internal/games"
)

// recentWindowSize bounds the trials used for recent accuracy and
// average response time.
const recentWindowSize = 10

// State is the mutable difficulty state of one controller.
type State struct {
	Game                 games.ID  `json:"game"`
	Level                int       `json:"level"`
	ConsecutiveSuccesses int       `json:"consecutive_successes"`
	ConsecutiveFailures  int       `json:"consecutive_failures"`
	TotalTrials          int       `json:"total_trials"`
	TotalSuccesses       int       `json:"total_successes"`
	LastAdjustmentAt     time.Time `json:"last_adjustment_at,omitzero"`
}

// Adjustment reports what one recorded trial did to the level.
type Adjustment struct {
	OldLevel int     `json:"old_level"`
	NewLevel int     `json:"new_level"`
	Changed  bool    `json:"changed"`
	Reason   Reason  `json:"reason,omitempty"`
	Outcome  Outcome `json:"outcome"`
}

// Stats summarizes performance for display and results.
type Stats struct {
	Level                int     `json:"level"`
	RecentAccuracy       float64 `json:"recent_accuracy"`
	ConsecutiveSuccesses int     `json:"consecutive_successes"`
	ConsecutiveFailures  int     `json:"consecutive_failures"`
	TotalTrials          int     `json:"total_trials"`
	TotalSuccesses       int     `json:"total_successes"`
	OverallAccuracy      float64 `json:"overall_accuracy"`
	AvgResponseMs        int     `json:"avg_response_ms"`
	RecentTrials         int     `json:"recent_trials"`
}

// Controller owns the level of one game session and moves it according
// to the game's adjustment policy. It is not safe for concurrent use.
type Controller struct {
	profile  games.Profile
	maxLevel int
	state    State
	recent   *Window
	policy   Policy
	clock    clock.Clock
	logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source for trial timestamps.
func WithClock(c clock.Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithLogger sets the logger for level changes.
func WithLogger(l *slog.Logger) Option {
	return func(ctrl *Controller) { ctrl.logger = l }
}

// WithPolicy replaces the game's default policy.
func WithPolicy(p Policy) Option {
	return func(ctrl *Controller) { ctrl.policy = p }
}

// NewController creates a controller for game starting at initialLevel.
func NewController(game games.ID, initialLevel int, opts ...Option) (*Controller, error) {
	profile, err := games.Lookup(game)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if initialLevel < 1 || initialLevel > profile.MaxLevel {
		return nil, fmt.Errorf("%w: initial level %d outside [1, %d]", ErrInvalidArgument, initialLevel, profile.MaxLevel)
	}

	c := &Controller{
		profile:  profile,
		maxLevel: profile.MaxLevel,
		state:    State{Game: game, Level: initialLevel},
		recent:   NewCountWindow(recentWindowSize),
		clock:    clock.Real(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.policy == nil {
		p, err := NewPolicy(profile.Adjustment)
		if err != nil {
			return nil, err
		}
		c.policy = p
	}
	return c, nil
}

// Game returns the controlled game.
func (c *Controller) Game() games.ID {
	return c.state.Game
}

// Profile returns the game's static profile.
func (c *Controller) Profile() games.Profile {
	return c.profile
}

// Policy returns the active adjustment policy.
func (c *Controller) Policy() Policy {
	return c.policy
}

// Level returns the current level.
func (c *Controller) Level() int {
	return c.state.Level
}

// State returns a copy of the controller state.
func (c *Controller) State() State {
	return c.state
}

// Params resolves the parameters for the current level.
func (c *Controller) Params() games.Params {
	return games.MustResolve(c.state.Game, c.state.Level)
}

// RecordTrial counts one outcome and applies the policy. An invalid
// option leaves the controller untouched.
func (c *Controller) RecordTrial(success bool, opts ...TrialOption) (Adjustment, error) {
	t := Trial{Success: success, Level: c.state.Level}
	for _, opt := range opts {
		opt(&t)
	}
	if t.Timed && t.ResponseMs < 0 {
		return Adjustment{}, fmt.Errorf("%w: negative response time %dms", ErrInvalidArgument, t.ResponseMs)
	}
	if t.At.IsZero() {
		t.At = c.clock.Now()
	}

	goal := c.Params().GoalResponseMs()
	outcome := c.policy.Classify(t, goal)

	c.recent.Add(t)
	c.state.TotalTrials++
	if success {
		c.state.TotalSuccesses++
	}
	switch outcome {
	case Qualifying:
		c.state.ConsecutiveSuccesses++
		c.state.ConsecutiveFailures = 0
	case Neutral:
		c.state.ConsecutiveSuccesses = 0
		c.state.ConsecutiveFailures = 0
	case Failing:
		c.state.ConsecutiveFailures++
		c.state.ConsecutiveSuccesses = 0
	}

	old := c.state.Level
	d := c.policy.Decide(Input{Trial: t, Outcome: outcome, GoalMs: goal, State: c.state, Now: t.At})
	adj := Adjustment{OldLevel: old, NewLevel: old, Reason: d.Reason, Outcome: outcome}
	if d.Delta == 0 {
		return adj, nil
	}

	next := old + d.Delta
	switch {
	case next > c.maxLevel:
		adj.Reason = ReasonAtCeiling
	case next < 1:
		adj.Reason = ReasonAtFloor
	default:
		c.state.Level = next
		c.state.LastAdjustmentAt = t.At
		adj.NewLevel = next
		adj.Changed = true
	}
	c.state.ConsecutiveSuccesses = 0
	c.state.ConsecutiveFailures = 0
	c.policy.Reset()

	if adj.Changed {
		c.logger.Debug("level changed",
			"game", c.state.Game,
			"from", old,
			"to", adj.NewLevel,
			"reason", adj.Reason)
	}
	return adj, nil
}

// SetLevel moves to level directly, resetting counters and policy
// history. Used to resume a previously reached level.
func (c *Controller) SetLevel(level int) error {
	if level < 1 || level > c.maxLevel {
		return fmt.Errorf("%w: level %d outside [1, %d]", ErrInvalidArgument, level, c.maxLevel)
	}
	c.state.Level = level
	c.state.ConsecutiveSuccesses = 0
	c.state.ConsecutiveFailures = 0
	c.policy.Reset()
	return nil
}

// Stats returns derived performance statistics.
func (c *Controller) Stats() Stats {
	s := c.recent.Summarize()
	st := Stats{
		Level:                c.state.Level,
		RecentAccuracy:       s.Accuracy(),
		ConsecutiveSuccesses: c.state.ConsecutiveSuccesses,
		ConsecutiveFailures:  c.state.ConsecutiveFailures,
		TotalTrials:          c.state.TotalTrials,
		TotalSuccesses:       c.state.TotalSuccesses,
		AvgResponseMs:        int(s.AvgResponseMs + 0.5),
		RecentTrials:         s.Trials,
	}
	if c.state.TotalTrials > 0 {
		st.OverallAccuracy = float64(c.state.TotalSuccesses) / float64(c.state.TotalTrials)
	}
	return st
}
