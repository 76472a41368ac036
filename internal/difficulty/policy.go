package difficulty

import (
	"fmt"
	"time"

	"github.com/abhisek/spiread/internal/games"
)

// Reason explains a level decision.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonStreakUp   Reason = "streak_up"
	ReasonStreakDown Reason = "streak_down"
	ReasonWindowUp   Reason = "window_up"
	ReasonWindowDown Reason = "window_down"
	ReasonAtCeiling  Reason = "at_ceiling"
	ReasonAtFloor    Reason = "at_floor"
)

// Outcome classifies a trial for counter bookkeeping.
type Outcome int

const (
	// Qualifying is a correct trial that meets the response time goal.
	Qualifying Outcome = iota
	// Neutral is a correct trial that missed the goal but not by enough
	// to count as a failure. It breaks a streak without moving the level.
	Neutral
	// Failing is an incorrect trial, or one too slow to count.
	Failing
)

func (o Outcome) String() string {
	switch o {
	case Qualifying:
		return "qualifying"
	case Neutral:
		return "neutral"
	case Failing:
		return "failing"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Decision is a policy's verdict for one trial.
type Decision struct {
	Delta  int // -1, 0 or +1
	Reason Reason
}

// Input is what a policy sees when deciding on a trial.
type Input struct {
	Trial   Trial
	Outcome Outcome
	GoalMs  int
	State   State
	Now     time.Time
}

// Policy decides level movements from a stream of trials. A policy
// instance belongs to exactly one Controller.
type Policy interface {
	Kind() games.PolicyKind

	// Classify labels a trial against the goal of the level it was
	// played at. It must not mutate the policy.
	Classify(t Trial, goalMs int) Outcome

	// Decide returns the level movement after a trial has been counted.
	Decide(in Input) Decision

	// Reset discards policy history. Called after every level decision.
	Reset()
}

// NewPolicy builds the policy described by spec.
func NewPolicy(spec games.AdjustmentSpec) (Policy, error) {
	switch spec.Kind {
	case games.KindStreak:
		return NewStreakPolicy(spec.UpCount, spec.FailFactor), nil
	case games.KindWindow:
		return NewWindowPolicy(spec), nil
	default:
		return nil, fmt.Errorf("%w: policy kind %q", ErrInvalidArgument, spec.Kind)
	}
}

// StreakPolicy is the N-down/1-up staircase. With the default of three it
// converges to about 79.4% qualifying successes.
type StreakPolicy struct {
	upCount    int
	failFactor float64
}

// NewStreakPolicy returns a staircase raising the level after upCount
// qualifying successes in a row. A correct response slower than
// goal*failFactor counts as a failure; slower than goal but within that
// bound it is neutral. Values below 1 are treated as 1.
func NewStreakPolicy(upCount int, failFactor float64) *StreakPolicy {
	if upCount < 1 {
		upCount = 3
	}
	if failFactor < 1 {
		failFactor = 1
	}
	return &StreakPolicy{upCount: upCount, failFactor: failFactor}
}

func (p *StreakPolicy) Kind() games.PolicyKind { return games.KindStreak }

func (p *StreakPolicy) Classify(t Trial, goalMs int) Outcome {
	if !t.Success {
		return Failing
	}
	if goalMs <= 0 || !t.Timed || t.ResponseMs <= goalMs {
		return Qualifying
	}
	if float64(t.ResponseMs) > float64(goalMs)*p.failFactor {
		return Failing
	}
	return Neutral
}

func (p *StreakPolicy) Decide(in Input) Decision {
	switch {
	case in.Outcome == Failing:
		return Decision{Delta: -1, Reason: ReasonStreakDown}
	case in.State.ConsecutiveSuccesses >= p.upCount:
		return Decision{Delta: 1, Reason: ReasonStreakUp}
	}
	return Decision{}
}

// Reset is a no-op; the streak lives in the controller's counters.
func (p *StreakPolicy) Reset() {}

// WindowPolicy moves the level from accuracy and speed over a trailing
// time window.
type WindowPolicy struct {
	spec     games.AdjustmentSpec
	window   *Window
	lastEval time.Time
}

// NewWindowPolicy returns a windowed threshold policy. Zero thresholds in
// spec fall back to the standard 85%/60% rule over 10 seconds.
func NewWindowPolicy(spec games.AdjustmentSpec) *WindowPolicy {
	def := games.WindowSpec(spec.EvalInterval)
	if spec.Window <= 0 {
		spec.Window = def.Window
	}
	if spec.MinTrials <= 0 {
		spec.MinTrials = def.MinTrials
	}
	if spec.UpAccuracy <= 0 {
		spec.UpAccuracy = def.UpAccuracy
	}
	if spec.UpSuccesses <= 0 {
		spec.UpSuccesses = def.UpSuccesses
	}
	if spec.DownAccuracy <= 0 {
		spec.DownAccuracy = def.DownAccuracy
	}
	if spec.DownFailures <= 0 {
		spec.DownFailures = def.DownFailures
	}
	spec.Kind = games.KindWindow
	return &WindowPolicy{spec: spec, window: NewAgeWindow(spec.Window)}
}

func (p *WindowPolicy) Kind() games.PolicyKind { return games.KindWindow }

// Classify only looks at correctness. Speed is judged on the window
// average in Decide.
func (p *WindowPolicy) Classify(t Trial, _ int) Outcome {
	if t.Success {
		return Qualifying
	}
	return Failing
}

func (p *WindowPolicy) Decide(in Input) Decision {
	p.window.Add(in.Trial)
	p.window.Prune(in.Now)

	if p.window.Len() < p.spec.MinTrials {
		return Decision{}
	}
	if p.spec.EvalInterval > 0 && !p.lastEval.IsZero() && in.Now.Sub(p.lastEval) < p.spec.EvalInterval {
		return Decision{}
	}
	p.lastEval = in.Now

	s := p.window.Summarize()
	fastEnough := in.GoalMs <= 0 || s.TimedSuccesses == 0 || s.AvgSuccessMs <= float64(in.GoalMs)
	if s.Accuracy() >= p.spec.UpAccuracy && fastEnough && s.Successes >= p.spec.UpSuccesses {
		return Decision{Delta: 1, Reason: ReasonWindowUp}
	}
	if s.Failures >= p.spec.DownFailures || s.Accuracy() < p.spec.DownAccuracy {
		return Decision{Delta: -1, Reason: ReasonWindowDown}
	}
	return Decision{}
}

// Reset clears the window so a fresh level is judged on fresh trials.
func (p *WindowPolicy) Reset() {
	p.window.Clear()
}

// Window exposes the policy's trailing window for inspection.
func (p *WindowPolicy) Window() *Window {
	return p.window
}
