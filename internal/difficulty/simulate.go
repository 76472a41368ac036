package difficulty

import (
	"time"

	"github.com/abhisek/spiread/internal/games"
)

// Response is a synthetic answer produced by a Responder.
type Response struct {
	Success    bool
	ResponseMs int
	Timed      bool
}

// Responder answers a trial played with the given parameters.
type Responder func(p games.Params) Response

// SimulationResult summarizes a simulated run.
type SimulationResult struct {
	Trials       int
	Successes    int
	Qualifying   int
	LevelChanges int
	StartLevel   int
	FinalLevel   int
	MaxReached   int

	// Visits counts trials played at each level.
	Visits map[int]int
}

// Accuracy is the ratio of correct trials.
func (r SimulationResult) Accuracy() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Successes) / float64(r.Trials)
}

// QualifyingRate is the ratio of trials that met the level's goal.
func (r SimulationResult) QualifyingRate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Qualifying) / float64(r.Trials)
}

// Simulate feeds n synthetic trials from respond into c, spacing their
// timestamps by spacing from the controller's current time.
func Simulate(c *Controller, n int, spacing time.Duration, respond Responder) (SimulationResult, error) {
	res := SimulationResult{
		StartLevel: c.Level(),
		MaxReached: c.Level(),
		Visits:     make(map[int]int),
	}
	at := c.clock.Now()
	for i := 0; i < n; i++ {
		res.Visits[c.Level()]++
		r := respond(c.Params())

		opts := []TrialOption{WithTimestamp(at)}
		if r.Timed {
			opts = append(opts, WithResponseTime(r.ResponseMs))
		}
		adj, err := c.RecordTrial(r.Success, opts...)
		if err != nil {
			return res, err
		}

		res.Trials++
		if r.Success {
			res.Successes++
		}
		if adj.Outcome == Qualifying {
			res.Qualifying++
		}
		if adj.Changed {
			res.LevelChanges++
		}
		res.MaxReached = max(res.MaxReached, adj.NewLevel)
		at = at.Add(spacing)
	}
	res.FinalLevel = c.Level()
	return res, nil
}
