package cmd

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/spiread/internal/clock"
	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run the difficulty controller against a synthetic player",
	Long: `Feed synthetic trials into a game's level controller and report where it settles.

The synthetic player answers correctly with probability --accuracy, reduced by
--falloff for each level above the start, and responds in --speed times the
level's goal response time with some jitter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupGame(args[0])
		if err != nil {
			return err
		}
		f := cmd.Flags()
		level, _ := f.GetInt("level")
		trials, _ := f.GetInt("trials")
		spacing, _ := f.GetDuration("spacing")
		accuracy, _ := f.GetFloat64("accuracy")
		falloff, _ := f.GetFloat64("falloff")
		speed, _ := f.GetFloat64("speed")
		seed, _ := f.GetUint64("seed")

		if trials < 1 {
			return fmt.Errorf("--trials must be positive")
		}
		if level < 1 {
			level = 1
		}

		ctrl, err := difficulty.NewController(p.ID, level,
			difficulty.WithClock(clock.NewFake(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))))
		if err != nil {
			return err
		}

		r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		respond := syntheticPlayer(r, level, accuracy, falloff, speed)

		res, err := difficulty.Simulate(ctrl, trials, spacing, respond)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d trials, %s policy\n", p.Name, res.Trials, p.Adjustment.Kind)
		fmt.Fprintf(out, "  accuracy     %5.1f%%\n", 100*res.Accuracy())
		fmt.Fprintf(out, "  qualifying   %5.1f%%\n", 100*res.QualifyingRate())
		fmt.Fprintf(out, "  level        %d -> %d (max %d, %d changes)\n",
			res.StartLevel, res.FinalLevel, res.MaxReached, res.LevelChanges)

		levels := make([]int, 0, len(res.Visits))
		for l := range res.Visits {
			levels = append(levels, l)
		}
		slices.Sort(levels)
		fmt.Fprintln(out, "  trials per level:")
		for _, l := range levels {
			fmt.Fprintf(out, "    %3d %5d\n", l, res.Visits[l])
		}
		return nil
	},
}

// syntheticPlayer answers with a success rate that drops linearly as the
// level climbs above start, and a response time around speed*goal.
func syntheticPlayer(r *rand.Rand, start int, accuracy, falloff, speed float64) difficulty.Responder {
	return func(p games.Params) difficulty.Response {
		pSuccess := accuracy - falloff*float64(p.Level()-start)
		pSuccess = min(max(pSuccess, 0), 1)
		resp := difficulty.Response{Success: r.Float64() < pSuccess}

		if goal := p.GoalResponseMs(); goal > 0 {
			jitter := 0.8 + 0.4*r.Float64()
			resp.ResponseMs = max(1, int(float64(goal)*speed*jitter))
			resp.Timed = true
		}
		return resp
	}
}

func init() {
	f := simulateCmd.Flags()
	f.Int("level", 1, "Starting level")
	f.Int("trials", 200, "Number of trials to simulate")
	f.Duration("spacing", 3*time.Second, "Time between simulated trials")
	f.Float64("accuracy", 0.9, "Success probability at the starting level")
	f.Float64("falloff", 0.05, "Success probability lost per level above the start")
	f.Float64("speed", 0.9, "Response time as a multiple of the level's goal")
	f.Uint64("seed", 1, "Random seed")
}
