package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "List recent sessions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := store.RunQuery{}
		if len(args) == 1 {
			p, err := lookupGame(args[0])
			if err != nil {
				return err
			}
			q.Game = p.ID
		}
		q.Limit, _ = cmd.Flags().GetInt("limit")
		q.ValidOnly, _ = cmd.Flags().GetBool("valid")
		if days, _ := cmd.Flags().GetInt("days"); days > 0 {
			q.From = time.Now().AddDate(0, 0, -days)
		}

		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		runs, err := st.RunRepo().List(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}
		fmt.Fprintf(out, "%-16s %-14s %8s %7s %7s %6s  %s\n",
			"STARTED", "GAME", "DURATION", "LEVEL", "CORRECT", "SCORE", "END")
		for _, r := range runs {
			score := "-"
			if r.Score != nil {
				score = fmt.Sprintf("%d", *r.Score)
			}
			end := string(r.EndReason)
			if !r.Valid {
				end += " (not counted)"
			}
			fmt.Fprintf(out, "%-16s %-14s %8s %3d->%-3d %3d/%-3d %6s  %s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				r.GameID,
				r.Duration().Round(time.Second),
				r.StartLevel, r.FinalLevel,
				r.AdaptiveStats.TotalSuccesses, r.AdaptiveStats.TotalTrials,
				score, end)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved level and best score per game",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		all, err := st.ProgressRepo().All(cmd.Context())
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		byGame := make(map[games.ID]store.Progress, len(all))
		for _, p := range all {
			byGame[p.Game] = p
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s %5s %5s %6s %7s %6s\n", "GAME", "LEVEL", "BEST", "RUNS", "COUNTED", "TRIALS")
		for _, g := range games.All() {
			p, ok := byGame[g.ID]
			if !ok {
				fmt.Fprintf(out, "%-16s %5s %5s %6d %7d %6d\n", g.Name, "-", "-", 0, 0, 0)
				continue
			}
			best := "-"
			if p.BestScore != nil {
				best = fmt.Sprintf("%d", *p.BestScore)
			}
			fmt.Fprintf(out, "%-16s %5d %5s %6d %7d %6d\n",
				g.Name, p.LastLevel, best, p.TotalRuns, p.ValidRuns, p.TotalTrials)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to list (0 for all)")
	historyCmd.Flags().Bool("valid", false, "Only list sessions that counted")
	historyCmd.Flags().Int("days", 0, "Only list sessions from the last N days")
}
