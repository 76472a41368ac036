package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spiread/internal/games"
)

var paramsCmd = &cobra.Command{
	Use:   "params <game>",
	Short: "Show level parameters for a game",
	Long:  "Print the parameter table a game uses at each level, or the full parameter set for one level.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := lookupGame(args[0])
		if err != nil {
			return err
		}
		level, _ := cmd.Flags().GetInt("level")
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		if level > 0 {
			params, err := games.Resolve(p.ID, level)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(params)
			}
			fmt.Fprintf(out, "%s level %d\n", p.Name, level)
			fmt.Fprintf(out, "  %+v\n", params)
			fmt.Fprintf(out, "  goal %dms  difficulty %.2f\n", params.GoalResponseMs(), params.Difficulty())
			return nil
		}

		fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
		fmt.Fprintf(out, "%5s %8s %10s\n", "LEVEL", "GOAL", "DIFFICULTY")
		for l := 1; l <= p.MaxLevel; l++ {
			params := games.MustResolve(p.ID, l)
			goal := "-"
			if ms := params.GoalResponseMs(); ms > 0 {
				goal = fmt.Sprintf("%dms", ms)
			}
			fmt.Fprintf(out, "%5d %8s %10.2f\n", l, goal, params.Difficulty())
		}
		return nil
	},
}

func init() {
	paramsCmd.Flags().Int("level", 0, "Show the full parameter set for this level")
	paramsCmd.Flags().Bool("json", false, "Print the parameter set as JSON (with --level)")
}
