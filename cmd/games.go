package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spiread/internal/games"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List the available games",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-14s %-16s %6s %9s %9s  %-8s %s\n",
			"ID", "NAME", "LEVELS", "DURATION", "MIN VALID", "POLICY", "DRILL")
		for _, p := range games.All() {
			drill := "-"
			if p.Playable {
				drill = "yes"
			}
			fmt.Fprintf(out, "%-14s %-16s %6d %9s %9s  %-8s %s\n",
				p.ID, p.Name, p.MaxLevel, p.DefaultDuration, p.MinValidDuration,
				p.Adjustment.Kind, drill)
		}
		return nil
	},
}
