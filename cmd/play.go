package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/spiread/internal/games"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Start a training session",
	Long:  "Start the trainer. With a game argument the session opens straight away, otherwise the game menu is shown.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runApp(cmd, "")
		}
		p, err := lookupGame(args[0])
		if err != nil {
			return err
		}
		if !p.Playable {
			return fmt.Errorf("%s has no terminal drill yet; see 'spiread games'", p.Name)
		}
		return runApp(cmd, p.ID)
	},
}

// lookupGame resolves a user-supplied game key to its profile.
func lookupGame(key string) (games.Profile, error) {
	id, err := games.Canonical(key)
	if err != nil {
		return games.Profile{}, err
	}
	return games.Lookup(id)
}
