package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/spiread/internal/app"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/screens/home"
	sessionscreen "github.com/abhisek/spiread/internal/screens/session"
)

// runApp opens the store, builds dependencies, and launches the TUI. When
// start is set the chosen game opens immediately.
func runApp(cmd *cobra.Command, start games.ID) error {
	st, dbPath, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The alternate screen owns the terminal, so logs go next to the database.
	logger, closeLog, err := fileLogger(filepath.Join(filepath.Dir(dbPath), "spiread.log"))
	if err != nil {
		return err
	}
	defer closeLog()

	deps := home.Deps{
		Session: sessionscreen.Deps{
			Config:   cfg,
			Progress: st.ProgressRepo(),
			Persist:  st,
			Logger:   logger,
		},
		Runs: st.RunRepo(),
	}
	return app.Run(deps, start)
}

func fileLogger(path string) (*slog.Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel}))
	return logger, func() { f.Close() }, nil
}
