package store

import (
	"context"
	"time"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/session"
)

// RunQuery configures run history queries with filtering and pagination.
type RunQuery struct {
	Game      games.ID  // empty = all games
	Limit     int       // max results (0 = unlimited)
	From      time.Time // started_at >= From
	To        time.Time // started_at <= To
	ValidOnly bool
}

// Progress is the per-game record carried between sessions.
type Progress struct {
	Game        games.ID
	LastLevel   int
	BestScore   *int
	TotalRuns   int
	ValidRuns   int
	TotalTrials int
	UpdatedAt   time.Time
}

// RunRepo stores completed session results.
type RunRepo interface {
	// Save stores a completed run and folds it into the game's progress.
	Save(ctx context.Context, r session.Results) error

	// List returns runs matching q, newest first.
	List(ctx context.Context, q RunQuery) ([]session.Results, error)

	// Get returns a single run by ID, or nil if it does not exist.
	Get(ctx context.Context, id string) (*session.Results, error)
}

// ProgressRepo exposes per-game progress.
type ProgressRepo interface {
	// Get returns progress for game. A game with no runs starts at level 1.
	Get(ctx context.Context, game games.ID) (Progress, error)

	// All returns progress for every game that has been played.
	All(ctx context.Context) ([]Progress, error)

	// Reset deletes runs and progress for game, or for every game when
	// game is empty.
	Reset(ctx context.Context, game games.ID) error
}
