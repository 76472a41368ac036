package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testRun(game games.ID, offset time.Duration, final int, score *int, valid bool) session.Results {
	start := base.Add(offset)
	return session.Results{
		RunID:      uuid.NewString(),
		GameID:     game,
		StartedAt:  start,
		EndedAt:    start.Add(time.Minute),
		DurationMs: 60_000,
		StartLevel: 1,
		FinalLevel: final,
		AdaptiveStats: difficulty.Stats{
			Level:          final,
			TotalTrials:    20,
			TotalSuccesses: 16,
		},
		Score:     score,
		EndReason: session.EndTimeout,
		Valid:     valid,
	}
}

func intp(v int) *int { return &v }

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestFileDatabaseUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spiread.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{runsTable, progressTable} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
	}
}

func TestMigratedColumnsMatchSchema(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		table string
		want  []string
	}{
		{runsTable, runColumns},
		{progressTable, progressColumns},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			require.NotEmpty(t, tt.table)
			rows, err := s.DB().Query(fmt.Sprintf("PRAGMA table_info(%s)", tt.table))
			require.NoError(t, err)
			defer rows.Close()

			var got []string
			for rows.Next() {
				var (
					cid, notNull, pk int
					name, typ        string
					dflt             any
				)
				require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
				got = append(got, name)
			}
			require.NoError(t, rows.Err())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := testRun(games.MemoryDigits, 0, 4, intp(120), true)
	r.Pauses = 2
	r.AutoPauses = 1
	r.PausedMs = 3_500
	require.NoError(t, s.SaveRun(ctx, r))

	got, err := s.RunRepo().Get(ctx, r.RunID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, r.GameID, got.GameID)
	assert.True(t, r.StartedAt.Equal(got.StartedAt))
	assert.True(t, r.EndedAt.Equal(got.EndedAt))
	assert.Equal(t, r.PausedMs, got.PausedMs)
	assert.Equal(t, 4, got.FinalLevel)
	require.NotNil(t, got.Score)
	assert.Equal(t, 120, *got.Score)
	assert.Equal(t, session.EndTimeout, got.EndReason)
	assert.True(t, got.Valid)
	assert.Equal(t, 2, got.Pauses)
	assert.Equal(t, 1, got.AutoPauses)
	assert.Equal(t, r.AdaptiveStats, got.AdaptiveStats)
}

func TestGetMissingRun(t *testing.T) {
	s := openTestStore(t)
	got, err := s.RunRepo().Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveRunRejectsDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := testRun(games.Schulte, 0, 2, nil, true)
	require.NoError(t, s.SaveRun(ctx, r))
	assert.Error(t, s.SaveRun(ctx, r))

	// The failed save must not touch progress.
	prog, err := s.ProgressRepo().Get(ctx, games.Schulte)
	require.NoError(t, err)
	assert.Equal(t, 1, prog.TotalRuns)
}

func TestProgressDefaultsToLevelOne(t *testing.T) {
	s := openTestStore(t)
	prog, err := s.ProgressRepo().Get(context.Background(), games.TwinWords)
	require.NoError(t, err)
	assert.Equal(t, 1, prog.LastLevel)
	assert.Nil(t, prog.BestScore)
	assert.Zero(t, prog.TotalRuns)
}

func TestProgressFoldsRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runs := []session.Results{
		testRun(games.ParImpar, 0, 3, intp(90), true),
		testRun(games.ParImpar, time.Hour, 5, intp(200), false),
		testRun(games.ParImpar, 2*time.Hour, 4, intp(150), true),
		testRun(games.ParImpar, 3*time.Hour, 2, nil, true),
	}
	for _, r := range runs {
		require.NoError(t, s.SaveRun(ctx, r))
	}

	prog, err := s.ProgressRepo().Get(ctx, games.ParImpar)
	require.NoError(t, err)
	assert.Equal(t, 2, prog.LastLevel, "level carries from the latest run even when invalid or lower")
	require.NotNil(t, prog.BestScore)
	assert.Equal(t, 150, *prog.BestScore, "invalid runs never set the best score")
	assert.Equal(t, 4, prog.TotalRuns)
	assert.Equal(t, 3, prog.ValidRuns)
	assert.Equal(t, 80, prog.TotalTrials)
	assert.True(t, runs[3].EndedAt.Equal(prog.UpdatedAt))
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		r := testRun(games.Schulte, time.Duration(i)*time.Hour, 2, nil, i%2 == 0)
		require.NoError(t, s.SaveRun(ctx, r))
	}
	require.NoError(t, s.SaveRun(ctx, testRun(games.Anagrams, 10*time.Hour, 1, nil, true)))

	tests := []struct {
		name  string
		query RunQuery
		want  int
	}{
		{"all", RunQuery{}, 5},
		{"by game", RunQuery{Game: games.Schulte}, 4},
		{"valid only", RunQuery{Game: games.Schulte, ValidOnly: true}, 2},
		{"limit", RunQuery{Limit: 2}, 2},
		{"from", RunQuery{From: base.Add(2 * time.Hour)}, 3},
		{"to", RunQuery{To: base.Add(time.Hour)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.RunRepo().List(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}

	got, err := s.RunRepo().List(ctx, RunQuery{})
	require.NoError(t, err)
	assert.Equal(t, games.Anagrams, got[0].GameID, "newest first")
}

func TestAllProgressAndReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRun(ctx, testRun(games.Schulte, 0, 3, nil, true)))
	require.NoError(t, s.SaveRun(ctx, testRun(games.Anagrams, 0, 6, nil, true)))

	all, err := s.ProgressRepo().All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, games.Anagrams, all[0].Game)
	assert.Equal(t, 6, all[0].LastLevel)

	require.NoError(t, s.ProgressRepo().Reset(ctx, games.Anagrams))
	all, err = s.ProgressRepo().All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, games.Schulte, all[0].Game)

	runs, err := s.RunRepo().List(ctx, RunQuery{Game: games.Anagrams})
	require.NoError(t, err)
	assert.Empty(t, runs)

	require.NoError(t, s.ProgressRepo().Reset(ctx, ""))
	all, err = s.ProgressRepo().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStoreAsPersistenceGateway(t *testing.T) {
	var _ session.PersistenceGateway = openTestStore(t)
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("SPIREAD_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SPIREAD_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spiread", "spiread.db"), got)
}
