package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/session"
	"github.com/abhisek/spiread/internal/store"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func seedRun(t *testing.T, dbPath string, game games.ID, final, score int) {
	t.Helper()
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	start := time.Now().Add(-time.Hour)
	require.NoError(t, st.SaveRun(context.Background(), session.Results{
		RunID:         uuid.NewString(),
		GameID:        game,
		StartedAt:     start,
		EndedAt:       start.Add(time.Minute),
		DurationMs:    60_000,
		StartLevel:    1,
		FinalLevel:    final,
		AdaptiveStats: difficulty.Stats{TotalTrials: 10, TotalSuccesses: 8},
		Score:         &score,
		EndReason:     session.EndTimeout,
		Valid:         true,
	}))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "spiread "))
}

func TestGamesListsEveryProfile(t *testing.T) {
	out, err := execute(t, "", "games")
	require.NoError(t, err)
	for _, p := range games.All() {
		assert.Contains(t, out, p.Name)
	}
}

func TestParamsTable(t *testing.T) {
	out, err := execute(t, "", "params", "memory-digits", "--level", "0", "--json=false")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	p, _ := games.Lookup(games.MemoryDigits)
	assert.Len(t, lines, p.MaxLevel+2)
}

func TestParamsSingleLevelJSON(t *testing.T) {
	out, err := execute(t, "", "params", "parimpar", "--level", "3", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, "{")
	assert.Contains(t, out, "3")
}

func TestParamsUnknownGame(t *testing.T) {
	_, err := execute(t, "", "params", "chess")
	assert.ErrorIs(t, err, games.ErrUnknownGame)
}

func TestSimulate(t *testing.T) {
	out, err := execute(t, "", "simulate", "twin_words", "--trials", "50", "--level", "1", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Twin Words: 50 trials")
	assert.Contains(t, out, "trials per level")
}

func TestPlayRejectsEngineOnlyGame(t *testing.T) {
	_, err := execute(t, "", "play", "schulte", "--db", filepath.Join(t.TempDir(), "s.db"))
	assert.ErrorContains(t, err, "no terminal drill")
}

func TestHistoryAndProgress(t *testing.T) {
	db := filepath.Join(t.TempDir(), "spiread.db")

	out, err := execute(t, "", "history", "--db", db, "--limit", "20", "--valid=false", "--days", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet.")

	seedRun(t, db, games.ParImpar, 4, 42)

	out, err = execute(t, "", "history", "--db", db, "--limit", "20", "--valid=false", "--days", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "parimpar")
	assert.Contains(t, out, "8/10")

	out, err = execute(t, "", "progress", "--db", db)
	require.NoError(t, err)
	assert.Regexp(t, `Odd or Even\s+4\s+42\s+1\s+1\s+10`, out)
}

func TestResetNeedsConfirmation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "spiread.db")
	seedRun(t, db, games.TwinWords, 3, 10)

	out, err := execute(t, "n\n", "reset", "twinwords", "--db", db, "--yes=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = execute(t, "", "reset", "twinwords", "--db", db, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset Twin Words.")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	p, err := st.ProgressRepo().Get(context.Background(), games.TwinWords)
	require.NoError(t, err)
	assert.Equal(t, 1, p.LastLevel)
	assert.Zero(t, p.TotalRuns)
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "", "version", "--log-level", "loud")
	assert.Error(t, err)
	_, err = execute(t, "", "version", "--log-level", "")
	assert.NoError(t, err)
}
