package history

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	"github.com/abhisek/spiread/internal/session"
	"github.com/abhisek/spiread/internal/store"
)

type mockRunRepo struct {
	runs    []session.Results
	queries []store.RunQuery
}

func (m *mockRunRepo) Save(_ context.Context, r session.Results) error {
	m.runs = append(m.runs, r)
	return nil
}

func (m *mockRunRepo) List(_ context.Context, q store.RunQuery) ([]session.Results, error) {
	m.queries = append(m.queries, q)
	var out []session.Results
	for _, r := range m.runs {
		if q.Game == "" || r.GameID == q.Game {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRunRepo) Get(_ context.Context, id string) (*session.Results, error) {
	for _, r := range m.runs {
		if r.RunID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func testRepo() *mockRunRepo {
	at := time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC)
	score := 42
	return &mockRunRepo{runs: []session.Results{
		{RunID: "a", GameID: games.TwinWords, StartedAt: at, DurationMs: 60_000, StartLevel: 2, FinalLevel: 3, Score: &score, EndReason: session.EndTimeout, Valid: true},
		{RunID: "b", GameID: games.Schulte, StartedAt: at.Add(-time.Hour), DurationMs: 12_000, StartLevel: 1, FinalLevel: 1, EndReason: session.EndManualStop},
	}}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistoryLoadsRuns(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	assert.Contains(t, s.View(80, 24), "Loading")

	load(t, s)
	view := ansi.Strip(s.View(100, 24))
	assert.Contains(t, view, "Twin Words")
	assert.Contains(t, view, "Schulte Table")
	assert.Contains(t, view, "42")
	assert.Equal(t, pageSize, repo.queries[0].Limit)
}

func TestHistoryEmpty(t *testing.T) {
	s := New(&mockRunRepo{})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "No runs yet")
}

func TestHistoryExpandDetails(t *testing.T) {
	s := New(testRepo())
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, ansi.Strip(s.View(100, 24)), "not counted")
}

func TestHistoryFilterCycles(t *testing.T) {
	repo := testRepo()
	s := New(repo)
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.NotNil(t, cmd)
	s.Update(cmd())

	first := games.All()[0]
	assert.Equal(t, first.Name, s.Status())
	assert.Equal(t, first.ID, repo.queries[1].Game)
	for _, r := range s.runs {
		assert.Equal(t, first.ID, r.GameID)
	}
}

func TestHistoryIgnoresStaleLoad(t *testing.T) {
	s := New(testRepo())
	s.filter = 1
	s.Update(historyLoadedMsg{Game: "", Runs: testRepo().runs})
	assert.False(t, s.loaded)
}

func TestHistoryEscPops(t *testing.T) {
	s := New(testRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
