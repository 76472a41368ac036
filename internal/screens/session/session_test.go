package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/spiread/internal/clock"
	"github.com/abhisek/spiread/internal/config"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	sess "github.com/abhisek/spiread/internal/session"
	"github.com/abhisek/spiread/internal/store"
)

// mockGateway records persisted runs.
type mockGateway struct {
	mu   sync.Mutex
	runs []sess.Results
}

func (m *mockGateway) SaveRun(_ context.Context, r sess.Results) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, r)
	return nil
}

func (m *mockGateway) saved() []sess.Results {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sess.Results(nil), m.runs...)
}

// mockProgressRepo returns a fixed level.
type mockProgressRepo struct {
	level int
}

func (m *mockProgressRepo) Get(_ context.Context, game games.ID) (store.Progress, error) {
	return store.Progress{Game: game, LastLevel: m.level}, nil
}
func (m *mockProgressRepo) All(_ context.Context) ([]store.Progress, error) { return nil, nil }
func (m *mockProgressRepo) Reset(_ context.Context, _ games.ID) error       { return nil }

type harness struct {
	screen *SessionScreen
	clock  *clock.Fake
	gw     *mockGateway
}

func start(t *testing.T, game games.ID, level int) *harness {
	t.Helper()
	h := &harness{
		clock: clock.NewFake(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)),
		gw:    &mockGateway{},
	}
	h.screen = New(game, Deps{
		Config:   config.Default(),
		Progress: &mockProgressRepo{level: level},
		Persist:  h.gw,
		Clock:    h.clock,
		Rand:     rand.New(rand.NewPCG(1, 2)),
	})

	msg := h.screen.initSession()()
	init, ok := msg.(sessionInitMsg)
	require.True(t, ok)
	require.NoError(t, init.Err)
	_, cmd := h.screen.Update(init)
	require.NotNil(t, cmd, "expected tick command")
	require.Empty(t, h.screen.errMsg)
	return h
}

func key(s string) tea.KeyPressMsg {
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestSessionStartsAtPersistedLevel(t *testing.T) {
	h := start(t, games.ParImpar, 4)
	assert.Equal(t, sess.PhasePlaying, h.screen.machine.Phase())
	assert.Equal(t, 4, h.screen.machine.Level())
	assert.NotEmpty(t, h.screen.item.Show)
	assert.Equal(t, "Odd or Even", h.screen.Title())
}

func TestSessionUnplayableGame(t *testing.T) {
	s := New(games.Schulte, Deps{Config: config.Default()})
	msg := s.initSession()().(sessionInitMsg)
	require.Error(t, msg.Err)

	s.Update(msg)
	assert.NotEmpty(t, s.errMsg)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok, "any key goes back from an error")
}

func TestSessionKeyAnswerRecordsTrial(t *testing.T) {
	h := start(t, games.ParImpar, 1)
	answer := h.screen.item.Answer

	h.clock.Advance(300 * time.Millisecond)
	_, cmd := h.screen.Update(key(answer))
	require.NotNil(t, cmd, "expected feedback timer")

	stats := h.screen.machine.Stats()
	assert.Equal(t, 1, stats.TotalTrials)
	assert.Equal(t, 1, stats.TotalSuccesses)
	assert.Equal(t, stageFeedback, h.screen.stage)
	assert.True(t, h.screen.lastCorrect)
	assert.Positive(t, h.screen.machine.Snapshot().Score)

	// Keys are ignored while feedback is up.
	h.screen.Update(key(answer))
	assert.Equal(t, 1, h.screen.machine.Stats().TotalTrials)

	h.screen.Update(feedbackDoneMsg{})
	assert.NotEqual(t, stageFeedback, h.screen.stage)
}

func TestSessionIgnoresOtherKeys(t *testing.T) {
	h := start(t, games.TwinWords, 1)
	h.screen.Update(key("x"))
	assert.Zero(t, h.screen.machine.Stats().TotalTrials)
}

func TestSessionPauseResume(t *testing.T) {
	h := start(t, games.TwinWords, 1)

	h.screen.Update(key("p"))
	assert.Equal(t, sess.PhasePaused, h.screen.machine.Phase())
	assert.Contains(t, h.screen.Status(), "paused")

	// Answers are not taken while paused.
	h.screen.Update(key(h.screen.item.Answer))
	assert.Zero(t, h.screen.machine.Stats().TotalTrials)

	h.clock.Advance(10 * time.Second)
	h.screen.Update(key("r"))
	assert.Equal(t, sess.PhasePlaying, h.screen.machine.Phase())
	assert.Equal(t, 10*time.Second, h.screen.machine.Snapshot().PausedFor)
}

func TestSessionBlurAutoPauses(t *testing.T) {
	h := start(t, games.ParImpar, 1)

	h.screen.Update(tea.BlurMsg{})
	h.clock.Advance(sess.DefaultGraceDelay + time.Millisecond)
	assert.Equal(t, sess.PhasePaused, h.screen.machine.Phase())
	assert.Equal(t, sess.PauseAuto, h.screen.machine.Snapshot().PauseReason)

	h.screen.Update(tea.FocusMsg{})
	assert.Equal(t, sess.PhasePaused, h.screen.machine.Phase(), "auto-pause stays until resumed")
}

func TestSessionQuickFocusReturnKeepsPlaying(t *testing.T) {
	h := start(t, games.ParImpar, 1)

	h.screen.Update(tea.BlurMsg{})
	h.clock.Advance(sess.DefaultGraceDelay / 2)
	h.screen.Update(tea.FocusMsg{})
	h.clock.Advance(sess.DefaultGraceDelay)
	assert.Equal(t, sess.PhasePlaying, h.screen.machine.Phase())
}

func TestSessionMemoryDigitsExposure(t *testing.T) {
	h := start(t, games.MemoryDigits, 1)
	item := h.screen.item
	require.Positive(t, item.Expose)
	assert.Equal(t, stageExpose, h.screen.stage)

	// Typing is ignored while the number is shown.
	h.screen.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Zero(t, h.screen.machine.Stats().TotalTrials)

	h.clock.Advance(item.Expose)
	h.screen.Update(timerTickMsg{})
	assert.Equal(t, stageAnswer, h.screen.stage)
	assert.NotContains(t, h.screen.View(80, 24), item.Show)

	h.screen.submit(item.Answer)
	assert.Equal(t, 1, h.screen.machine.Stats().TotalSuccesses)
}

func TestSessionTimeoutEndsWithSummary(t *testing.T) {
	h := start(t, games.TwinWords, 1)

	h.clock.Advance(time.Hour)
	_, cmd := h.screen.Update(timerTickMsg{})
	require.NotNil(t, cmd)

	end, ok := cmd().(sessionEndMsg)
	require.True(t, ok)
	assert.Equal(t, sess.EndTimeout, end.Results.EndReason)
	assert.True(t, end.Results.Valid)
	require.Len(t, h.gw.saved(), 1, "results are persisted before the summary")

	_, cmd = h.screen.Update(end)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Session Summary", replace.Screen.Title())

	// Further ticks are ignored.
	_, cmd = h.screen.Update(timerTickMsg{})
	assert.Nil(t, cmd)
}

func TestSessionQuitConfirm(t *testing.T) {
	h := start(t, games.ParImpar, 1)

	h.screen.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.True(t, h.screen.quitConfirm)
	h.screen.Update(key("n"))
	assert.False(t, h.screen.quitConfirm)
	assert.Equal(t, sess.PhasePlaying, h.screen.machine.Phase())

	h.screen.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := h.screen.Update(key("y"))
	require.NotNil(t, cmd)
	end := cmd().(sessionEndMsg)
	assert.Equal(t, sess.EndManualStop, end.Results.EndReason)
	assert.False(t, end.Results.Valid, "an immediate stop is too short to count")
}

func TestSessionCloseExitsRunningSession(t *testing.T) {
	h := start(t, games.ParImpar, 1)
	h.clock.Advance(5 * time.Second)

	h.screen.Close()
	runs := h.gw.saved()
	require.Len(t, runs, 1)
	assert.Equal(t, sess.EndExit, runs[0].EndReason)

	// Closing twice does not persist twice.
	h.screen.Close()
	assert.Len(t, h.gw.saved(), 1)
}

func TestSessionKeyHints(t *testing.T) {
	h := start(t, games.TwinWords, 1)
	hints := h.screen.KeyHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "s", hints[0].Key)
	assert.Equal(t, "Esc", hints[len(hints)-1].Key)

	h.screen.Update(key("p"))
	assert.Equal(t, "R", h.screen.KeyHints()[0].Key)
}
