package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spiread/internal/clock"
	"github.com/abhisek/spiread/internal/config"
	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/drill"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	"github.com/abhisek/spiread/internal/screen"
	sess "github.com/abhisek/spiread/internal/session"
	"github.com/abhisek/spiread/internal/store"
	"github.com/abhisek/spiread/internal/ui/components"
	"github.com/abhisek/spiread/internal/ui/layout"
)

// feedbackDelay is how long the correct/incorrect mark stays up.
const feedbackDelay = 400 * time.Millisecond

type stage int

const (
	stageExpose stage = iota
	stageAnswer
	stageFeedback
)

// Deps are the collaborators a session screen needs.
type Deps struct {
	Config   config.Config
	Progress store.ProgressRepo
	Persist  sess.PersistenceGateway
	Logger   *slog.Logger

	// Clock and Rand are optional and exist for tests.
	Clock clock.Clock
	Rand  *rand.Rand
}

// SessionScreen implements screen.Screen for one timed game session.
type SessionScreen struct {
	game games.ID
	deps Deps
	clk  clock.Clock

	machine *sess.Machine
	gen     drill.Generator

	item        drill.Item
	params      games.Params
	stage       stage
	shownAt     time.Time
	lastCorrect bool
	trials      int
	correct     int

	input       components.AnswerInput
	quitConfirm bool
	ending      bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.Closer = (*SessionScreen)(nil)

// New creates a SessionScreen for game.
func New(game games.ID, deps Deps) *SessionScreen {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &SessionScreen{
		game:  game,
		deps:  deps,
		clk:   clk,
		input: components.NewAnswerInput("type what you saw", components.Digits, 16),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.machine != nil {
		return s.tickCmd()
	}
	return tea.Batch(s.initSession(), s.input.Init())
}

func (s *SessionScreen) Title() string {
	p, err := games.Lookup(s.game)
	if err != nil {
		return "Session"
	}
	return p.Name
}

func (s *SessionScreen) Status() string {
	if s.machine == nil {
		return ""
	}
	snap := s.machine.Snapshot()
	clockStr := layout.FormatClock(snap.Elapsed)
	if snap.Duration > 0 {
		clockStr = layout.FormatClock(snap.Remaining)
	}
	status := fmt.Sprintf("Lv %d  %s  %d pts", snap.Level, clockStr, snap.Score)
	if snap.Phase == sess.PhasePaused {
		status += "  paused"
	}
	return status
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	if s.machine == nil {
		return nil
	}
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.machine.Phase() == sess.PhasePaused {
		return []layout.KeyHint{
			{Key: "R", Description: "Resume"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{}
	switch {
	case len(s.item.Keys) > 0:
		for _, k := range s.item.Keys {
			hints = append(hints, layout.KeyHint{Key: k, Description: keyLabel(k)})
		}
	case s.stage == stageAnswer:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	return append(hints,
		layout.KeyHint{Key: "P", Description: "Pause"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionInitMsg:
		return s.handleInit(msg)

	case timerTickMsg:
		return s.handleTimerTick()

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: newSummaryScreenAdapter(msg.Results)}
		}

	case tea.BlurMsg:
		if s.machine != nil {
			s.machine.Background()
		}
		return s, nil

	case tea.FocusMsg:
		if s.machine != nil {
			s.machine.Foreground()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptsText() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// Close ends a session that is still running so its results are kept.
func (s *SessionScreen) Close() {
	if s.machine == nil {
		return
	}
	s.machine.Exit()
	s.machine.Wait()
}

// initSession loads the persisted level and builds the machine.
func (s *SessionScreen) initSession() tea.Cmd {
	game, deps := s.game, s.deps
	return func() tea.Msg {
		lastLevel := 1
		if deps.Progress != nil {
			prog, err := deps.Progress.Get(context.Background(), game)
			if err != nil {
				return sessionInitMsg{Err: err}
			}
			lastLevel = prog.LastLevel
		}

		cfg, opts, err := deps.Config.SessionFor(game, lastLevel)
		if err != nil {
			return sessionInitMsg{Err: err}
		}
		opts = append(opts, sess.WithLogger(deps.Logger))
		if deps.Clock != nil {
			opts = append(opts, sess.WithClock(deps.Clock))
		}
		if deps.Persist != nil {
			opts = append(opts, sess.WithPersistence(deps.Persist))
		}

		gen, err := drill.New(game, deps.Rand)
		if err != nil {
			return sessionInitMsg{Err: err}
		}
		m, err := sess.New(cfg, opts...)
		if err != nil {
			return sessionInitMsg{Err: err}
		}
		return sessionInitMsg{Machine: m, Generator: gen}
	}
}

func (s *SessionScreen) handleInit(msg sessionInitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.machine = msg.Machine
	s.gen = msg.Generator
	if err := s.machine.Start(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.deps.Logger.Debug("session started",
		"run", s.machine.RunID(),
		"game", s.game,
		"level", s.machine.Level())

	if err := s.nextItem(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, s.tickCmd()
}

func (s *SessionScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.machine == nil || s.ending {
		return s, nil
	}
	s.machine.Tick()
	if s.machine.Phase() == sess.PhaseComplete {
		return s.end()
	}

	if s.stage == stageExpose && s.item.Expose > 0 &&
		s.machine.Phase() == sess.PhasePlaying &&
		!s.clk.Now().Before(s.shownAt.Add(s.item.Expose)) {
		s.stage = stageAnswer
		s.input.Reset()
	}
	return s, s.tickCmd()
}

func (s *SessionScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if s.machine == nil || s.ending || s.stage != stageFeedback {
		return s, nil
	}
	if err := s.nextItem(); err != nil {
		s.errMsg = err.Error()
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.machine == nil || s.ending {
		return s, nil
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			if err := s.machine.Stop(); err != nil && !errors.Is(err, sess.ErrInvalidState) {
				s.errMsg = err.Error()
				return s, nil
			}
			return s.end()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.machine.Phase() {
	case sess.PhaseComplete:
		return s.end()

	case sess.PhasePaused:
		switch key {
		case "r", "R", "p", "P", "space":
			if err := s.machine.Resume(); err == nil && s.stage != stageFeedback {
				s.reshow()
			}
		case "esc":
			s.quitConfirm = true
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "p", "P":
		_ = s.machine.Pause(sess.PauseManual)
		return s, nil
	}

	if s.stage == stageFeedback {
		return s, nil
	}

	if len(s.item.Keys) > 0 {
		if slices.Contains(s.item.Keys, key) {
			return s.submit(key)
		}
		return s, nil
	}

	if s.stage != stageAnswer {
		return s, nil
	}
	if key == "enter" {
		if s.input.Value() == "" {
			return s, nil
		}
		return s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit scores an answer and feeds the outcome to the machine.
func (s *SessionScreen) submit(answer string) (screen.Screen, tea.Cmd) {
	correct := s.item.Check(answer)
	rt := s.clk.Now().Sub(s.shownAt)

	adj, err := s.machine.RecordTrial(correct, difficulty.WithResponseTime(int(rt.Milliseconds())))
	if err != nil {
		if errors.Is(err, sess.ErrInvalidState) {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}
	s.machine.AddScore(s.gen.Score(s.params, correct, rt))

	s.trials++
	if correct {
		s.correct++
	}
	s.lastCorrect = correct
	s.stage = stageFeedback
	if len(s.item.Keys) == 0 {
		s.input.Mark(correct)
	}
	if adj.Changed {
		s.deps.Logger.Debug("level changed", "game", s.game, "from", adj.OldLevel, "to", adj.NewLevel)
	}

	return s, tea.Tick(feedbackDelay, func(time.Time) tea.Msg { return feedbackDoneMsg{} })
}

// nextItem draws a fresh item at the current level.
func (s *SessionScreen) nextItem() error {
	s.params = s.machine.Params()
	item, err := s.gen.Next(s.params)
	if err != nil {
		return err
	}
	s.item = item
	s.reshow()
	return nil
}

// reshow restarts the current item's exposure and response timer.
func (s *SessionScreen) reshow() {
	s.shownAt = s.clk.Now()
	s.stage = stageExpose
	if s.item.Expose == 0 {
		s.stage = stageAnswer
	}
	s.input.Reset()
}

// end waits for persistence and hands the results to the summary.
func (s *SessionScreen) end() (screen.Screen, tea.Cmd) {
	if s.ending {
		return s, nil
	}
	s.ending = true
	m := s.machine
	return s, func() tea.Msg {
		m.Wait()
		r, _ := m.Results()
		return sessionEndMsg{Results: r}
	}
}

func (s *SessionScreen) acceptsText() bool {
	return s.machine != nil && !s.ending && !s.quitConfirm &&
		len(s.item.Keys) == 0 && s.stage == stageAnswer &&
		s.machine.Phase() == sess.PhasePlaying
}

func (s *SessionScreen) tickCmd() tea.Cmd {
	d := s.deps.Config.TickInterval
	if d <= 0 {
		d = sess.DefaultTickInterval
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func keyLabel(k string) string {
	switch k {
	case "y":
		return "Yes"
	case "n":
		return "No"
	case "s":
		return "Same"
	case "d":
		return "Different"
	}
	return k
}
