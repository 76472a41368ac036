// Package ready shows a short countdown with the game's instructions
// before a session starts.
package ready

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	"github.com/abhisek/spiread/internal/screen"
	"github.com/abhisek/spiread/internal/ui/layout"
	"github.com/abhisek/spiread/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	countdown    = 3 * time.Second
)

// fixation frames pulse the focus point while counting down.
var fixationFrames = []string{"·", "•", "●", "•"}

type tickMsg time.Time

// ReadyScreen counts down and then hands over to the screen from next.
type ReadyScreen struct {
	profile      games.Profile
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*ReadyScreen)(nil)
var _ screen.KeyHintProvider = (*ReadyScreen)(nil)

// New creates a ReadyScreen for profile that replaces itself with next().
func New(profile games.Profile, next func() screen.Screen) *ReadyScreen {
	return &ReadyScreen{profile: profile, next: next}
}

func (w *ReadyScreen) Title() string {
	return w.profile.Name
}

func (w *ReadyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start now"},
		{Key: "Esc", Description: "Back"},
	}
}

func (w *ReadyScreen) Init() tea.Cmd {
	return tick()
}

func (w *ReadyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= countdown {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			w.transitioned = true
			return w, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter", "space":
			return w, w.transition()
		}
	}
	return w, nil
}

func (w *ReadyScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// remaining returns the whole seconds left, rounded up.
func (w *ReadyScreen) remaining() int {
	left := countdown - w.elapsed
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

func (w *ReadyScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(w.profile.Name))
	sections = append(sections, "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(min(width-8, 56)).
		Align(lipgloss.Center).
		Render(w.profile.Description))
	sections = append(sections, "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s session", layout.FormatClock(w.profile.DefaultDuration))))
	sections = append(sections, "", "")

	frame := fixationFrames[w.tickCount%len(fixationFrames)]
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame))
	sections = append(sections, "")
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("%d", w.remaining())))

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
