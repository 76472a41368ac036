package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	"github.com/abhisek/spiread/internal/screen"
	"github.com/abhisek/spiread/internal/screens/history"
	"github.com/abhisek/spiread/internal/screens/ready"
	sessionscreen "github.com/abhisek/spiread/internal/screens/session"
	"github.com/abhisek/spiread/internal/store"
	"github.com/abhisek/spiread/internal/ui/components"
	"github.com/abhisek/spiread/internal/ui/theme"
)

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	Session sessionscreen.Deps
	Runs    store.RunRepo
}

type progressLoadedMsg struct {
	Progress []store.Progress
	Err      error
}

type totals struct {
	runs, valid, trials int
}

// HomeScreen lists the games with their saved progress.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	progress map[games.ID]store.Progress
	totals   totals
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.rebuildMenu()
	return h
}

// Init reloads progress; it runs again whenever the screen is uncovered.
func (h *HomeScreen) Init() tea.Cmd {
	repo := h.deps.Session.Progress
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		all, err := repo.All(context.Background())
		return progressLoadedMsg{Progress: all, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(progressLoadedMsg); ok {
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.progress = make(map[games.ID]store.Progress, len(msg.Progress))
		h.totals = totals{}
		for _, p := range msg.Progress {
			h.progress[p.Game] = p
			h.totals.runs += p.TotalRuns
			h.totals.valid += p.ValidRuns
			h.totals.trials += p.TotalTrials
		}
		h.rebuildMenu()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 26 || width < 80
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.totals, cw, compact))
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Render(h.menu.View()))
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Align(lipgloss.Center).
			Render(h.errMsg))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return renderCabinetFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// rebuildMenu regenerates items so details reflect the latest progress.
// The selection survives a rebuild.
func (h *HomeScreen) rebuildMenu() {
	var items []components.MenuItem
	for _, p := range games.All() {
		profile := p
		item := components.MenuItem{
			Label:  p.Name,
			Detail: h.detail(p),
		}
		if p.Playable {
			item.Action = func() tea.Cmd {
				return h.Play(profile)
			}
		} else {
			item.Disabled = true
		}
		items = append(items, item)
	}

	items = append(items, components.MenuItem{Label: "History", Action: func() tea.Cmd {
		if h.deps.Runs == nil {
			return nil
		}
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(h.deps.Runs)}
		}
	}})
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
		return tea.Quit
	}})

	selected := -1
	if len(h.menu.Items) == len(items) {
		selected = h.menu.Selected
	}
	h.menu = components.NewMenu(items)
	if selected >= 0 {
		h.menu.Selected = selected
	}
}

// Play opens the countdown for p, followed by its session.
func (h *HomeScreen) Play(p games.Profile) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: ready.New(p, func() screen.Screen {
			return sessionscreen.New(p.ID, h.deps.Session)
		})}
	}
}

func (h *HomeScreen) detail(p games.Profile) string {
	if !p.Playable {
		return "engine only"
	}
	prog, ok := h.progress[p.ID]
	if !ok || prog.TotalRuns == 0 {
		return "new"
	}
	out := fmt.Sprintf("Lv %d", prog.LastLevel)
	if prog.BestScore != nil {
		out += fmt.Sprintf("  best %d", *prog.BestScore)
	}
	return out
}
