package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	"github.com/abhisek/spiread/internal/screen"
	"github.com/abhisek/spiread/internal/session"
	"github.com/abhisek/spiread/internal/store"
	"github.com/abhisek/spiread/internal/ui/layout"
	"github.com/abhisek/spiread/internal/ui/theme"
)

// pageSize is how many runs the screen loads.
const pageSize = 50

type historyLoadedMsg struct {
	Game games.ID
	Runs []session.Results
	Err  error
}

// HistoryScreen displays past runs, optionally filtered by game.
type HistoryScreen struct {
	runRepo  store.RunRepo
	filter   int // 0 is all games, otherwise index+1 into games.All()
	runs     []session.Results
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.StatusProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(runRepo store.RunRepo) *HistoryScreen {
	return &HistoryScreen{
		runRepo:  runRepo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	game := s.game()
	return func() tea.Msg {
		runs, err := s.runRepo.List(context.Background(), store.RunQuery{Game: game, Limit: pageSize})
		return historyLoadedMsg{Game: game, Runs: runs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Status() string {
	if s.filter == 0 {
		return "all games"
	}
	return games.All()[s.filter-1].Name
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Game != s.game() {
			return s, nil
		}
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.runs = msg.Runs
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "tab":
			s.filter = (s.filter + 1) % (len(games.All()) + 1)
			s.selected = 0
			s.expanded = make(map[int]bool)
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No runs yet. Pick a game and play!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		score := "-"
		if run.Score != nil {
			score = fmt.Sprintf("%d", *run.Score)
		}
		line := fmt.Sprintf("%s%s  %-14s %s  Lv %2d  %5s pts",
			prefix,
			run.StartedAt.Local().Format("Jan 02 15:04"),
			gameName(run.GameID),
			layout.FormatClock(run.Duration()),
			run.FinalLevel,
			score)

		style := lipgloss.NewStyle().Foreground(runColor(run))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render(details(run))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) game() games.ID {
	if s.filter == 0 {
		return ""
	}
	return games.All()[s.filter-1].ID
}

func details(r session.Results) string {
	st := r.AdaptiveStats
	out := fmt.Sprintf("    %d/%d correct  level %d → %d  %s",
		st.TotalSuccesses, st.TotalTrials, r.StartLevel, r.FinalLevel, r.EndReason)
	if r.Pauses > 0 {
		out += fmt.Sprintf("  %d pauses", r.Pauses)
	}
	if !r.Valid {
		out += "  (not counted)"
	}
	return out
}

func gameName(id games.ID) string {
	if p, err := games.Lookup(id); err == nil {
		return p.Name
	}
	return string(id)
}

func runColor(r session.Results) color.Color {
	switch {
	case !r.Valid:
		return theme.TextDim
	case r.LevelDelta() > 0:
		return theme.Success
	default:
		return theme.Text
	}
}
