package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	"github.com/abhisek/spiread/internal/screen"
	"github.com/abhisek/spiread/internal/session"
	"github.com/abhisek/spiread/internal/ui/layout"
	"github.com/abhisek/spiread/internal/ui/theme"
)

// SummaryScreen displays the results of a finished session.
type SummaryScreen struct {
	results session.Results
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(r session.Results) *SummaryScreen {
	return &SummaryScreen{results: r}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.results
	name := string(r.GameID)
	if p, err := games.Lookup(r.GameID); err == nil {
		name = p.Name
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(headline(r)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s  ·  %s", name, layout.FormatClock(r.Duration()))))
	b.WriteString("\n\n")

	stats := r.AdaptiveStats
	statsLine := fmt.Sprintf("Trials: %d        Correct: %d        Accuracy: %.0f%%",
		stats.TotalTrials, stats.TotalSuccesses, stats.OverallAccuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
		color color.Color
	}{
		{"Level", levelText(r), levelColor(r.LevelDelta())},
		{"Score", scoreText(r), theme.Accent},
	}
	if stats.AvgResponseMs > 0 {
		rows = append(rows, struct {
			label string
			value string
			color color.Color
		}{"Avg response", fmt.Sprintf("%d ms", stats.AvgResponseMs), theme.Text})
	}
	if r.Pauses > 0 {
		rows = append(rows, struct {
			label string
			value string
			color color.Color
		}{"Pauses", fmt.Sprintf("%d (%d auto)", r.Pauses, r.AutoPauses), theme.TextDim})
	}
	for _, row := range rows {
		line := fmt.Sprintf("%-14s %s", row.label, lipgloss.NewStyle().Foreground(row.color).Render(row.value))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Width(36).Render(line)))
		b.WriteString("\n")
	}

	if !r.Valid {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render("Too short to count toward your records."))
	}

	return b.String()
}

func headline(r session.Results) string {
	switch r.EndReason {
	case session.EndTimeout:
		return "Time's up!"
	case session.EndManualStop:
		return "Session ended"
	default:
		return "Session closed"
	}
}

func levelText(r session.Results) string {
	switch d := r.LevelDelta(); {
	case d > 0:
		return fmt.Sprintf("%d → %d  (+%d)", r.StartLevel, r.FinalLevel, d)
	case d < 0:
		return fmt.Sprintf("%d → %d  (%d)", r.StartLevel, r.FinalLevel, d)
	default:
		return fmt.Sprintf("%d", r.FinalLevel)
	}
}

func scoreText(r session.Results) string {
	if r.Score == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *r.Score)
}

// levelColor returns the theme color for a level change.
func levelColor(delta int) color.Color {
	switch {
	case delta > 0:
		return theme.Success
	case delta < 0:
		return theme.Error
	default:
		return theme.Text
	}
}
