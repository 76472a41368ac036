package session

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/drill"
	sess "github.com/abhisek/spiread/internal/session"
	"github.com/abhisek/spiread/internal/ui/components"
	"github.com/abhisek/spiread/internal/ui/layout"
	"github.com/abhisek/spiread/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.machine == nil {
		return renderLoading(width)
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}
	if s.machine.Phase() == sess.PhasePaused {
		return s.renderPaused(width)
	}
	return s.renderItemView(width)
}

// renderItemView renders the stimulus, prompt and answer area.
func (s *SessionScreen) renderItemView(width int) string {
	snap := s.machine.Snapshot()

	var b strings.Builder

	// Progress line.
	if snap.Duration > 0 {
		bar := components.NewTimeBar(snap.Progress(), min(width-8, 56), layout.FormatClock(snap.Remaining))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d/%d correct", s.correct, s.trials)))
	b.WriteString("\n\n\n")

	// Stimulus.
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderStimulus()))
	b.WriteString("\n\n")

	if s.item.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(s.item.Prompt))
		b.WriteString("\n\n")
	}

	switch {
	case s.stage == stageFeedback:
		b.WriteString(s.renderFeedback(width))
	case len(s.item.Keys) == 0 && s.stage == stageAnswer:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View()))
	case len(s.item.Keys) == 0:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Memorize..."))
	}

	return b.String()
}

// renderStimulus shows the item while it is exposed and its mask after.
func (s *SessionScreen) renderStimulus() string {
	visible := s.item.Expose == 0 || s.stage == stageExpose
	if !visible {
		return theme.Masked.Render(s.item.Mask)
	}
	if s.item.Styled {
		return theme.Stimulus.Render(styled(s.item, s.shownAt.UnixNano()))
	}
	return theme.Stimulus.Render(s.item.Show)
}

// styled renders each character with a distractor style. The seed keeps
// the styling stable across redraws of the same item.
func styled(it drill.Item, seed int64) string {
	r := rand.New(rand.NewPCG(uint64(seed), uint64(len(it.Show))))
	var b strings.Builder
	for _, ch := range it.Show {
		st := theme.Distractors[r.IntN(len(theme.Distractors))]
		b.WriteString(st.Bold(true).Render(string(ch)))
	}
	return b.String()
}

func (s *SessionScreen) renderFeedback(width int) string {
	st := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Bold(true)
	if s.lastCorrect {
		return st.Inherit(theme.Correct).Render("✓ Correct")
	}
	msg := "✗ Wrong"
	if s.item.Answer != "" && len(s.item.Keys) == 0 {
		msg += "  (" + s.item.Answer + ")"
	}
	return st.Inherit(theme.Incorrect).Render(msg)
}

func (s *SessionScreen) renderPaused(width int) string {
	snap := s.machine.Snapshot()
	reason := "Paused"
	if snap.PauseReason == sess.PauseAuto {
		reason = "Paused while you were away"
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Inherit(theme.Paused).
		Render(reason))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press R to resume"))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Short runs are saved but do not count toward your best."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return layout.Centered("\n\n\n  Preparing your session...", width, theme.TextDim)
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
