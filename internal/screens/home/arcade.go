package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/ui/theme"
)

const titleFull = ` ╔═╗╔═╗╦╦═╗╔═╗╔═╗╔╦╗
 ╚═╗╠═╝║╠╦╝║╣ ╠═╣ ║║
 ╚═╝╩  ╩╩╚═╚═╝╩ ╩═╩╝`

const titleCompact = "S · P · I · R · E · A · D"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders lifetime totals in a bordered box matching content width.
func renderStatsBar(t totals, cw int, compact bool) string {
	runStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	validStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	trialStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			runStyle.Render(fmt.Sprintf("▶%d", t.runs)),
			validStyle.Render(fmt.Sprintf("✓%d", t.valid)),
			trialStyle.Render(fmt.Sprintf("◆%d", t.trials)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			runStyle.Render(fmt.Sprintf("▶ %d RUNS", t.runs)),
			validStyle.Render(fmt.Sprintf("✓ %d COUNTED", t.valid)),
			trialStyle.Render(fmt.Sprintf("◆ %d TRIALS", t.trials)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderCabinetFrame wraps content in a double-border frame,
// centering vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
