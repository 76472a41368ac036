package components

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/ui/theme"
)

// TimeBar shows how much of a session has been played. It turns to the
// warning colour once Fraction reaches WarnAt.
type TimeBar struct {
	Fraction float64
	Width    int

	// Suffix is drawn after the bar, usually the remaining time.
	Suffix string

	// WarnAt is the fraction at which the bar changes colour. Zero never warns.
	WarnAt float64

	// Fill overrides the normal fill colour. Nil uses theme.Secondary.
	Fill color.Color
}

// NewTimeBar creates a bar of the given total width.
func NewTimeBar(fraction float64, width int, suffix string) TimeBar {
	return TimeBar{
		Fraction: fraction,
		Width:    width,
		Suffix:   suffix,
		WarnAt:   0.85,
	}
}

// Warning reports whether the bar is drawn in the warning colour.
func (b TimeBar) Warning() bool {
	return b.WarnAt > 0 && b.Fraction >= b.WarnAt
}

// View renders the bar.
func (b TimeBar) View() string {
	suffix := ""
	if b.Suffix != "" {
		suffix = "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(b.Suffix)
	}

	cells := max(b.Width-lipgloss.Width(suffix), 4)
	frac := min(max(b.Fraction, 0), 1)
	filled := int(float64(cells)*frac + 0.5)

	fill := b.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	if b.Warning() {
		fill = theme.Warning
	}

	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cells-filled)) +
		suffix
}
