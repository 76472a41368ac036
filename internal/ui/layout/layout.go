package layout

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/ui/theme"
)

// Drills need room for the stimulus box, the prompt and the answer line.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Drills need at least %d x %d\n\nthis terminal is %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader renders the brand, the screen title centred, and status on
// the right. Status may be empty.
func RenderHeader(title, status string, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)
	side := inner / 4
	mid := max(inner-2*side, 0)

	brand := lipgloss.NewStyle().
		Width(side).
		MaxWidth(side).
		Foreground(theme.Primary).
		Bold(true).
		Render(" Spiread")
	center := lipgloss.NewStyle().
		Width(mid).
		MaxWidth(mid).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(title)

	// The status carries the level and clock, so it may spill into the
	// centre column rather than be cut.
	st := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	if w := lipgloss.Width(st); w > side {
		mid = max(mid-(w-side), 0)
		center = lipgloss.NewStyle().Width(mid).MaxWidth(mid).
			Align(lipgloss.Center).Foreground(theme.Text).Render(title)
		side = w
	}
	right := lipgloss.NewStyle().Width(side).Align(lipgloss.Right).Render(st)

	return bar.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, brand, center, right))
}

// FormatClock renders a duration as m:ss, rounding partial seconds up so a
// countdown reads 0:00 only when time is up.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Centered renders s centered in width with the given foreground.
func Centered(s string, width int, fg color.Color) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(s)
}

// RenderFooter renders as many key hints as fit on one line. The last hint
// is kept when others have to go.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize()-2, 0)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}
	return bar.Width(width).Render("  " + fitHints(parts, inner))
}

const hintSep = "   "

func fitHints(parts []string, width int) string {
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	used := lipgloss.Width(last)

	var kept []string
	for _, p := range parts[:len(parts)-1] {
		w := lipgloss.Width(p) + len(hintSep)
		if used+w > width {
			break
		}
		kept = append(kept, p)
		used += w
	}
	return strings.Join(append(kept, last), hintSep)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
