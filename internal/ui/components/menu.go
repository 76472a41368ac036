package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Detail   string // dim text after the label
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with wrap-around navigation. The first nine
// enabled items can also be chosen with the digit keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index from i in direction dir, wrapping
// once around the list, or -1 when nothing is enabled.
func (m Menu) step(i, dir int) int {
	n := len(m.Items)
	for k := 1; k <= n; k++ {
		j := ((i+dir*k)%n + n) % n
		if !m.Items[j].Disabled {
			return j
		}
	}
	return -1
}

// shortcuts maps digit keys to enabled item indexes.
func (m Menu) shortcuts() map[string]int {
	out := make(map[string]int)
	n := 1
	for i, item := range m.Items {
		if item.Disabled || n > 9 {
			continue
		}
		out[fmt.Sprint(n)] = i
		n++
	}
	return out
}

// Update handles navigation. Enter or a digit shortcut runs the item.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if j := m.step(m.Selected, -1); j >= 0 {
			m.Selected = j
		}
	case "down", "j", "tab":
		if j := m.step(m.Selected, 1); j >= 0 {
			m.Selected = j
		}
	case "home", "g":
		if j := m.step(-1, 1); j >= 0 {
			m.Selected = j
		}
	case "end", "G":
		if j := m.step(0, -1); j >= 0 {
			m.Selected = j
		}
	case "enter":
		return m, m.run()
	default:
		if i, ok := m.shortcuts()[key]; ok {
			m.Selected = i
			return m, m.run()
		}
	}
	return m, nil
}

func (m Menu) run() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	item := m.Items[m.Selected]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// View renders the menu with shortcut digits and aligned details.
func (m Menu) View() string {
	labelWidth := 0
	for _, item := range m.Items {
		labelWidth = max(labelWidth, lipgloss.Width(item.Label))
	}
	keys := make(map[int]string)
	for k, i := range m.shortcuts() {
		keys[i] = k
	}

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		cursor := "  "
		if i == m.Selected {
			cursor = "▸ "
		}
		key := " "
		if k, ok := keys[i]; ok {
			key = k
		}
		label := fmt.Sprintf("%s%s  %-*s", cursor, key, labelWidth, item.Label)

		var line string
		switch {
		case i == m.Selected:
			line = theme.Selected.Render(label)
		case item.Disabled:
			line = dim.Render(label)
		default:
			line = theme.Unselected.Render(label)
		}
		if item.Detail != "" {
			line += "  " + dim.Render(item.Detail)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}
