package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. High contrast so short exposures stay legible.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#EAB308") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Drill
var (
	Stimulus = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary)

	Masked = lipgloss.NewStyle().
		Foreground(TextDim).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Paused = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	// Emphasis variants for distractor rendering.
	Distractors = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(Error),
		lipgloss.NewStyle().Foreground(Secondary),
		lipgloss.NewStyle().Foreground(Success),
		lipgloss.NewStyle().Foreground(Primary).Italic(true),
	}
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
