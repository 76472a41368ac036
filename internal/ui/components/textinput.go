package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spiread/internal/ui/theme"
)

// Digits accepts only decimal digits.
func Digits(r rune) bool { return r >= '0' && r <= '9' }

// AnswerInput wraps bubbles/textinput for free-text answers. Typed runes
// rejected by Accept never reach the model. Once marked, it ignores input
// until Reset.
type AnswerInput struct {
	Model  textinput.Model
	Accept func(rune) bool

	marked  bool
	correct bool
}

// NewAnswerInput creates a focused input. accept may be nil to allow any
// rune; limit caps the answer length when positive.
func NewAnswerInput(placeholder string, accept func(rune) bool, limit int) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return AnswerInput{Model: ti, Accept: accept}
}

// Init returns the cursor blink command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards msg to the model unless the input is marked or msg types
// a rune Accept rejects.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.marked {
		return a, nil
	}
	if k, ok := msg.(tea.KeyPressMsg); ok && k.Text != "" && a.Accept != nil {
		for _, r := range k.Text {
			if !a.Accept(r) {
				return a, nil
			}
		}
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input followed by a mark once one is set.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if !a.marked {
		return view
	}
	if a.correct {
		return view + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}
	return view + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
}

// Value returns the current input value.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// Mark freezes the input and shows whether the answer was correct.
func (a *AnswerInput) Mark(correct bool) {
	a.marked = true
	a.correct = correct
}

// Marked reports whether the input is frozen.
func (a AnswerInput) Marked() bool {
	return a.marked
}

// Reset clears the value and the mark for the next answer.
func (a *AnswerInput) Reset() {
	a.Model.Reset()
	a.marked = false
	a.correct = false
}
