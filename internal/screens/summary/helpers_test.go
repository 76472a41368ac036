package summary

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// containsPlain reports whether s contains sub once styling is removed.
func containsPlain(s, sub string) bool {
	return strings.Contains(ansi.Strip(s), sub)
}
