package session

import (
	"github.com/abhisek/spiread/internal/screen"
	"github.com/abhisek/spiread/internal/screens/summary"
	sess "github.com/abhisek/spiread/internal/session"
)

// newSummaryScreenAdapter creates a summary screen from session results.
func newSummaryScreenAdapter(r sess.Results) screen.Screen {
	return summary.New(r)
}
