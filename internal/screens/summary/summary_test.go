package summary

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spiread/internal/difficulty"
	"github.com/abhisek/spiread/internal/games"
	"github.com/abhisek/spiread/internal/router"
	"github.com/abhisek/spiread/internal/session"
)

func testResults() session.Results {
	score := 84
	start := time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)
	return session.Results{
		RunID:      "run-1",
		GameID:     games.MemoryDigits,
		StartedAt:  start,
		EndedAt:    start.Add(time.Minute),
		DurationMs: 60_000,
		StartLevel: 3,
		FinalLevel: 5,
		AdaptiveStats: difficulty.Stats{
			Level:           5,
			TotalTrials:     14,
			TotalSuccesses:  11,
			OverallAccuracy: float64(11) / float64(14),
			AvgResponseMs:   1830,
		},
		Score:      &score,
		EndReason:  session.EndTimeout,
		Pauses:     1,
		AutoPauses: 1,
		Valid:      true,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResults())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResults())
	view := s.View(80, 24)
	for _, want := range []string{"Time's up!", "Memory Digits", "1:00", "Trials: 14", "79%", "3 → 5", "84", "1830 ms"} {
		if !containsPlain(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if containsPlain(view, "Too short") {
		t.Error("valid run should not carry the short-run note")
	}
}

func TestSummaryScreen_InvalidRun(t *testing.T) {
	r := testResults()
	r.Valid = false
	r.Score = nil
	r.EndReason = session.EndManualStop
	r.FinalLevel = r.StartLevel

	view := New(r).View(80, 24)
	for _, want := range []string{"Session ended", "Too short"} {
		if !containsPlain(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testResults())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testResults())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResults())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}

func TestLevelText(t *testing.T) {
	tests := []struct {
		start, final int
		want         string
	}{
		{2, 2, "2"},
		{2, 4, "2 → 4  (+2)"},
		{4, 3, "4 → 3  (-1)"},
	}
	for _, tt := range tests {
		got := levelText(session.Results{StartLevel: tt.start, FinalLevel: tt.final})
		if got != tt.want {
			t.Errorf("levelText(%d, %d) = %q, want %q", tt.start, tt.final, got, tt.want)
		}
	}
}
