package layout

import (
	"strings"
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{time.Millisecond, "0:01"},
		{59*time.Second + 100*time.Millisecond, "1:00"},
		{60 * time.Second, "1:00"},
		{90 * time.Second, "1:30"},
		{10*time.Minute + 5*time.Second, "10:05"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeaderContainsParts(t *testing.T) {
	h := RenderHeader("Par Impar", "L3  0:42", 80)
	for _, want := range []string{"Spiread", "Par Impar", "L3  0:42"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestFitHintsKeepsLast(t *testing.T) {
	parts := []string{"y Yes", "n No", "P Pause", "Esc Quit", "Ctrl+C Quit"}

	all := fitHints(parts, 200)
	if all != strings.Join(parts, hintSep) {
		t.Errorf("wide footer dropped hints: %q", all)
	}

	narrow := fitHints(parts, 20)
	if !strings.HasSuffix(narrow, "Ctrl+C Quit") {
		t.Errorf("narrow footer lost the last hint: %q", narrow)
	}
	if strings.Contains(narrow, "Esc Quit") {
		t.Errorf("narrow footer should drop trailing hints first: %q", narrow)
	}
	if !strings.HasPrefix(narrow, "y Yes") {
		t.Errorf("narrow footer should keep leading hints: %q", narrow)
	}

	if fitHints(nil, 10) != "" {
		t.Error("no hints renders empty")
	}
}
