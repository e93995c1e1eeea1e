package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBar_FillsRequestedWidth(t *testing.T) {
	tests := []struct {
		name string
		bar  ProgressBar
	}{
		{"labeled with percent", NewProgressBar("Readiness", 40, true, 40)},
		{"bar only", NewProgressBar("", 40, false, 30)},
		{"empty", NewProgressBar("", 0, true, 30)},
		{"full", NewProgressBar("", 100, true, 30)},
	}
	for _, tt := range tests {
		if got := lipgloss.Width(tt.bar.View()); got != tt.bar.Width {
			t.Errorf("%s: width = %d, want %d", tt.name, got, tt.bar.Width)
		}
	}
}

func TestProgressBar_PercentReadout(t *testing.T) {
	out := NewProgressBar("Readiness", 42, true, 40).View()
	if !strings.Contains(out, "42%") {
		t.Errorf("View() missing percent readout: %q", out)
	}

	out = NewProgressBar("Readiness", 42, false, 40).View()
	if strings.Contains(out, "42%") {
		t.Error("View() shows percent with ShowPercent off")
	}
}

func TestProgressBar_ClampsPercent(t *testing.T) {
	over := NewProgressBar("", 150, true, 30)
	if out := over.View(); !strings.Contains(out, "100%") {
		t.Errorf("over-range readout = %q, want clamped to 100%%", out)
	}
	if got := lipgloss.Width(over.View()); got != 30 {
		t.Errorf("over-range width = %d, want 30", got)
	}

	under := NewProgressBar("", -5, true, 30)
	if out := under.View(); !strings.Contains(out, "0%") {
		t.Errorf("under-range readout = %q, want clamped to 0%%", out)
	}
}

func TestProgressBar_MinimumBarWidth(t *testing.T) {
	// A width smaller than label + readout still renders a 4-cell bar.
	bar := NewProgressBar("Readiness", 50, true, 10)
	want := lipgloss.Width("Readiness") + 2 + 4 + 6
	if got := lipgloss.Width(bar.View()); got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
}
