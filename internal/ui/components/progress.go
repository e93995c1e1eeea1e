package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/ui/theme"
)

// ProgressBar renders a labeled horizontal bar for a 0..100 value, such as
// readiness or per-topic accuracy.
type ProgressBar struct {
	Label       string
	Percent     int // 0..100, clamped on render
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar. Label and percent readout share Width with the bar
// itself; the bar never shrinks below 4 cells.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result = theme.Body.Render(p.Label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := p.Width - lipgloss.Width(result) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	pct := p.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := barWidth * pct / 100
	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", pct))
	}

	return result
}
