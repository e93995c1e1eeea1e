package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/spacedrep"
	"github.com/ates/study/internal/ui/theme"
)

// RatingRow is a horizontal four-way recall rating selector.
type RatingRow struct {
	Selected  spacedrep.Rating
	Submitted bool
	Chosen    spacedrep.Rating
}

var ratingOrder = []spacedrep.Rating{
	spacedrep.Again,
	spacedrep.Hard,
	spacedrep.Good,
	spacedrep.Easy,
}

var ratingStyles = map[spacedrep.Rating]lipgloss.Style{
	spacedrep.Again: theme.RatingAgain,
	spacedrep.Hard:  theme.RatingHard,
	spacedrep.Good:  theme.RatingGood,
	spacedrep.Easy:  theme.RatingEasy,
}

// NewRatingRow creates a rating row with "good" preselected.
func NewRatingRow() RatingRow {
	return RatingRow{Selected: spacedrep.Good}
}

// Init returns nil.
func (r RatingRow) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Digits 1-4 jump to a rating,
// enter submits.
func (r RatingRow) Update(msg tea.Msg) (RatingRow, tea.Cmd) {
	if r.Submitted {
		return r, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		if r.Selected > spacedrep.Again {
			r.Selected--
		}
	case "right", "l":
		if r.Selected < spacedrep.Easy {
			r.Selected++
		}
	case "enter":
		r.Submitted = true
		r.Chosen = r.Selected
	case "1", "2", "3", "4":
		r.Submitted = true
		r.Chosen = spacedrep.Rating(key[0] - '0')
	}

	return r, nil
}

// View renders the rating row.
func (r RatingRow) View() string {
	var parts []string
	for i, rating := range ratingOrder {
		label := ratingStyles[rating].Render(rating.String())
		num := theme.Hint.Render("(" + string(rune('1'+i)) + ")")
		cell := num + " " + label
		if rating == r.Selected && !r.Submitted {
			cell = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Primary).
				Padding(0, 1).
				Render(cell)
		} else {
			cell = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(cell)
		}
		parts = append(parts, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
