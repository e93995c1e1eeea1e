package review

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/router"
	"github.com/ates/study/internal/screen"
	"github.com/ates/study/internal/screens/summary"
	"github.com/ates/study/internal/session"
	"github.com/ates/study/internal/spacedrep"
	"github.com/ates/study/internal/ui/components"
	"github.com/ates/study/internal/ui/layout"
	"github.com/ates/study/internal/ui/theme"
)

// ReviewScreen plays the due flashcard queue: show the front, reveal
// the back, rate recall with again/hard/good/easy.
type ReviewScreen struct {
	catalog *content.Catalog
	svc     *progress.Service

	runner *session.ReviewRunner

	revealed bool
	rating   components.RatingRow
	shownAt  time.Time
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New snapshots the due queue and creates the screen.
func New(catalog *content.Catalog, svc *progress.Service) *ReviewScreen {
	scheduler := spacedrep.NewScheduler(svc)
	return &ReviewScreen{
		catalog: catalog,
		svc:     svc,
		runner:  session.NewReviewRunner(catalog, svc, scheduler),
		rating:  components.NewRatingRow(),
		shownAt: time.Now(),
	}
}

func (r *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (r *ReviewScreen) Title() string {
	return "Review"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	if r.runner.Current() == nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	if !r.revealed {
		return []layout.KeyHint{
			{Key: "Space", Description: "Show answer"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Rate recall"},
		{Key: "←→", Description: "Select"},
		{Key: "Enter", Description: "Confirm"},
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	if r.runner.Current() == nil {
		// Empty queue before any rating. Any key goes back.
		if r.runner.Rated() == 0 {
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return r.finish()
	}

	if !r.revealed {
		switch kmsg.String() {
		case " ", "space", "enter":
			r.revealed = true
			r.rating = components.NewRatingRow()
		}
		return r, nil
	}

	r.rating, _ = r.rating.Update(msg)
	if r.rating.Submitted {
		r.runner.Rate(r.rating.Chosen, time.Since(r.shownAt))
		r.revealed = false
		r.shownAt = time.Now()
		if r.runner.Done() {
			return r.finish()
		}
	}
	return r, nil
}

// finish records the run and swaps in the summary screen.
func (r *ReviewScreen) finish() (screen.Screen, tea.Cmd) {
	st, sum := r.runner.Finish()
	return r, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(r.catalog, st, sum),
		}
	}
}

func (r *ReviewScreen) View(width, height int) string {
	card := r.runner.Current()
	if card == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("No cards due. Press any key to go back."))
	}

	counter := theme.Subtitle.Render(
		fmt.Sprintf("%s · %d left", r.catalog.TopicLabel(card.TopicID), r.runner.Remaining()))

	front := theme.Body.Bold(true).Render(card.Front)

	body := front
	if r.revealed {
		body += "\n\n" + theme.Body.Render(card.Back) + "\n\n" + r.rating.View()
	} else {
		body += "\n\n" + theme.Hint.Render("Press space to reveal")
	}

	content := counter + "\n\n" + theme.Card.Width(min(width-4, 76)).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
