package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/router"
	"github.com/ates/study/internal/screen"
	"github.com/ates/study/internal/ui/layout"
	"github.com/ates/study/internal/ui/theme"
)

// SummaryScreen displays the results of a finished session.
type SummaryScreen struct {
	catalog *content.Catalog
	state   progress.State
	summary progress.SessionSummary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(catalog *content.Catalog, st progress.State, sum progress.SessionSummary) *SummaryScreen {
	return &SummaryScreen{
		catalog: catalog,
		state:   st,
		summary: sum,
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Session complete!"))
	b.WriteString("\n\n")

	label := "questions"
	if sum.Mode == progress.ModeReview {
		label = "cards"
	}
	statsLine := fmt.Sprintf("%d %s   %d correct   %.0f%% accuracy",
		sum.TotalQuestions, label, sum.CorrectCount, sum.Accuracy)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Body.Render(statsLine)))
	b.WriteString("\n")

	if sum.AvgTimeMs > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Subtitle.Render(fmt.Sprintf("avg %.1fs per item", float64(sum.AvgTimeMs)/1000))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if sum.ImprovedTopicID != nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Correct.Render("▲ improved: "+s.catalog.TopicLabel(*sum.ImprovedTopicID))))
		b.WriteString("\n")
	}
	if sum.WorsenedTopicID != nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("▼ needs work: "+s.catalog.TopicLabel(*sum.WorsenedTopicID))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := fmt.Sprintf("Readiness %d%%   Streak %d day   Total %d min",
		s.state.Readiness, s.state.Streak, s.state.TotalStudyMinutes)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Subtitle.Render(footer)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
