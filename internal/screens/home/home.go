package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/planner"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/router"
	"github.com/ates/study/internal/screen"
	"github.com/ates/study/internal/screens/review"
	"github.com/ates/study/internal/screens/settings"
	"github.com/ates/study/internal/screens/study"
	"github.com/ates/study/internal/ui/components"
	"github.com/ates/study/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	catalog  *content.Catalog
	progress *progress.Service

	menu components.Menu

	readiness    int
	streak       int
	minutes      int
	due          progress.DueStats
	weakestLabel string
	examDate     string
	lastSession  *progress.SessionSummary
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(catalog *content.Catalog, svc *progress.Service) *HomeScreen {
	h := &HomeScreen{
		catalog:  catalog,
		progress: svc,
	}
	h.Refresh()
	return h
}

// Refresh recomputes the stats block and menu from persisted progress.
// The router calls it when a finished session pops back to home.
func (h *HomeScreen) Refresh() {
	st := h.progress.Load()

	h.readiness = st.Readiness
	h.streak = st.Streak
	h.minutes = st.TotalStudyMinutes
	h.due = h.progress.DueStats(st)
	h.weakestLabel = h.catalog.TopicLabel(h.progress.WeakestTopic(st))
	h.examDate = st.Settings.ExamDate
	h.lastSession = st.LastSession

	reviewDesc := "nothing due"
	if h.due.Due > 0 {
		reviewDesc = fmt.Sprintf("%d due", h.due.Due)
		if h.due.Overdue > 0 {
			reviewDesc = fmt.Sprintf("%d due, %d overdue", h.due.Due, h.due.Overdue)
		}
	}

	items := []components.MenuItem{
		{Label: "Daily Session", Description: "retry misses, drill weak topics", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: study.New(planner.KindDaily, h.catalog, h.progress)}
			}
		}},
		{Label: "Quick Drill", Description: "weakest: " + h.weakestLabel, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: study.New(planner.KindDrill, h.catalog, h.progress)}
			}
		}},
		{Label: "Review Cards", Description: reviewDesc, Disabled: h.due.Due == 0, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: review.New(h.catalog, h.progress)}
			}
		}},
		{Label: "Settings", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(h.progress)}
			}
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render("Türkçe Study Coach"))
	sections = append(sections, h.renderStatsBar(width))
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if h.lastSession != nil {
		line := fmt.Sprintf("Last session: %s, %d/%d correct (%.0f%%)",
			h.lastSession.Mode, h.lastSession.CorrectCount,
			h.lastSession.TotalQuestions, h.lastSession.Accuracy)
		sections = append(sections, theme.Subtitle.Width(width).Render(line))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderStatsBar(width int) string {
	stats := fmt.Sprintf("Streak %d day   Studied %d min   Exam %s",
		h.streak, h.minutes, h.examDate)

	bar := components.NewProgressBar("Readiness", h.readiness, true, lipgloss.Width(stats)).View()
	card := theme.Card.Render(bar + "\n\n" + stats)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
