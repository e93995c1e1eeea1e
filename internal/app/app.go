package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/planner"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/router"
	"github.com/ates/study/internal/screen"
	"github.com/ates/study/internal/screens/home"
	"github.com/ates/study/internal/screens/review"
	"github.com/ates/study/internal/screens/study"
	"github.com/ates/study/internal/ui/layout"
)

// Start selects which screen the TUI opens on.
type Start int

const (
	StartHome Start = iota
	StartDrill
	StartReview
)

// Options configures the TUI.
type Options struct {
	Catalog  *content.Catalog
	Progress *progress.Service
	Start    Start
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int

	readiness int
	streak    int
}

// newAppModel creates a new AppModel with the home screen at the stack
// bottom.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		opts:   opts,
		router: router.New(home.New(opts.Catalog, opts.Progress)),
	}
	m.refreshStats()
	return m
}

func (m *AppModel) refreshStats() {
	st := m.opts.Progress.Load()
	m.readiness = st.Readiness
	m.streak = st.Streak
}

func (m AppModel) Init() tea.Cmd {
	switch m.opts.Start {
	case StartDrill:
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: study.New(planner.KindDrill, m.opts.Catalog, m.opts.Progress),
			}
		}
	case StartReview:
		return func() tea.Msg {
			return router.PushScreenMsg{
				Screen: review.New(m.opts.Catalog, m.opts.Progress),
			}
		}
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.PushScreenMsg, router.PopScreenMsg, router.PopToRootMsg, router.ReplaceScreenMsg:
		// Navigation implies a screen may have written progress.
		m.refreshStats()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens deeper in the stack own esc themselves (quit
			// confirmation, reveal toggling). Only the top level maps
			// it to back-navigation for passive screens.
			if m.router.Depth() > 1 {
				if o, ok := m.router.Active().(escOwner); !ok || !o.OwnsEsc() {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escOwner marks screens that handle the esc key themselves.
type escOwner interface {
	OwnsEsc() bool
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.readiness, m.streak, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok && hp.KeyHints() != nil {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
