package settings

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/router"
	"github.com/ates/study/internal/screen"
	"github.com/ates/study/internal/ui/components"
	"github.com/ates/study/internal/ui/layout"
	"github.com/ates/study/internal/ui/theme"
)

const (
	fieldExamDate = iota
	fieldSessionLength
)

// SettingsScreen edits the exam date and session length.
type SettingsScreen struct {
	svc *progress.Service

	examDate      components.TextInput
	sessionLength components.TextInput
	focused       int
	errMsg        string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen prefilled with current settings.
func New(svc *progress.Service) *SettingsScreen {
	st := svc.Load()

	examDate := components.NewTextInput("YYYY-MM-DD", components.InputDate, 10)
	examDate.Model.SetValue(st.Settings.ExamDate)

	sessionLength := components.NewTextInput("minutes", components.InputNumeric, 3)
	sessionLength.Model.SetValue(fmt.Sprintf("%d", st.Settings.SessionLengthMinutes))
	sessionLength.Model.Blur()

	return &SettingsScreen{
		svc:           svc,
		examDate:      examDate,
		sessionLength: sessionLength,
	}
}

func (s *SettingsScreen) Init() tea.Cmd {
	return s.examDate.Init()
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab":
			s.toggleFocus()
			return s, nil
		case "enter":
			return s.save()
		}
	}

	var cmd tea.Cmd
	if s.focused == fieldExamDate {
		s.examDate, cmd = s.examDate.Update(msg)
	} else {
		s.sessionLength, cmd = s.sessionLength.Update(msg)
	}
	return s, cmd
}

func (s *SettingsScreen) toggleFocus() {
	if s.focused == fieldExamDate {
		s.focused = fieldSessionLength
		s.examDate.Model.Blur()
		s.sessionLength.Model.Focus()
	} else {
		s.focused = fieldExamDate
		s.sessionLength.Model.Blur()
		s.examDate.Model.Focus()
	}
}

// save validates both fields and persists the patch.
func (s *SettingsScreen) save() (screen.Screen, tea.Cmd) {
	date := s.examDate.Value()
	if _, err := time.Parse("2006-01-02", date); err != nil {
		s.errMsg = "Exam date must be YYYY-MM-DD"
		return s, nil
	}

	minutes, err := s.sessionLength.NumericValue()
	if err != nil || minutes <= 0 {
		s.errMsg = "Session length must be a positive number"
		return s, nil
	}

	s.svc.UpdateSettings(progress.SettingsPatch{
		ExamDate:             &date,
		SessionLengthMinutes: &minutes,
	})
	s.errMsg = ""

	return s, func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SettingsScreen) View(width, height int) string {
	labelStyle := theme.Body.Bold(true)

	form := labelStyle.Render("Exam date") + "\n" +
		s.examDate.View() + "\n\n" +
		labelStyle.Render("Session length (minutes)") + "\n" +
		s.sessionLength.View()

	if s.errMsg != "" {
		form += "\n\n" + theme.Incorrect.Render(s.errMsg)
	}

	content := theme.Card.Width(min(width-4, 50)).Render(form)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
