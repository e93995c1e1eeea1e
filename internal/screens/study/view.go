package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ates/study/internal/ui/theme"
)

func (s *StudyScreen) View(width, height int) string {
	if s.runner.Current() == nil && s.phase == phaseQuestion {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Subtitle.Render("Nothing to practice right now.\nPress any key to go back."))
	}

	switch s.phase {
	case phaseQuitConfirm:
		return s.renderQuitConfirm(width, height)
	case phaseFeedback:
		return s.renderFeedback(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *StudyScreen) renderQuestion(width, height int) string {
	q := s.runner.Current()

	topic := theme.Subtitle.Render(
		fmt.Sprintf("%s · question %d · %d left",
			s.catalog.TopicLabel(q.TopicID), s.runner.Answered()+1, s.runner.Remaining()))

	body := s.choice.View()

	content := topic + "\n\n" + theme.Card.Width(min(width-4, 76)).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *StudyScreen) renderFeedback(width, height int) string {
	q := s.last.Question

	var b strings.Builder
	if s.last.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("Answer: " + q.Choices[s.last.CorrectIndex]))
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		b.WriteString(theme.Body.Render(q.Explanation))
		b.WriteString("\n")
	}
	if q.Rule != "" {
		b.WriteString(theme.Hint.Render("Rule: " + q.Rule))
		b.WriteString("\n")
	}
	if q.Trap != "" && !s.last.Correct {
		b.WriteString(theme.Hint.Render("Watch out: " + q.Trap))
		b.WriteString("\n")
	}
	if q.MemoryHook != "" {
		b.WriteString(theme.Hint.Render("Remember: " + q.MemoryHook))
		b.WriteString("\n")
	}

	content := theme.Card.Width(min(width-4, 76)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *StudyScreen) renderQuitConfirm(width, height int) string {
	msg := theme.Body.Render("End this session early?") + "\n\n" +
		theme.Hint.Render("Progress so far is already saved. [y/n]")
	content := theme.Card.Render(msg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
