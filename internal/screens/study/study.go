package study

import (
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/planner"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/router"
	"github.com/ates/study/internal/screen"
	"github.com/ates/study/internal/screens/summary"
	"github.com/ates/study/internal/session"
	"github.com/ates/study/internal/ui/components"
	"github.com/ates/study/internal/ui/layout"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseQuitConfirm
)

// StudyScreen plays a generated plan: one question at a time, immediate
// feedback, missed items re-surfacing a few positions later.
type StudyScreen struct {
	kind    planner.Kind
	catalog *content.Catalog
	svc     *progress.Service

	runner *session.Runner
	plan   *planner.GeneratedPlan

	phase   phase
	choice  components.MultiChoice
	shownAt time.Time
	last    session.AnswerResult
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New builds the plan for the requested session kind and creates the
// screen driving it.
func New(kind planner.Kind, catalog *content.Catalog, svc *progress.Service) *StudyScreen {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	p := planner.New(catalog, rng)

	st := svc.Load()
	var plan *planner.GeneratedPlan
	if kind == planner.KindDrill {
		plan = p.PlanDrill(st)
	} else {
		plan = p.PlanDaily(st)
	}

	s := &StudyScreen{
		kind:    kind,
		catalog: catalog,
		svc:     svc,
		runner:  session.NewRunner(plan, catalog, svc, rng),
		plan:    plan,
	}
	s.nextQuestion()
	return s
}

// nextQuestion points the multichoice at the head of the queue and
// restarts the per-question timer.
func (s *StudyScreen) nextQuestion() {
	q := s.runner.Current()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Choices, q.CorrectIndex)
	s.shownAt = time.Now()
	s.phase = phaseQuestion
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Title() string {
	if s.kind == planner.KindDrill {
		return "Drill"
	}
	return "Daily Session"
}

// OwnsEsc keeps esc inside the screen so it can confirm before quitting.
func (s *StudyScreen) OwnsEsc() bool { return true }

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	if s.runner.Current() == nil && s.phase == phaseQuestion {
		// Nothing to practice at all. Any key goes back.
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.phase {
	case phaseQuitConfirm:
		switch kmsg.String() {
		case "y", "Y":
			return s.finish()
		case "n", "N", "esc":
			s.phase = phaseQuestion
		}
		return s, nil

	case phaseFeedback:
		if s.runner.Done() {
			return s.finish()
		}
		s.nextQuestion()
		return s, nil
	}

	if kmsg.String() == "esc" {
		s.phase = phaseQuitConfirm
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.last = s.runner.Answer(s.choice.ChosenIndex, time.Since(s.shownAt))
		s.phase = phaseFeedback
	}
	return s, nil
}

// finish completes the session and swaps in the summary screen.
func (s *StudyScreen) finish() (screen.Screen, tea.Cmd) {
	st, sum := s.runner.Finish()
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: summary.New(s.catalog, st, sum),
		}
	}
}
