package planner

import (
	"math/rand"
	"testing"
	"time"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
)

var testNow = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	topics := []content.Topic{
		{ID: "ek-fiil", Label: "Ek Fiil"},
		{ID: "zarf", Label: "Zarflar"},
		{ID: "anlam", Label: "Cümlede Anlam"},
	}
	var questions []content.Question
	for _, tp := range topics {
		for _, n := range []string{"1", "2", "3", "4"} {
			questions = append(questions, content.Question{
				ID:           string(tp.ID) + "-q" + n,
				TopicID:      tp.ID,
				Prompt:       "prompt",
				Choices:      []string{"a", "b"},
				CorrectIndex: 0,
			})
		}
	}
	c, err := content.New(topics, questions, nil)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func newTestPlanner(t *testing.T, seed int64) *Planner {
	t.Helper()
	return New(testCatalog(t), rand.New(rand.NewSource(seed))).
		WithClock(func() time.Time { return testNow })
}

func emptyState() progress.State {
	return progress.State{
		TopicStats:      map[content.TopicID]progress.TopicStats{},
		QuestionHistory: map[string]progress.QuestionHistory{},
		ReviewSchedule:  map[string]progress.ReviewSchedule{},
	}
}

// stateWithAccuracy builds a state with the given per-topic accuracy out
// of 10 attempts each.
func stateWithAccuracy(acc map[content.TopicID]float64) progress.State {
	st := emptyState()
	for topic, a := range acc {
		st.TopicStats[topic] = progress.TopicStats{
			Attempts: 10,
			Correct:  int(a * 10),
		}
	}
	return st
}

func markWrong(st progress.State, id string, seenAt time.Time) {
	wrong := false
	st.QuestionHistory[id] = progress.QuestionHistory{
		Seen:              1,
		LastSeenAt:        &seenAt,
		LastResultCorrect: &wrong,
	}
}

func TestBottomTopics_LowestAccuracyFirst(t *testing.T) {
	p := newTestPlanner(t, 1)
	st := stateWithAccuracy(map[content.TopicID]float64{
		"ek-fiil": 0.9,
		"zarf":    0.2,
		"anlam":   0.5,
	})

	got := p.BottomTopics(st, 2)
	want := []content.TopicID{"zarf", "anlam"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BottomTopics[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBottomTopics_TiesKeepCatalogOrder(t *testing.T) {
	p := newTestPlanner(t, 1)

	got := p.BottomTopics(emptyState(), 2)
	want := []content.TopicID{"ek-fiil", "zarf"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("BottomTopics[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecentWrongQuestionIDs(t *testing.T) {
	p := newTestPlanner(t, 1)
	st := emptyState()

	markWrong(st, "zarf-q1", testNow.Add(-2*time.Hour))
	markWrong(st, "ek-fiil-q1", testNow.Add(-1*time.Hour))
	markWrong(st, "gone-question", testNow) // not in catalog

	correct := true
	st.QuestionHistory["anlam-q1"] = progress.QuestionHistory{
		Seen: 1, LastSeenAt: &testNow, LastResultCorrect: &correct,
	}
	// Seen but no recorded outcome: treated as never-wrong.
	st.QuestionHistory["anlam-q2"] = progress.QuestionHistory{Seen: 2}

	got := p.RecentWrongQuestionIDs(st)
	want := []string{"ek-fiil-q1", "zarf-q1"}
	if len(got) != len(want) {
		t.Fatalf("RecentWrongQuestionIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RecentWrongQuestionIDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWeightedWeaknessSample_DistinctAndBounded(t *testing.T) {
	p := newTestPlanner(t, 7)
	st := stateWithAccuracy(map[content.TopicID]float64{"ek-fiil": 0.1})
	pool := testCatalog(t).Questions

	got := p.weightedWeaknessSample(st, pool, 5, nil)
	if len(got) != 5 {
		t.Fatalf("sample size = %d, want 5", len(got))
	}
	seen := map[string]bool{}
	for _, q := range got {
		if seen[q.ID] {
			t.Errorf("duplicate id %q in sample", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestWeightedWeaknessSample_CountBeyondPool(t *testing.T) {
	p := newTestPlanner(t, 7)
	pool := testCatalog(t).Questions

	got := p.weightedWeaknessSample(emptyState(), pool, 100, nil)
	if len(got) != len(pool) {
		t.Errorf("sample size = %d, want whole pool %d", len(got), len(pool))
	}
}

func TestWeightedWeaknessSample_EmptyPool(t *testing.T) {
	p := newTestPlanner(t, 7)
	if got := p.weightedWeaknessSample(emptyState(), nil, 5, nil); got != nil {
		t.Errorf("sample from empty pool = %v, want nil", got)
	}
}

func TestPlanDaily_Composition(t *testing.T) {
	p := newTestPlanner(t, 3)
	st := stateWithAccuracy(map[content.TopicID]float64{
		"ek-fiil": 0.3,
		"zarf":    0.5,
		"anlam":   0.9,
	})
	markWrong(st, "ek-fiil-q1", testNow.Add(-1*time.Hour))
	markWrong(st, "zarf-q1", testNow.Add(-2*time.Hour))
	markWrong(st, "anlam-q1", testNow.Add(-3*time.Hour))

	plan := p.PlanDaily(st)

	if plan.Kind != KindDaily {
		t.Errorf("Kind = %q, want daily", plan.Kind)
	}

	// Only the two most recent wrongs are retried, in order, first.
	if plan.Counts.RetryQuestions != 2 {
		t.Fatalf("RetryQuestions = %d, want 2", plan.Counts.RetryQuestions)
	}
	if plan.QuestionIDs[0] != "ek-fiil-q1" || plan.QuestionIDs[1] != "zarf-q1" {
		t.Errorf("queue head = %v, want retries first", plan.QuestionIDs[:2])
	}

	if plan.Counts.WeightedWeakQuestions != 6 {
		t.Errorf("WeightedWeakQuestions = %d, want 6", plan.Counts.WeightedWeakQuestions)
	}

	assertDistinctCatalogIDs(t, p, plan.QuestionIDs)

	total := plan.Counts.RetryQuestions + plan.Counts.NewLearnQuestions + plan.Counts.MixedRecallQuestions
	if total != len(plan.QuestionIDs) {
		t.Errorf("counts sum to %d, queue has %d", total, len(plan.QuestionIDs))
	}
}

func TestPlanDaily_DueReviewsCapped(t *testing.T) {
	p := newTestPlanner(t, 3)
	st := emptyState()
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8"} {
		st.ReviewSchedule[id] = progress.ReviewSchedule{DueAt: testNow.Add(-time.Hour), Ease: 2.5}
	}

	plan := p.PlanDaily(st)
	if plan.Counts.DueReviews != 6 {
		t.Errorf("DueReviews = %d, want capped at 6", plan.Counts.DueReviews)
	}
}

func TestPlanDaily_NoHistory(t *testing.T) {
	p := newTestPlanner(t, 3)
	plan := p.PlanDaily(emptyState())

	if plan.Counts.RetryQuestions != 0 {
		t.Errorf("RetryQuestions = %d, want 0", plan.Counts.RetryQuestions)
	}
	if len(plan.QuestionIDs) != 6 {
		t.Errorf("queue length = %d, want 6 weighted picks", len(plan.QuestionIDs))
	}
	// Everything is unseen, so the whole queue counts as new-learn.
	if plan.Counts.NewLearnQuestions != len(plan.QuestionIDs) {
		t.Errorf("NewLearnQuestions = %d, want %d", plan.Counts.NewLearnQuestions, len(plan.QuestionIDs))
	}
}

func TestPlanDrill_RetriesFromWeakTopicsOnly(t *testing.T) {
	p := newTestPlanner(t, 5)
	st := stateWithAccuracy(map[content.TopicID]float64{
		"ek-fiil": 0.2,
		"zarf":    0.4,
		"anlam":   0.9,
	})
	markWrong(st, "ek-fiil-q1", testNow.Add(-1*time.Hour))
	markWrong(st, "anlam-q1", testNow.Add(-2*time.Hour)) // strong topic, excluded

	plan := p.PlanDrill(st)

	if plan.Kind != KindDrill {
		t.Errorf("Kind = %q, want drill", plan.Kind)
	}
	if len(plan.RetryQuestionIDs) != 1 || plan.RetryQuestionIDs[0] != "ek-fiil-q1" {
		t.Errorf("RetryQuestionIDs = %v, want [ek-fiil-q1]", plan.RetryQuestionIDs)
	}
	if plan.Counts.DueReviews != 0 {
		t.Errorf("DueReviews = %d, drills never include reviews", plan.Counts.DueReviews)
	}
	assertDistinctCatalogIDs(t, p, plan.QuestionIDs)
}

func TestPlanDrill_RetrySplicedNotFirst(t *testing.T) {
	p := newTestPlanner(t, 5)
	st := stateWithAccuracy(map[content.TopicID]float64{
		"ek-fiil": 0.2,
		"zarf":    0.4,
		"anlam":   0.9,
	})
	markWrong(st, "ek-fiil-q1", testNow.Add(-1*time.Hour))

	plan := p.PlanDrill(st)

	// Weak pool minus the retry leaves 7 picks, plus 2 from elsewhere,
	// so the retry lands at its splice position 3.
	if len(plan.QuestionIDs) != 10 {
		t.Fatalf("queue length = %d, want 10", len(plan.QuestionIDs))
	}
	if plan.QuestionIDs[3] != "ek-fiil-q1" {
		t.Errorf("QuestionIDs[3] = %q, want spliced retry ek-fiil-q1", plan.QuestionIDs[3])
	}
	if plan.QuestionIDs[0] == "ek-fiil-q1" {
		t.Error("retry clustered at the front of a drill")
	}
}

func TestPlan_DeterministicUnderFixedSeed(t *testing.T) {
	st := stateWithAccuracy(map[content.TopicID]float64{
		"ek-fiil": 0.3,
		"zarf":    0.6,
	})

	a := newTestPlanner(t, 42).PlanDaily(st)
	b := newTestPlanner(t, 42).PlanDaily(st)

	if len(a.QuestionIDs) != len(b.QuestionIDs) {
		t.Fatalf("lengths differ: %d vs %d", len(a.QuestionIDs), len(b.QuestionIDs))
	}
	for i := range a.QuestionIDs {
		if a.QuestionIDs[i] != b.QuestionIDs[i] {
			t.Errorf("plans diverge at %d: %q vs %q", i, a.QuestionIDs[i], b.QuestionIDs[i])
		}
	}
}

func assertDistinctCatalogIDs(t *testing.T, p *Planner, ids []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %q in queue", id)
		}
		seen[id] = true
		if p.catalog.Question(id) == nil {
			t.Errorf("id %q not in catalog", id)
		}
	}
}
