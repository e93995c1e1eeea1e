package session

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/planner"
	"github.com/ates/study/internal/progress"
)

// MinElapsedMs clamps per-item timing so clock anomalies never record a
// zero or negative duration.
const MinElapsedMs = 1000

// Wrong-answer re-insertion offsets. Daily re-exposes a missed item two
// positions ahead; drills randomize within 3..5.
const (
	dailyRetryOffset    = 2
	drillRetryOffsetMin = 3
	drillRetryOffsetMax = 5
)

// AnswerResult reports the outcome of one answered item.
type AnswerResult struct {
	Correct      bool
	CorrectIndex int
	Question     *content.Question
	State        progress.State
}

// Runner drives one generated plan through a live session: it serves the
// queue in order, records each attempt, and re-inserts missed items a
// bounded offset ahead for short-term re-exposure. The session ends
// exactly when the queue empties.
type Runner struct {
	ID   string
	Kind planner.Kind

	catalog  *content.Catalog
	progress *progress.Service
	rng      *rand.Rand

	queue    []string
	answered int
	correct  int
	totalMs  int64

	baseline map[content.TopicID]float64
	finished bool
	summary  *progress.SessionSummary
	endState progress.State
}

// NewRunner creates a Runner for a plan. Ids not present in the catalog
// are dropped up front so Current never returns a broken reference.
func NewRunner(plan *planner.GeneratedPlan, catalog *content.Catalog, svc *progress.Service, rng *rand.Rand) *Runner {
	var queue []string
	for _, id := range plan.QuestionIDs {
		if catalog.HasQuestion(id) {
			queue = append(queue, id)
		}
	}

	st := svc.Load()
	baseline := make(map[content.TopicID]float64, len(catalog.Topics))
	for _, t := range catalog.Topics {
		baseline[t.ID] = st.TopicStats[t.ID].Accuracy()
	}

	return &Runner{
		ID:       uuid.NewString(),
		Kind:     plan.Kind,
		catalog:  catalog,
		progress: svc,
		rng:      rng,
		queue:    queue,
		baseline: baseline,
	}
}

// Current returns the question at the head of the queue, or nil when the
// session is over.
func (r *Runner) Current() *content.Question {
	if len(r.queue) == 0 {
		return nil
	}
	return r.catalog.Question(r.queue[0])
}

// Remaining returns how many items are left, counting re-insertions.
func (r *Runner) Remaining() int {
	return len(r.queue)
}

// Answered returns how many items have been answered so far.
func (r *Runner) Answered() int {
	return r.answered
}

// Answer records the learner's choice for the current question, advances
// the queue, and re-inserts the item ahead if the answer was wrong.
func (r *Runner) Answer(choiceIndex int, elapsed time.Duration) AnswerResult {
	q := r.Current()
	if q == nil {
		return AnswerResult{}
	}

	elapsedMs := elapsed.Milliseconds()
	if elapsedMs < MinElapsedMs {
		elapsedMs = MinElapsedMs
	}

	correct := choiceIndex == q.CorrectIndex
	st := r.progress.RecordAttempt(q.ID, q.TopicID, correct, elapsedMs)

	r.answered++
	if correct {
		r.correct++
	}
	r.totalMs += elapsedMs

	r.queue = r.queue[1:]
	if !correct {
		r.queue = insertAt(r.queue, q.ID, r.retryOffset())
	}

	return AnswerResult{
		Correct:      correct,
		CorrectIndex: q.CorrectIndex,
		Question:     q,
		State:        st,
	}
}

// Done reports whether the queue has emptied.
func (r *Runner) Done() bool {
	return len(r.queue) == 0
}

// Finish completes the session: builds the summary, detects the most
// improved and most worsened topics against the session-start baseline,
// and fires CompleteSession exactly once. Further calls return the same
// result.
func (r *Runner) Finish() (progress.State, progress.SessionSummary) {
	if r.finished {
		return r.endState, *r.summary
	}
	r.finished = true

	mode := progress.ModeDaily
	if r.Kind == planner.KindDrill {
		mode = progress.ModeDrill
	}

	summary := progress.SessionSummary{
		Mode:           mode,
		TotalQuestions: r.answered,
		CorrectCount:   r.correct,
	}
	if r.answered > 0 {
		summary.Accuracy = float64(r.correct) / float64(r.answered) * 100
		summary.AvgTimeMs = r.totalMs / int64(r.answered)
	}

	improved, worsened := r.topicDeltas()
	summary.ImprovedTopicID = improved
	summary.WorsenedTopicID = worsened

	r.endState = r.progress.CompleteSession(summary)
	if r.endState.LastSession != nil {
		r.summary = r.endState.LastSession
	} else {
		r.summary = &summary
	}
	return r.endState, *r.summary
}

// topicDeltas compares current topic accuracy with the session-start
// baseline and returns the biggest gain and biggest drop, nil when flat.
func (r *Runner) topicDeltas() (improved, worsened *content.TopicID) {
	st := r.progress.Load()

	var bestGain, worstDrop float64
	for _, t := range r.catalog.Topics {
		delta := st.TopicStats[t.ID].Accuracy() - r.baseline[t.ID]
		if delta > bestGain {
			bestGain = delta
			id := t.ID
			improved = &id
		}
		if delta < worstDrop {
			worstDrop = delta
			id := t.ID
			worsened = &id
		}
	}
	return improved, worsened
}

func (r *Runner) retryOffset() int {
	if r.Kind == planner.KindDrill {
		return drillRetryOffsetMin + r.rng.Intn(drillRetryOffsetMax-drillRetryOffsetMin+1)
	}
	offset := dailyRetryOffset
	if offset > len(r.queue) {
		offset = len(r.queue)
	}
	return offset
}

// insertAt splices id into queue at offset, clamped to the queue length.
func insertAt(queue []string, id string, offset int) []string {
	if offset > len(queue) {
		offset = len(queue)
	}
	out := make([]string, 0, len(queue)+1)
	out = append(out, queue[:offset]...)
	out = append(out, id)
	out = append(out, queue[offset:]...)
	return out
}
