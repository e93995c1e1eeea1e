package planner

import "github.com/ates/study/internal/content"

// Kind tags which composition rules produced a plan.
type Kind string

const (
	KindDaily Kind = "daily"
	KindDrill Kind = "drill"
)

// Counts breaks a plan's queue down by the reason items were included.
// Delivered amounts, not requested ones: a thin pool shrinks them.
type Counts struct {
	DueReviews            int
	RetryQuestions        int
	WeightedWeakQuestions int
	NewLearnQuestions     int
	MixedRecallQuestions  int
}

// GeneratedPlan is one ordered question queue. It is ephemeral: produced
// fresh per planning call, owned by the session that runs it, never
// persisted. QuestionIDs contains no duplicates and order is significant.
type GeneratedPlan struct {
	Kind             Kind
	QuestionIDs      []string
	WeakTopicIDs     []content.TopicID
	RetryQuestionIDs []string
	Counts           Counts
}

// Planning knobs. Daily sessions lead with up to 2 retries then fill with
// weighted weakness picks; drills concentrate on the two weakest topics
// and spread up to 3 retries through the queue.
const (
	weakTopicCount = 2

	dailyRetryLimit   = 2
	dailyWeakPicks    = 6
	dailyDueReviewCap = 6

	drillRetryLimit   = 3
	drillWeakPicks    = 8
	drillOtherPicks   = 2
	drillRetryBase    = 3
	drillRetrySpacing = 4
)
