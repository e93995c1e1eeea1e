package progress

import (
	"time"

	"github.com/ates/study/internal/content"
)

// Mode identifies the kind of session a summary describes.
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeQuiz   Mode = "quiz"
	ModeReview Mode = "review"
	ModeDrill  Mode = "drill"
)

// TopicStats holds per-topic answer counters. Both counters are
// monotonically non-decreasing.
type TopicStats struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// Accuracy returns correct/attempts, or 0 with no attempts.
func (ts TopicStats) Accuracy() float64 {
	if ts.Attempts == 0 {
		return 0
	}
	return float64(ts.Correct) / float64(ts.Attempts)
}

// QuestionHistory holds per-question running totals.
// LastResultCorrect is tri-state: nil means no recorded outcome, which is
// also how entries persisted by older versions merge in (never-wrong).
type QuestionHistory struct {
	Seen              int        `json:"seen"`
	Correct           int        `json:"correct"`
	TotalTimeMs       int64      `json:"totalTimeMs"`
	LastSeenAt        *time.Time `json:"lastSeenAt"`
	LastResultCorrect *bool      `json:"lastResultCorrect,omitempty"`
}

// ReviewSchedule holds the spaced repetition state for a single flashcard.
type ReviewSchedule struct {
	DueAt        time.Time `json:"dueAt"`
	IntervalDays int       `json:"intervalDays"`
	Ease         float64   `json:"ease"`
	Reps         int       `json:"reps"`
	Lapses       int       `json:"lapses"`
}

// NewReviewSchedule returns the initial schedule for a card: immediately
// due, default ease.
func NewReviewSchedule(now time.Time) ReviewSchedule {
	return ReviewSchedule{
		DueAt:        now,
		IntervalDays: 0,
		Ease:         2.5,
		Reps:         0,
		Lapses:       0,
	}
}

// IsDue reports whether the card is at or past its due timestamp.
func (rs ReviewSchedule) IsDue(now time.Time) bool {
	return !rs.DueAt.After(now)
}

// SessionSummary is the immutable snapshot of one completed session.
// Only the latest summary is retained on the state.
type SessionSummary struct {
	Mode            Mode             `json:"mode"`
	Accuracy        float64          `json:"accuracy"`
	AvgTimeMs       int64            `json:"avgTimeMs"`
	TotalQuestions  int              `json:"totalQuestions"`
	CorrectCount    int              `json:"correctCount"`
	ImprovedTopicID *content.TopicID `json:"improvedTopicId,omitempty"`
	WorsenedTopicID *content.TopicID `json:"worsenedTopicId,omitempty"`
	FinishedAt      time.Time        `json:"finishedAt"`
}

// Settings are the learner-adjustable knobs carried inside the state blob.
type Settings struct {
	ExamDate             string `json:"examDate"`
	SessionLengthMinutes int    `json:"sessionLengthMinutes"`
}

// SettingsPatch is a partial settings update; nil fields are left as-is.
type SettingsPatch struct {
	ExamDate             *string
	SessionLengthMinutes *int
}

// State is the aggregate root for everything the learner has done.
// All mutation goes through the Service's load→transform→save cycle so the
// persisted blob is always a complete snapshot. Readiness is derived and
// recomputed on every save; the stored value is display cache only.
type State struct {
	TopicStats        map[content.TopicID]TopicStats `json:"topicStats"`
	QuestionHistory   map[string]QuestionHistory     `json:"questionHistory"`
	ReviewSchedule    map[string]ReviewSchedule      `json:"reviewSchedule"`
	Streak            int                            `json:"streak"`
	TotalStudyMinutes int                            `json:"totalStudyMinutes"`
	Readiness         int                            `json:"readiness"`
	LastSession       *SessionSummary                `json:"lastSession"`
	Settings          Settings                       `json:"settings"`
	UpdatedAt         time.Time                      `json:"updatedAt"`
}

// DueStats reports how many cards are due and how many of those are more
// than a day overdue.
type DueStats struct {
	Due     int
	Overdue int
}
