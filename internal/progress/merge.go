package progress

import (
	"sort"
	"time"

	"github.com/ates/study/internal/content"
)

// partialState mirrors State with optional fields so a blob written by an
// older version (or by hand) merges field-by-field instead of failing.
type partialState struct {
	TopicStats        map[content.TopicID]TopicStats `json:"topicStats"`
	QuestionHistory   map[string]QuestionHistory     `json:"questionHistory"`
	ReviewSchedule    map[string]ReviewSchedule      `json:"reviewSchedule"`
	Streak            *int                           `json:"streak"`
	TotalStudyMinutes *int                           `json:"totalStudyMinutes"`
	Readiness         *int                           `json:"readiness"`
	LastSession       *SessionSummary                `json:"lastSession"`
	Settings          *partialSettings               `json:"settings"`
	UpdatedAt         *time.Time                     `json:"updatedAt"`
}

type partialSettings struct {
	ExamDate             *string `json:"examDate"`
	SessionLengthMinutes *int    `json:"sessionLengthMinutes"`
}

// defaultState builds the fresh state for this catalog: zeroed counters
// for every topic and question, every flashcard immediately due.
func (s *Service) defaultState() State {
	now := s.now()

	topicStats := make(map[content.TopicID]TopicStats, len(s.catalog.Topics))
	for _, t := range s.catalog.Topics {
		topicStats[t.ID] = TopicStats{}
	}

	questionHistory := make(map[string]QuestionHistory, len(s.catalog.Questions))
	for _, q := range s.catalog.Questions {
		questionHistory[q.ID] = QuestionHistory{}
	}

	reviewSchedule := make(map[string]ReviewSchedule, len(s.catalog.Flashcards))
	for _, f := range s.catalog.Flashcards {
		reviewSchedule[f.ID] = NewReviewSchedule(now)
	}

	return State{
		TopicStats:      topicStats,
		QuestionHistory: questionHistory,
		ReviewSchedule:  reviewSchedule,
		LastSession:     nil,
		Settings: Settings{
			ExamDate:             "2026-04-06",
			SessionLengthMinutes: 12,
		},
		UpdatedAt: now,
	}
}

// overlay merges a partial state over the defaults: scalars replace when
// present, the four sub-mappings merge key-by-key (whole entries).
func overlay(base State, part partialState) State {
	out := base

	// Copy the maps so overlay never aliases the base.
	out.TopicStats = make(map[content.TopicID]TopicStats, len(base.TopicStats))
	for k, v := range base.TopicStats {
		out.TopicStats[k] = v
	}
	for k, v := range part.TopicStats {
		out.TopicStats[k] = v
	}

	out.QuestionHistory = make(map[string]QuestionHistory, len(base.QuestionHistory))
	for k, v := range base.QuestionHistory {
		out.QuestionHistory[k] = v
	}
	for k, v := range part.QuestionHistory {
		out.QuestionHistory[k] = v
	}

	out.ReviewSchedule = make(map[string]ReviewSchedule, len(base.ReviewSchedule))
	for k, v := range base.ReviewSchedule {
		out.ReviewSchedule[k] = v
	}
	for k, v := range part.ReviewSchedule {
		out.ReviewSchedule[k] = v
	}

	if part.Streak != nil {
		out.Streak = *part.Streak
	}
	if part.TotalStudyMinutes != nil {
		out.TotalStudyMinutes = *part.TotalStudyMinutes
	}
	if part.Readiness != nil {
		out.Readiness = *part.Readiness
	}
	if part.LastSession != nil {
		out.LastSession = part.LastSession
	}
	if part.Settings != nil {
		if part.Settings.ExamDate != nil {
			out.Settings.ExamDate = *part.Settings.ExamDate
		}
		if part.Settings.SessionLengthMinutes != nil {
			out.Settings.SessionLengthMinutes = *part.Settings.SessionLengthMinutes
		}
	}
	if part.UpdatedAt != nil {
		out.UpdatedAt = *part.UpdatedAt
	}

	return out
}

// toPartial converts a full in-memory state to the partial form so Save
// runs the same defaulting pass as Load.
func toPartial(st State) partialState {
	streak := st.Streak
	minutes := st.TotalStudyMinutes
	readiness := st.Readiness
	settings := partialSettings{
		ExamDate:             &st.Settings.ExamDate,
		SessionLengthMinutes: &st.Settings.SessionLengthMinutes,
	}
	updatedAt := st.UpdatedAt

	return partialState{
		TopicStats:        st.TopicStats,
		QuestionHistory:   st.QuestionHistory,
		ReviewSchedule:    st.ReviewSchedule,
		Streak:            &streak,
		TotalStudyMinutes: &minutes,
		Readiness:         &readiness,
		LastSession:       st.LastSession,
		Settings:          &settings,
		UpdatedAt:         &updatedAt,
	}
}

type dueCard struct {
	id    string
	dueAt time.Time
}

// sortDue orders due cards by ascending dueAt, ties by id so the order is
// fully deterministic.
func sortDue(due []dueCard) {
	sort.Slice(due, func(i, j int) bool {
		if !due[i].dueAt.Equal(due[j].dueAt) {
			return due[i].dueAt.Before(due[j].dueAt)
		}
		return due[i].id < due[j].id
	})
}
