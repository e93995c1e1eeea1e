package progress

import (
	"encoding/json"
	"math"
	"time"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/store"
)

// StorageKey is the blob key holding the serialized progress state.
const StorageKey = "ates.study.progress.v1"

// Service owns the persisted learner state. Every mutating operation
// loads the current blob, applies a pure transform, recomputes readiness
// and writes the full snapshot back (last write wins).
type Service struct {
	catalog *content.Catalog
	blob    store.Blob
	now     func() time.Time
}

// NewService creates a Service over the given catalog and blob store.
func NewService(catalog *content.Catalog, blob store.Blob) *Service {
	return &Service{catalog: catalog, blob: blob, now: time.Now}
}

// WithClock replaces the time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Catalog returns the catalog the service was built with.
func (s *Service) Catalog() *content.Catalog {
	return s.catalog
}

// Load returns the persisted state merged over defaults. A missing key,
// an unreadable store or a malformed blob all degrade to defaults; Load
// never fails.
func (s *Service) Load() State {
	base := s.defaultState()
	raw, err := s.blob.Get(StorageKey)
	if err != nil || len(raw) == 0 {
		return base
	}
	var part partialState
	if err := json.Unmarshal(raw, &part); err != nil {
		return base
	}
	return overlay(base, part)
}

// Save re-merges the state over defaults, stamps updatedAt, persists and
// returns the canonical merged value. A failed write is ignored: callers
// must work from the returned value, not assume durability.
func (s *Service) Save(st State) State {
	merged := overlay(s.defaultState(), toPartial(st))
	merged.UpdatedAt = s.now()
	merged.Readiness = computeReadiness(merged)

	if raw, err := json.Marshal(merged); err == nil {
		_ = s.blob.Set(StorageKey, raw)
	}
	return merged
}

// RecordAttempt folds one answered question into the state: exactly one
// question history entry and one topic stats entry are updated.
func (s *Service) RecordAttempt(questionID string, topicID content.TopicID, isCorrect bool, elapsedMs int64) State {
	st := s.Load()
	now := s.now()

	h := st.QuestionHistory[questionID]
	h.Seen++
	if isCorrect {
		h.Correct++
	}
	h.TotalTimeMs += elapsedMs
	h.LastSeenAt = &now
	result := isCorrect
	h.LastResultCorrect = &result
	st.QuestionHistory[questionID] = h

	ts := st.TopicStats[topicID]
	ts.Attempts++
	if isCorrect {
		ts.Correct++
	}
	st.TopicStats[topicID] = ts

	return s.Save(st)
}

// CompleteSession folds a finished session into the state. The streak
// increments on every completed session; there is no calendar gating.
func (s *Service) CompleteSession(summary SessionSummary) State {
	st := s.Load()

	minutes := int(math.Round(float64(summary.AvgTimeMs) * float64(summary.TotalQuestions) / 60000))
	if minutes < 1 {
		minutes = 1
	}

	summary.FinishedAt = s.now()
	st.Streak++
	st.TotalStudyMinutes += minutes
	st.LastSession = &summary

	return s.Save(st)
}

// UpdateSettings shallow-merges the patch into the stored settings.
func (s *Service) UpdateSettings(patch SettingsPatch) State {
	st := s.Load()
	if patch.ExamDate != nil {
		st.Settings.ExamDate = *patch.ExamDate
	}
	if patch.SessionLengthMinutes != nil {
		st.Settings.SessionLengthMinutes = *patch.SessionLengthMinutes
	}
	return s.Save(st)
}

// Reset discards all history and persists a fresh default state with
// every flashcard due now.
func (s *Service) Reset() State {
	return s.Save(s.defaultState())
}

// DueStats counts schedule entries due at or before now, and the subset
// more than 24h overdue.
func (s *Service) DueStats(st State) DueStats {
	now := s.now()
	dayAgo := now.Add(-24 * time.Hour)

	var out DueStats
	for _, rs := range st.ReviewSchedule {
		if rs.IsDue(now) {
			out.Due++
		}
		if rs.DueAt.Before(dayAgo) {
			out.Overdue++
		}
	}
	return out
}

// DueCardIDs returns the ids of all due flashcards, oldest due first.
// Ids referencing cards no longer in the catalog are filtered out.
func (s *Service) DueCardIDs(st State) []string {
	now := s.now()

	var due []dueCard
	for id, rs := range st.ReviewSchedule {
		if rs.IsDue(now) && s.catalog.Flashcard(id) != nil {
			due = append(due, dueCard{id: id, dueAt: rs.DueAt})
		}
	}

	sortDue(due)

	ids := make([]string, len(due))
	for i, d := range due {
		ids[i] = d.id
	}
	return ids
}

// WeakestTopic returns the known topic with the lowest accuracy, ties
// broken by catalog order. Zero attempts counts as accuracy 0.
func (s *Service) WeakestTopic(st State) content.TopicID {
	topics := s.catalog.TopicIDs()
	if len(topics) == 0 {
		return ""
	}

	weakest := topics[0]
	best := st.TopicStats[weakest].Accuracy()
	for _, id := range topics[1:] {
		if acc := st.TopicStats[id].Accuracy(); acc < best {
			weakest = id
			best = acc
		}
	}
	return weakest
}

// Readiness recomputes the derived readiness score for a state.
func (s *Service) Readiness(st State) int {
	return computeReadiness(st)
}

// computeReadiness blends overall accuracy (discounted 20%) with a streak
// bonus capped at 20 points, clamped to [0,100].
func computeReadiness(st State) int {
	var attempts, correct int
	for _, ts := range st.TopicStats {
		attempts += ts.Attempts
		correct += ts.Correct
	}
	if attempts == 0 {
		return 0
	}

	accuracy := float64(correct) / float64(attempts) * 100
	streakBonus := float64(st.Streak * 2)
	if streakBonus > 20 {
		streakBonus = 20
	}
	return int(math.Round(math.Min(100, accuracy*0.8+streakBonus)))
}
