package spacedrep

import (
	"math"
	"time"

	"github.com/ates/study/internal/progress"
)

// Ease tuning. EaseFloor matches the classic SM-2 minimum.
const (
	EaseFloor      = 1.3
	AgainPenalty   = 0.2
	HardPenalty    = 0.15
	EasyBonus      = 0.15
	HardGrowth     = 1.2
	EasyMultiplier = 1.3
)

// Apply advances a card's schedule for one rating. Cards cycle
// indefinitely; there is no terminal state.
//
// Reps increments on every non-lapse rating, lapses only on Again.
// Intervals grow by the card's ease (Good), a flat 1.2 (Hard) or
// ease*1.3 (Easy), and collapse to a same-day relearning step on Again.
func Apply(rs progress.ReviewSchedule, rating Rating, now time.Time) progress.ReviewSchedule {
	switch rating {
	case Again:
		rs.Lapses++
		rs.Ease = math.Max(EaseFloor, rs.Ease-AgainPenalty)
		rs.IntervalDays = 0
	case Hard:
		rs.Reps++
		rs.Ease = math.Max(EaseFloor, rs.Ease-HardPenalty)
		rs.IntervalDays = atLeastOne(math.Round(float64(rs.IntervalDays) * HardGrowth))
	case Good:
		rs.Reps++
		rs.IntervalDays = atLeastOne(math.Round(float64(rs.IntervalDays) * rs.Ease))
	case Easy:
		rs.Reps++
		rs.Ease += EasyBonus
		rs.IntervalDays = atLeastOne(math.Round(float64(rs.IntervalDays) * rs.Ease * EasyMultiplier))
	}

	rs.DueAt = now.AddDate(0, 0, rs.IntervalDays)
	return rs
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

// Scheduler applies ratings to the persisted progress state.
type Scheduler struct {
	progress *progress.Service
	now      func() time.Time
}

// NewScheduler creates a Scheduler over the progress service.
func NewScheduler(svc *progress.Service) *Scheduler {
	return &Scheduler{progress: svc, now: time.Now}
}

// WithClock replaces the time source. Test hook.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Rate loads the progress state, advances the card's schedule entry
// (creating a default entry first if the card was never scheduled) and
// saves. Invalid ratings leave the state untouched.
func (s *Scheduler) Rate(cardID string, rating Rating) progress.State {
	st := s.progress.Load()
	if !rating.Valid() {
		return st
	}

	now := s.now()
	rs, ok := st.ReviewSchedule[cardID]
	if !ok {
		rs = progress.NewReviewSchedule(now)
	}
	st.ReviewSchedule[cardID] = Apply(rs, rating, now)

	return s.progress.Save(st)
}
