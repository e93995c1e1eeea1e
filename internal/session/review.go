package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
	"github.com/ates/study/internal/spacedrep"
)

// ReviewRunner drives the due flashcard queue through an Anki-style
// run-through. Rating a card advances its schedule immediately; the run
// ends when the due queue is exhausted.
type ReviewRunner struct {
	ID string

	catalog   *content.Catalog
	progress  *progress.Service
	scheduler *spacedrep.Scheduler

	queue    []string
	rated    int
	recalled int
	totalMs  int64

	finished bool
	summary  *progress.SessionSummary
	endState progress.State
}

// NewReviewRunner snapshots the current due queue (oldest due first).
func NewReviewRunner(catalog *content.Catalog, svc *progress.Service, scheduler *spacedrep.Scheduler) *ReviewRunner {
	st := svc.Load()
	return &ReviewRunner{
		ID:        uuid.NewString(),
		catalog:   catalog,
		progress:  svc,
		scheduler: scheduler,
		queue:     svc.DueCardIDs(st),
	}
}

// Current returns the card at the head of the queue, or nil when done.
func (r *ReviewRunner) Current() *content.Flashcard {
	if len(r.queue) == 0 {
		return nil
	}
	return r.catalog.Flashcard(r.queue[0])
}

// Remaining returns how many due cards are left.
func (r *ReviewRunner) Remaining() int {
	return len(r.queue)
}

// Rated returns how many cards have been rated.
func (r *ReviewRunner) Rated() int {
	return r.rated
}

// Rate applies the rating to the current card and advances the queue.
// A card rated Again stays due but is not re-queued within this run;
// it comes back at the next session.
func (r *ReviewRunner) Rate(rating spacedrep.Rating, elapsed time.Duration) progress.State {
	card := r.Current()
	if card == nil || !rating.Valid() {
		return r.progress.Load()
	}

	elapsedMs := elapsed.Milliseconds()
	if elapsedMs < MinElapsedMs {
		elapsedMs = MinElapsedMs
	}

	st := r.scheduler.Rate(card.ID, rating)

	r.rated++
	if rating != spacedrep.Again {
		r.recalled++
	}
	r.totalMs += elapsedMs
	r.queue = r.queue[1:]

	return st
}

// Done reports whether the due queue has emptied.
func (r *ReviewRunner) Done() bool {
	return len(r.queue) == 0
}

// Finish records the review run as a completed session, exactly once.
func (r *ReviewRunner) Finish() (progress.State, progress.SessionSummary) {
	if r.finished {
		return r.endState, *r.summary
	}
	r.finished = true

	summary := progress.SessionSummary{
		Mode:           progress.ModeReview,
		TotalQuestions: r.rated,
		CorrectCount:   r.recalled,
	}
	if r.rated > 0 {
		summary.Accuracy = float64(r.recalled) / float64(r.rated) * 100
		summary.AvgTimeMs = r.totalMs / int64(r.rated)
	}

	r.endState = r.progress.CompleteSession(summary)
	if r.endState.LastSession != nil {
		r.summary = r.endState.LastSession
	} else {
		r.summary = &summary
	}
	return r.endState, *r.summary
}
