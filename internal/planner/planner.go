package planner

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/ates/study/internal/content"
	"github.com/ates/study/internal/progress"
)

// Planner composes progress-store queries into ordered question queues.
// It is total over any progress state: stale ids are filtered, thin pools
// shrink the result instead of failing.
type Planner struct {
	catalog *content.Catalog
	rng     *rand.Rand
	now     func() time.Time
}

// New creates a Planner. The rand source is injected so plans are
// reproducible under a fixed seed.
func New(catalog *content.Catalog, rng *rand.Rand) *Planner {
	return &Planner{catalog: catalog, rng: rng, now: time.Now}
}

// WithClock replaces the time source. Test hook.
func (p *Planner) WithClock(now func() time.Time) *Planner {
	p.now = now
	return p
}

// TopicAccuracy returns correct/attempts for a topic, 0 with no attempts.
func (p *Planner) TopicAccuracy(st progress.State, topicID content.TopicID) float64 {
	return st.TopicStats[topicID].Accuracy()
}

// BottomTopics returns the n known topics with the lowest accuracy,
// ascending. Ties keep catalog order.
func (p *Planner) BottomTopics(st progress.State, n int) []content.TopicID {
	ids := p.catalog.TopicIDs()
	sort.SliceStable(ids, func(i, j int) bool {
		return p.TopicAccuracy(st, ids[i]) < p.TopicAccuracy(st, ids[j])
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// RecentWrongQuestionIDs returns catalog questions whose most recent
// recorded outcome was wrong, most recently seen first. Questions with no
// recorded outcome are treated as never-wrong.
func (p *Planner) RecentWrongQuestionIDs(st progress.State) []string {
	type wrong struct {
		id   string
		seen time.Time
	}
	var wrongs []wrong
	for id, h := range st.QuestionHistory {
		if h.Seen == 0 || h.LastResultCorrect == nil || *h.LastResultCorrect {
			continue
		}
		if !p.catalog.HasQuestion(id) {
			continue
		}
		var seen time.Time
		if h.LastSeenAt != nil {
			seen = *h.LastSeenAt
		}
		wrongs = append(wrongs, wrong{id: id, seen: seen})
	}

	sort.Slice(wrongs, func(i, j int) bool {
		if !wrongs[i].seen.Equal(wrongs[j].seen) {
			return wrongs[i].seen.After(wrongs[j].seen)
		}
		return wrongs[i].id < wrongs[j].id
	})

	ids := make([]string, len(wrongs))
	for i, w := range wrongs {
		ids[i] = w.id
	}
	return ids
}

// weightedWeaknessSample draws up to count distinct questions from pool,
// biased toward low-accuracy topics. Each question is replicated
// max(1, round((1-acc)*6)) times, doubled for priority topics, the
// multiset is shuffled and distinct ids drawn. If the weighted pass comes
// up short a shuffled pass over the plain pool tops up, so the sampler
// never stalls on a non-empty pool.
func (p *Planner) weightedWeaknessSample(st progress.State, pool []content.Question, count int, priority map[content.TopicID]bool) []content.Question {
	if len(pool) == 0 || count <= 0 {
		return nil
	}

	var weighted []content.Question
	for _, q := range pool {
		acc := p.TopicAccuracy(st, q.TopicID)
		copies := int(math.Max(1, math.Round((1-acc)*6)))
		if priority[q.TopicID] {
			copies *= 2
		}
		for i := 0; i < copies; i++ {
			weighted = append(weighted, q)
		}
	}
	p.rng.Shuffle(len(weighted), func(i, j int) {
		weighted[i], weighted[j] = weighted[j], weighted[i]
	})

	var picked []content.Question
	used := make(map[string]bool)
	for _, q := range weighted {
		if used[q.ID] {
			continue
		}
		picked = append(picked, q)
		used[q.ID] = true
		if len(picked) == count {
			return picked
		}
	}

	topUp := make([]content.Question, len(pool))
	copy(topUp, pool)
	p.rng.Shuffle(len(topUp), func(i, j int) {
		topUp[i], topUp[j] = topUp[j], topUp[i]
	})
	for _, q := range topUp {
		if used[q.ID] {
			continue
		}
		picked = append(picked, q)
		used[q.ID] = true
		if len(picked) == count {
			break
		}
	}

	return picked
}

// PlanDaily builds the daily queue: up to 2 recent-wrong retries first,
// then 6 weighted weakness picks. Due flashcard reviews are reported in
// the counts but the daily queue itself is questions only.
func (p *Planner) PlanDaily(st progress.State) *GeneratedPlan {
	weakTopics := p.BottomTopics(st, weakTopicCount)

	retryIDs := p.RecentWrongQuestionIDs(st)
	if len(retryIDs) > dailyRetryLimit {
		retryIDs = retryIDs[:dailyRetryLimit]
	}

	now := p.now()
	dueReviews := 0
	for _, rs := range st.ReviewSchedule {
		if rs.IsDue(now) {
			dueReviews++
		}
	}
	if dueReviews > dailyDueReviewCap {
		dueReviews = dailyDueReviewCap
	}

	retrySet := idSet(retryIDs)
	var pool []content.Question
	for _, q := range p.catalog.Questions {
		if !retrySet[q.ID] {
			pool = append(pool, q)
		}
	}
	weightedWeak := p.weightedWeaknessSample(st, pool, dailyWeakPicks, topicSet(weakTopics))

	retries := p.questionsFor(retryIDs)
	composed := append(append([]content.Question{}, retries...), weightedWeak...)
	queue := dedupByID(composed)

	newLearn := p.countNewLearn(st, queue)
	mixed := len(queue) - newLearn - len(retries)
	if mixed < 0 {
		mixed = 0
	}

	return &GeneratedPlan{
		Kind:             KindDaily,
		QuestionIDs:      ids(queue),
		WeakTopicIDs:     weakTopics,
		RetryQuestionIDs: retryIDs,
		Counts: Counts{
			DueReviews:            dueReviews,
			RetryQuestions:        len(retries),
			WeightedWeakQuestions: len(weightedWeak),
			NewLearnQuestions:     newLearn,
			MixedRecallQuestions:  mixed,
		},
	}
}

// PlanDrill builds the drill queue: 8 weighted picks from the two weakest
// topics plus 2 from everywhere else, with up to 3 weak-topic retries
// spliced through the queue instead of clustered at the front. Drills
// never touch flashcards.
func (p *Planner) PlanDrill(st progress.State) *GeneratedPlan {
	weakTopics := p.BottomTopics(st, weakTopicCount)
	weakSet := topicSet(weakTopics)

	var retryIDs []string
	for _, id := range p.RecentWrongQuestionIDs(st) {
		if q := p.catalog.Question(id); q != nil && weakSet[q.TopicID] {
			retryIDs = append(retryIDs, id)
		}
	}
	if len(retryIDs) > drillRetryLimit {
		retryIDs = retryIDs[:drillRetryLimit]
	}
	retrySet := idSet(retryIDs)

	var weakPool []content.Question
	for _, q := range p.catalog.QuestionsInTopics(weakSet) {
		if !retrySet[q.ID] {
			weakPool = append(weakPool, q)
		}
	}
	var otherPool []content.Question
	for _, q := range p.catalog.Questions {
		if !retrySet[q.ID] && !weakSet[q.TopicID] {
			otherPool = append(otherPool, q)
		}
	}

	weakPicks := p.weightedWeaknessSample(st, weakPool, drillWeakPicks, weakSet)
	otherPicks := p.weightedWeaknessSample(st, otherPool, drillOtherPicks, weakSet)

	queue := append(append([]content.Question{}, weakPicks...), otherPicks...)
	retries := p.questionsFor(retryIDs)
	for i, q := range retries {
		insertAt := drillRetryBase + i*drillRetrySpacing
		if insertAt > len(queue) {
			insertAt = len(queue)
		}
		queue = append(queue[:insertAt], append([]content.Question{q}, queue[insertAt:]...)...)
	}
	queue = dedupByID(queue)

	newLearn := p.countNewLearn(st, queue)
	mixed := len(queue) - len(weakPicks) - len(retries)
	if mixed < 0 {
		mixed = 0
	}

	return &GeneratedPlan{
		Kind:             KindDrill,
		QuestionIDs:      ids(queue),
		WeakTopicIDs:     weakTopics,
		RetryQuestionIDs: retryIDs,
		Counts: Counts{
			DueReviews:            0,
			RetryQuestions:        len(retries),
			WeightedWeakQuestions: len(weakPicks),
			NewLearnQuestions:     newLearn,
			MixedRecallQuestions:  mixed,
		},
	}
}

// questionsFor resolves ids against the catalog, dropping stale ones.
func (p *Planner) questionsFor(ids []string) []content.Question {
	var out []content.Question
	for _, id := range ids {
		if q := p.catalog.Question(id); q != nil {
			out = append(out, *q)
		}
	}
	return out
}

func (p *Planner) countNewLearn(st progress.State, queue []content.Question) int {
	n := 0
	for _, q := range queue {
		if st.QuestionHistory[q.ID].Seen == 0 {
			n++
		}
	}
	return n
}

// dedupByID keeps the first occurrence of each id, preserving order.
func dedupByID(qs []content.Question) []content.Question {
	seen := make(map[string]bool, len(qs))
	var out []content.Question
	for _, q := range qs {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

func ids(qs []content.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func topicSet(topics []content.TopicID) map[content.TopicID]bool {
	set := make(map[content.TopicID]bool, len(topics))
	for _, t := range topics {
		set[t] = true
	}
	return set
}
