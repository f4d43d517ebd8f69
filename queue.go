package scheduler

import (
	"math/rand"
	"sort"
)

// queueManager lazily rebuilds the three bounded physical queues from a
// deck's card set: empty after construction or reset, filled on demand
// by the selection logic. Cards are popped from the tail of each
// sequence, so fillers store cards in the reverse of their pop order.
type queueManager struct {
	newQueue []*Card
	lrnQueue []*Card
	revQueue []*Card
}

func popTail(q *[]*Card) *Card {
	n := len(*q)
	if n == 0 {
		return nil
	}
	c := (*q)[n-1]
	*q = (*q)[:n-1]
	return c
}

// reverseCards reverses cs in place so popping from the tail yields cs's
// original head-to-tail order.
func reverseCards(cs []*Card) {
	for i, j := 0, len(cs)-1; i < j; i, j = i+1, j-1 {
		cs[i], cs[j] = cs[j], cs[i]
	}
}

func truncate(cs []*Card, limit int) []*Card {
	if limit >= 0 && len(cs) > limit {
		return cs[:limit]
	}
	return cs
}

// fillNew selects all NEW-queue cards, sorted ascending by id (creation
// order), truncated to limit. No-op if the queue is already non-empty.
func (q *queueManager) fillNew(cards []*Card, limit int) {
	if len(q.newQueue) > 0 {
		return
	}
	var sel []*Card
	for _, c := range cards {
		if c.Queue == QueueNew {
			sel = append(sel, c)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].ID < sel[j].ID })
	sel = truncate(sel, limit)
	reverseCards(sel)
	q.newQueue = sel
}

// fillLrn selects LEARNING-queue cards due before cutoff, sorted
// ascending by due (earliest first), truncated to limit. No-op if the
// queue is already non-empty.
func (q *queueManager) fillLrn(cards []*Card, cutoff int64, limit int) {
	if len(q.lrnQueue) > 0 {
		return
	}
	var sel []*Card
	for _, c := range cards {
		if c.Queue == QueueLearning && c.Due < cutoff {
			sel = append(sel, c)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].Due < sel[j].Due })
	sel = truncate(sel, limit)
	reverseCards(sel)
	q.lrnQueue = sel
}

// fillRev selects REVIEW-queue cards due on or before today, sorted
// ascending by due, truncated to limit, then shuffled with a PRNG seeded
// with today so the order is randomized yet reproducible within a day.
// No-op if the queue is already non-empty.
func (q *queueManager) fillRev(cards []*Card, today int64, limit int) {
	if len(q.revQueue) > 0 {
		return
	}
	var sel []*Card
	for _, c := range cards {
		if c.Queue == QueueReview && c.Due <= today {
			sel = append(sel, c)
		}
	}
	sort.Slice(sel, func(i, j int) bool { return sel[i].Due < sel[j].Due })
	sel = truncate(sel, limit)
	rng := rand.New(rand.NewSource(today))
	rng.Shuffle(len(sel), func(i, j int) { sel[i], sel[j] = sel[j], sel[i] })
	q.revQueue = sel
}

func (q *queueManager) clear() {
	q.newQueue = nil
	q.lrnQueue = nil
	q.revQueue = nil
}
