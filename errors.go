package scheduler

import "errors"

// Sentinel errors for the scheduler package.
// Use errors.Is to check: errors.Is(err, scheduler.ErrInvalidGrade)
var (
	// ErrInvalidGrade is returned by Answer when grade is not one of
	// Again, Hard, Good, Easy. The card is left unchanged.
	ErrInvalidGrade = errors.New("scheduler: invalid grade")

	// ErrUnexpectedQueue is returned by Answer when the card's queue is
	// not one of NEW/LEARNING/REVIEW. Suspended cards must never be
	// presented to Answer; seeing this error indicates a caller bug.
	ErrUnexpectedQueue = errors.New("scheduler: unexpected queue")

	// ErrDetachedDeck marks a deck with no parent collection. It is
	// non-fatal: scheduling proceeds with today clamped to 0. It is
	// returned by Scheduler.Today, so callers that want strictness may
	// check for it there.
	ErrDetachedDeck = errors.New("scheduler: deck has no parent collection")

	// ErrInvalidConfig is returned by NewScheduler when a SchedulerConfig
	// field falls outside its valid range.
	ErrInvalidConfig = errors.New("scheduler: invalid configuration")
)
