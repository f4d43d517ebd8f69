package scheduler

// AnswerLog records a single answer event for a card, useful for
// persisting review history and rebuilding scheduling state later via
// Scheduler.ReplayAnswers.
type AnswerLog struct {
	CardID     int64 `json:"card_id"`
	Grade      Grade `json:"grade"`
	AnsweredAt int64 `json:"answered_at"` // epoch seconds
}
