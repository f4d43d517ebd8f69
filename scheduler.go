package scheduler

import (
	"fmt"
	"log/slog"
	"math"
)

// easyBonus is the extra multiplier applied to the interval on an Easy
// review answer, on top of the updated ease factor.
const easyBonus = 1.3

// Scheduler is the state machine bound to one Deck: it selects the next
// card via NextCard, dispatches Answer to per-state handlers, enforces
// day rollover, computes intervals, and graduates, lapses, and suspends
// leeches.
type Scheduler struct {
	deck  *Deck
	clock Clock
	cfg   SchedulerConfig
	qm    *queueManager

	today     int64
	dayCutoff int64
	lrnCutoff int64

	reps           int
	newCardModulus int
	modulusDirty   bool

	logger *slog.Logger
}

// NewScheduler binds a Scheduler to deck, reading time from clock
// (SystemClock if nil) and configured by cfg. It performs an initial
// Reset before returning.
func NewScheduler(deck *Deck, clock Clock, cfg SchedulerConfig) (*Scheduler, error) {
	if deck == nil {
		return nil, fmt.Errorf("scheduler: deck must not be nil")
	}
	if clock == nil {
		clock = SystemClock
	}
	cfg = cfg.withDefaults()
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		deck:   deck,
		clock:  clock,
		cfg:    cfg,
		qm:     &queueManager{},
		logger: logger,
	}
	deck.Sched = s
	s.Reset()
	return s, nil
}

// NextCard returns the next card the user should study, or ok=false if
// none is available right now.
func (s *Scheduler) NextCard() (*Card, bool) {
	s.CheckDay()
	if c := s.getLrnCard(); c != nil {
		s.reps++
		return c, true
	}
	if s.timeForNewCard() {
		if c := s.getNewCard(); c != nil {
			s.reps++
			return c, true
		}
	}
	if c := s.getRevCard(); c != nil {
		s.reps++
		return c, true
	}
	if c := s.getNewCard(); c != nil {
		s.reps++
		return c, true
	}
	if c := s.getLrnCard(); c != nil {
		s.reps++
		return c, true
	}
	return nil, false
}

// Answer mutates card in place in response to grade. Invalid grades
// return ErrInvalidGrade and leave the card unchanged. A card whose
// queue is not NEW/LEARNING/REVIEW returns ErrUnexpectedQueue.
func (s *Scheduler) Answer(card *Card, grade Grade) error {
	if !grade.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade))
	}
	card.Reps++
	switch card.Queue {
	case QueueNew:
		return s.answerNew(card, grade)
	case QueueLearning:
		return s.answerLearning(card, grade)
	case QueueReview:
		return s.answerReview(card, grade)
	default:
		return fmt.Errorf("%w: queue=%s", ErrUnexpectedQueue, card.Queue)
	}
}

// Reset forces a rebuild of all queues and recomputes today/day_cutoff.
func (s *Scheduler) Reset() {
	s.updateCutoff()
	s.qm.clear()
	s.resetLrn()
	s.resetNew()
}

// CheckDay resets the scheduler if the current time has crossed
// day_cutoff. Returns whether a reset occurred.
func (s *Scheduler) CheckDay() bool {
	if s.clock.NowS() > s.dayCutoff {
		s.logger.Debug("day rollover", "previous_cutoff", s.dayCutoff)
		s.Reset()
		return true
	}
	return false
}

// UpdateLrnCutoff recomputes lrn_cutoff if the candidate value has
// drifted by more than 60 seconds, or unconditionally when force is
// true. Returns whether an update occurred. Exposed for test harnesses.
func (s *Scheduler) UpdateLrnCutoff(force bool) bool {
	candidate := s.clock.NowS() + s.cfg.CollapseTime
	if candidate-s.lrnCutoff > 60 || force {
		s.lrnCutoff = candidate
		return true
	}
	return false
}

// Today returns the current day index (days since the deck's parent
// collection was created). It returns ErrDetachedDeck if the deck is
// not currently attached to a collection, in which case the index is
// clamped to 0 internally but callers needing strict correctness
// should treat the scheduler's day arithmetic as unreliable.
func (s *Scheduler) Today() (int64, error) {
	if _, attached := s.deck.CRT(); !attached {
		return s.today, ErrDetachedDeck
	}
	return s.today, nil
}

func (s *Scheduler) updateCutoff() {
	now := s.clock.NowS()
	if crt, attached := s.deck.CRT(); attached {
		s.today = floorDiv(now-crt, 86400)
	} else {
		s.today = 0
		s.logger.Debug("deck has no parent collection; today clamped to 0")
	}
	s.dayCutoff = nextMidnightUTC(now)
}

// resetLrn recomputes lrn_cutoff. qm.clear() (called by Reset just
// before this) already emptied the queue itself.
func (s *Scheduler) resetLrn() {
	s.UpdateLrnCutoff(true)
}

func (s *Scheduler) resetNew() {
	s.modulusDirty = true
}

// ensureNewCardModulus fills both new_queue and rev_queue (if dirty
// since the last reset) and recomputes new_card_modulus from their
// sizes, per the interleaving policy.
func (s *Scheduler) ensureNewCardModulus() {
	if !s.modulusDirty {
		return
	}
	s.qm.fillNew(s.deck.Cards, s.cfg.NewCardsPerDay)
	s.qm.fillRev(s.deck.Cards, s.today, s.cfg.ReviewCardsPerDay)
	if s.cfg.NewSpread == SpreadDistribute && len(s.qm.newQueue) > 0 {
		ratio := (len(s.qm.newQueue) + len(s.qm.revQueue)) / len(s.qm.newQueue)
		if len(s.qm.revQueue) > 0 {
			ratio = max(2, ratio)
		}
		s.newCardModulus = ratio
	} else {
		s.newCardModulus = 0
	}
	s.modulusDirty = false
}

func (s *Scheduler) timeForNewCard() bool {
	s.ensureNewCardModulus()
	if len(s.qm.newQueue) == 0 {
		return false
	}
	switch s.cfg.NewSpread {
	case SpreadLast:
		return false
	case SpreadFirst:
		return true
	}
	return s.reps > 0 && s.newCardModulus != 0 && s.reps%s.newCardModulus == 0
}

func (s *Scheduler) getLrnCard() *Card {
	s.qm.fillLrn(s.deck.Cards, s.clock.NowS()+s.cfg.CollapseTime, s.cfg.ReportLimit)
	return popTail(&s.qm.lrnQueue)
}

func (s *Scheduler) getNewCard() *Card {
	s.qm.fillNew(s.deck.Cards, s.cfg.NewCardsPerDay)
	return popTail(&s.qm.newQueue)
}

func (s *Scheduler) getRevCard() *Card {
	s.qm.fillRev(s.deck.Cards, s.today, s.cfg.ReviewCardsPerDay)
	return popTail(&s.qm.revQueue)
}

// lrnConf returns the learning-step delays (in minutes) that apply to
// card: LapseSteps while relearning, NewSteps otherwise.
func (s *Scheduler) lrnConf(card *Card) []int {
	if card.Type == TypeReview || card.Type == TypeRelearning {
		return s.cfg.LapseSteps
	}
	return s.cfg.NewSteps
}

func (s *Scheduler) answerNew(card *Card, grade Grade) error {
	card.Queue = QueueLearning
	card.Type = TypeLearning
	card.Left = s.startingLeft(card)
	return s.answerLearning(card, grade)
}

func (s *Scheduler) answerLearning(card *Card, grade Grade) error {
	conf := s.lrnConf(card)
	switch grade {
	case Easy:
		s.rescheduleAsRev(card, conf, true)
	case Good:
		stepsLeft := card.Left % 1000
		if stepsLeft-1 <= 0 {
			s.rescheduleAsRev(card, conf, false)
		} else {
			newTotal := stepsLeft - 1
			card.Left = s.leftToday(conf, newTotal)*1000 + newTotal
			s.rescheduleLrnCard(card, conf, nil)
		}
	case Hard:
		d1 := s.delayForGrade(conf, card.Left)
		next := (card.Left - 1) % 1000
		d2 := d1
		if next != 0 {
			d2 = s.delayForGrade(conf, card.Left-1)
		}
		applied := (d1 + max(d1, d2)) / 2
		s.rescheduleLrnCard(card, conf, &applied)
	case Again:
		// A lapsed card keeps TypeReview while relearning; its interval
		// is reduced on each Again during relearning.
		if card.Type == TypeReview {
			s.updateRevIvlOnFail(card)
		}
		s.moveToFirstStep(card, conf)
	}
	return nil
}

func (s *Scheduler) answerReview(card *Card, grade Grade) error {
	if grade == Again {
		s.rescheduleLapse(card)
		return nil
	}
	s.rescheduleRev(card, grade)
	return nil
}

// startingLeft computes the packed left value for a card about to enter
// (or re-enter) its first learning step.
func (s *Scheduler) startingLeft(card *Card) int {
	delays := s.lrnConf(card)
	total := len(delays)
	todaySteps := s.leftToday(delays, total)
	return todaySteps*1000 + total
}

// leftToday walks the last `remaining` entries of delays, accumulating
// each delay (minutes -> seconds) onto now_s(), and counts how many
// accumulations remain at or before day_cutoff. At least one step is
// always permitted even if it overflows into tomorrow.
func (s *Scheduler) leftToday(delays []int, remaining int) int {
	start := len(delays) - remaining
	if start < 0 {
		start = 0
	}
	acc := s.clock.NowS()
	count := 0
	for _, d := range delays[start:] {
		acc += int64(d) * 60
		if acc <= s.dayCutoff {
			count++
		}
	}
	if count < 1 {
		count = 1
	}
	return count
}

// delayForGrade returns the delay in seconds for the step implied by
// left's steps-remaining component.
func (s *Scheduler) delayForGrade(conf []int, left int) int {
	stepsRemaining := left % 1000
	idx := len(conf) - stepsRemaining
	return conf[idx] * 60
}

// rescheduleLrnCard sets card.due := now_s()+delay (delay_for_grade if
// delay is nil) and card.queue := LEARNING.
func (s *Scheduler) rescheduleLrnCard(card *Card, conf []int, delay *int) {
	d := 0
	if delay != nil {
		d = *delay
	} else {
		d = s.delayForGrade(conf, card.Left)
	}
	card.Due = s.clock.NowS() + int64(d)
	card.Queue = QueueLearning
}

// moveToFirstStep resets card to the first learning step. conf is the
// step table used only for the immediate rescheduleLrnCard call;
// startingLeft recomputes its own conf via lrnConf(card).
func (s *Scheduler) moveToFirstStep(card *Card, conf []int) {
	card.Left = s.startingLeft(card)
	if card.Type == TypeRelearning {
		s.updateRevIvlOnFail(card)
	}
	s.rescheduleLrnCard(card, conf, nil)
}

// rescheduleAsRev graduates card into REVIEW, either as a lapse
// regraduating with its current ivl (reduced only if an Again was
// pressed during relearning) or as a genuinely new card graduating for
// the first time.
func (s *Scheduler) rescheduleAsRev(card *Card, conf []int, early bool) {
	if card.Type == TypeReview {
		card.Due = s.today + int64(card.Ivl)
		card.Type = TypeReview
		card.Queue = QueueReview
		return
	}
	card.Ivl = s.graduatingIvl(card, early)
	card.Due = s.today + int64(card.Ivl)
	card.Factor = s.cfg.InitialFactor
	card.Type = TypeReview
	card.Queue = QueueReview
}

func (s *Scheduler) graduatingIvl(card *Card, early bool) int {
	if card.Type == TypeReview || card.Type == TypeRelearning {
		return card.Ivl
	}
	if !early {
		return s.cfg.GraduatingIvl
	}
	return s.cfg.EasyIvl
}

// rescheduleLapse handles Again on a REVIEW card: records the lapse,
// floors the ease factor, checks for leech suspension, and either
// drops into relearning or (if suspended) just reduces ivl. ivl is
// deliberately not reduced on this path unless the card ends up
// suspended; the reduction instead happens on the next Again during
// relearning, via update_rev_ivl_on_fail. This mirrors the source's
// documented, preserved behavior.
func (s *Scheduler) rescheduleLapse(card *Card) {
	card.Lapses++
	card.Factor = max(1300, card.Factor-200)
	if s.checkLeech(card) {
		s.updateRevIvlOnFail(card)
		return
	}
	card.Type = TypeReview
	s.moveToFirstStep(card, s.cfg.LapseSteps)
}

// checkLeech suspends card and tags its note "leech" once lapses reaches
// LeechFails. Returns whether the card was suspended.
func (s *Scheduler) checkLeech(card *Card) bool {
	if card.Lapses < s.cfg.LeechFails {
		return false
	}
	if note := s.deck.NoteByID(card.NoteID); note != nil {
		note.AddTag("leech")
	}
	card.Queue = QueueSuspended
	s.logger.Info("card suspended as leech", "card_id", card.ID, "lapses", card.Lapses)
	return true
}

func (s *Scheduler) updateRevIvlOnFail(card *Card) {
	card.Ivl = s.lapseIvl(card)
}

func (s *Scheduler) lapseIvl(card *Card) int {
	v := int(math.Floor(float64(card.Ivl) * s.cfg.LapseMult))
	if v < s.cfg.LapseMinIvl {
		v = s.cfg.LapseMinIvl
	}
	if v < 1 {
		v = 1
	}
	return v
}

// rescheduleRev applies the SM-2 ease-factor/interval update for a
// Hard/Good/Easy answer on a REVIEW card. See DESIGN.md for why these
// exact constants were chosen: spec left this formula open, and this
// is the standard Anki (non-FSRS) SM-2 update the card's data model
// (permille factor, 2500 initial value) is built for.
func (s *Scheduler) rescheduleRev(card *Card, grade Grade) {
	switch grade {
	case Hard:
		card.Factor = max(1300, card.Factor-150)
		card.Ivl = max(card.Ivl+1, roundInt(float64(card.Ivl)*1.2))
	case Good:
		newIvl := roundInt(float64(card.Ivl) * float64(card.Factor) / 1000)
		card.Ivl = max(newIvl, card.Ivl+1)
	case Easy:
		card.Factor += 150
		newIvl := roundInt(float64(card.Ivl) * float64(card.Factor) / 1000 * easyBonus)
		card.Ivl = max(newIvl, card.Ivl+1)
	}
	if card.Ivl < 1 {
		card.Ivl = 1
	}
	card.Due = s.today + int64(card.Ivl)
	card.Type = TypeReview
	card.Queue = QueueReview
}

// ReplayAnswers answers card with each grade in sequence, in order,
// useful for rebuilding a card's scheduling state from a persisted
// answer history.
func (s *Scheduler) ReplayAnswers(card *Card, grades []Grade) error {
	for _, g := range grades {
		if err := s.Answer(card, g); err != nil {
			return err
		}
	}
	return nil
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
