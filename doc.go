// Package scheduler implements an SM-2-family (Anki-style) spaced
// repetition scheduler: a state machine each card traverses (New ->
// Learning -> Review -> Relearning -> Review/Suspended), an interleaving
// policy that mixes three bounded queues drawn from one card pool, and
// the day-rollover bookkeeping that ties wall-clock time to the
// day-offset domain used for review due dates.
//
// Basic usage:
//
//	clock := scheduler.SystemClock
//	coll := scheduler.NewCollection("Biology 101", clock)
//	deck := scheduler.NewDeck("Chapter 5", clock)
//	coll.AddDeck(deck)
//
//	note := deck.NewNote()
//	card := deck.AddNote(note)
//
//	s, err := scheduler.NewScheduler(deck, clock, scheduler.SchedulerConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if card, ok := s.NextCard(); ok {
//	    s.Answer(card, scheduler.Good)
//	}
package scheduler
