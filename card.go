package scheduler

// Card is the scheduled unit: a value record holding identity, an
// immutable back-reference to its originating Note, and mutable
// scheduling state.
type Card struct {
	ID     int64 `json:"id"`      // epoch-ms at creation, via IdGen.
	NoteID int64 `json:"note_id"` // immutable.
	CRT    int64 `json:"crt"`     // creation epoch-second.

	Type  CardType  `json:"type"`  // stage: NEW/LEARNING/REVIEW/RELEARNING.
	Queue CardQueue `json:"queue"` // eligibility: SUSPENDED/NEW/LEARNING/REVIEW.

	// Ivl is signed: negative means seconds (learning), positive means
	// days (review). Unused (0) while Type == NEW.
	Ivl int `json:"ivl"`

	// Factor is the ease factor in permille. 0 for NEW; set to
	// InitialFactor on first graduation; floored at 1300 after lapses.
	Factor int `json:"factor"`

	Reps   int `json:"reps"`   // lifetime review count.
	Lapses int `json:"lapses"` // lifetime count of Again while in REVIEW.

	// Left is a packed steps counter: today_steps*1000 + total_steps_remaining.
	Left int `json:"left"`

	// Due is polymorphic: for NEW, the note id (defines insertion
	// order); for LEARNING, an epoch-second timestamp; for REVIEW, a
	// day-offset from the collection's crt.
	Due int64 `json:"due"`
}

// newCardFromNote constructs a Card in state NEW for note, using idgen
// for its id and clock for its creation timestamp. Satisfies invariant 1:
// type==NEW <=> queue==NEW && ivl==0 && factor==0 && due==note_id.
func newCardFromNote(note *Note, idgen *IdGen, clock Clock) *Card {
	return &Card{
		ID:     idgen.Next(),
		NoteID: note.ID,
		CRT:    clock.NowS(),
		Type:   TypeNew,
		Queue:  QueueNew,
		Due:    note.ID,
	}
}

// IsSuspended reports whether the card is suspended (e.g. as a leech).
func (c *Card) IsSuspended() bool {
	return c.Queue == QueueSuspended
}
