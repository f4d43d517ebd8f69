package scheduler

import "github.com/google/uuid"

// Deck holds an ordered sequence of Cards and their originating Notes,
// a back-pointer to its parent Collection, and the Scheduler bound to
// it. Deck carries no scheduling logic of its own.
type Deck struct {
	ID         string
	Name       string
	Collection *Collection
	Cards      []*Card
	Notes      map[int64]*Note
	Sched      *Scheduler

	// IDGen is the shared id source for this deck's notes and cards.
	IDGen *IdGen
	clock Clock
}

// NewDeck creates an empty deck with its own id generator driven by clock.
func NewDeck(name string, clock Clock) *Deck {
	if clock == nil {
		clock = SystemClock
	}
	return &Deck{
		ID:    uuid.NewString(),
		Name:  name,
		Notes: make(map[int64]*Note),
		IDGen: NewIdGen(clock),
		clock: clock,
	}
}

// NewNote creates a Note using the deck's id generator. It is not yet
// attached to the deck until passed to AddNote.
func (d *Deck) NewNote() *Note {
	return NewNote(d.IDGen)
}

// AddNote registers note with the deck and constructs the Card generated
// from it, mirroring Deck.addNote in the original Java source.
func (d *Deck) AddNote(note *Note) *Card {
	d.Notes[note.ID] = note
	card := newCardFromNote(note, d.IDGen, d.clock)
	d.Cards = append(d.Cards, card)
	return card
}

// NoteByID looks up a note owned by this deck, or nil if none matches.
func (d *Deck) NoteByID(id int64) *Note {
	return d.Notes[id]
}

// CRT returns the parent collection's creation timestamp and whether the
// deck is currently attached to a collection.
func (d *Deck) CRT() (crt int64, attached bool) {
	if d.Collection == nil {
		return 0, false
	}
	return d.Collection.CRT, true
}
