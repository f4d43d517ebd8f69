package scheduler

import "github.com/google/uuid"

// Collection is the top-level container owning decks; it anchors day
// zero for every attached deck via CRT, the epoch second at the start
// of the creation day in UTC.
type Collection struct {
	ID    string
	Name  string
	CRT   int64
	Decks []*Deck
}

// NewCollection creates a Collection whose CRT is the UTC midnight of
// clock's current day.
func NewCollection(name string, clock Clock) *Collection {
	if clock == nil {
		clock = SystemClock
	}
	return &Collection{
		ID:   uuid.NewString(),
		Name: name,
		CRT:  startOfDayUTC(clock.NowS()),
	}
}

// AddDeck attaches deck to the collection, wiring the back-pointer,
// mirroring StudyClass.addDeck in the original Java source.
func (c *Collection) AddDeck(d *Deck) {
	d.Collection = c
	c.Decks = append(c.Decks, d)
}
