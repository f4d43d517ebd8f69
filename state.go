package scheduler

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// CardType tracks the stage a card is at in the scheduling state machine.
type CardType int

const (
	TypeNew CardType = iota
	TypeLearning
	TypeReview
	TypeRelearning
)

var (
	cardTypeNames = [...]string{
		TypeNew:        "New",
		TypeLearning:   "Learning",
		TypeReview:     "Review",
		TypeRelearning: "Relearning",
	}
	cardTypeByName = map[string]CardType{
		"New":        TypeNew,
		"Learning":   TypeLearning,
		"Review":     TypeReview,
		"Relearning": TypeRelearning,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = CardType(0)
	_ json.Marshaler           = CardType(0)
	_ json.Unmarshaler         = (*CardType)(nil)
	_ encoding.TextMarshaler   = CardType(0)
	_ encoding.TextUnmarshaler = (*CardType)(nil)
)

func (t CardType) isValid() bool {
	return t >= TypeNew && t <= TypeRelearning
}

// String returns the name of the type ("New", "Learning", "Review",
// "Relearning"). For invalid values it returns "CardType(n)".
func (t CardType) String() string {
	if t.isValid() {
		return cardTypeNames[t]
	}
	return fmt.Sprintf("CardType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t CardType) MarshalText() ([]byte, error) {
	if !t.isValid() {
		return nil, fmt.Errorf("scheduler: invalid card type: %d", int(t))
	}
	return []byte(cardTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *CardType) UnmarshalText(text []byte) error {
	v, ok := cardTypeByName[string(text)]
	if !ok {
		return fmt.Errorf("scheduler: invalid card type: %q", text)
	}
	*t = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t CardType) MarshalJSON() ([]byte, error) {
	text, err := t.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *CardType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("scheduler: invalid card type: %s", data)
	}
	return t.UnmarshalText([]byte(str))
}

// CardQueue tracks a card's physical-queue eligibility, independent of
// its CardType stage.
type CardQueue int

const (
	QueueSuspended CardQueue = -1
	QueueNew       CardQueue = 0
	QueueLearning  CardQueue = 1
	QueueReview    CardQueue = 2
)

var cardQueueNames = map[CardQueue]string{
	QueueSuspended: "Suspended",
	QueueNew:       "New",
	QueueLearning:  "Learning",
	QueueReview:    "Review",
}

// Compile-time interface check.
var _ fmt.Stringer = CardQueue(0)

func (q CardQueue) isValid() bool {
	_, ok := cardQueueNames[q]
	return ok
}

// String returns the name of the queue. For invalid values it returns
// "CardQueue(n)".
func (q CardQueue) String() string {
	if name, ok := cardQueueNames[q]; ok {
		return name
	}
	return fmt.Sprintf("CardQueue(%d)", int(q))
}
