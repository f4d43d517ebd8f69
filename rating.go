package scheduler

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"
)

// Grade represents the user's self-graded recall quality for a card.
// The numeric values double as the 1-4 "ease" scale Anki-family clients
// send over the wire, so ParseGrade accepts either the digit or the name.
type Grade int

const (
	Again Grade = iota + 1 // Complete failure to recall.
	Hard                   // Recalled with significant difficulty.
	Good                   // Recalled with some effort.
	Easy                   // Recalled effortlessly.
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Grade(0)
	_ encoding.TextMarshaler   = Grade(0)
	_ encoding.TextUnmarshaler = (*Grade)(nil)
	_ json.Marshaler           = Grade(0)
	_ json.Unmarshaler         = (*Grade)(nil)
)

// IsValid reports whether g is one of Again, Hard, Good, Easy.
func (g Grade) IsValid() bool {
	switch g {
	case Again, Hard, Good, Easy:
		return true
	default:
		return false
	}
}

// String returns the name of the grade. For invalid values it returns
// "Grade(n)".
func (g Grade) String() string {
	switch g {
	case Again:
		return "Again"
	case Hard:
		return "Hard"
	case Good:
		return "Good"
	case Easy:
		return "Easy"
	default:
		return fmt.Sprintf("Grade(%d)", int(g))
	}
}

// ParseGrade resolves s to a Grade, accepting either its name
// ("again".."easy", case-insensitive) or its digit ("1".."4").
func ParseGrade(s string) (Grade, error) {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '4' {
		return Grade(s[0] - '0'), nil
	}
	switch strings.ToLower(s) {
	case "again":
		return Again, nil
	case "hard":
		return Hard, nil
	case "good":
		return Good, nil
	case "easy":
		return Easy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

// MarshalJSON implements json.Marshaler. Grade serializes as its name.
func (g Grade) MarshalJSON() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return json.Marshal(g.String())
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string
// (name or digit, per ParseGrade).
func (g *Grade) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGrade, data)
	}
	parsed, err := ParseGrade(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGrade, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; see ParseGrade.
func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
