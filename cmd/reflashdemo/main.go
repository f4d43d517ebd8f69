// Command reflashdemo demonstrates creating a deck, adding a note,
// studying its card through several reviews, and replaying an answer
// history to rebuild a card's scheduling state.
package main

import (
	"fmt"
	"log/slog"

	scheduler "github.com/kushvlshresthv/reflash-backend"
	"github.com/kushvlshresthv/reflash-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("using built-in defaults", "reason", err)
		cfg = scheduler.SchedulerConfig{}
	}

	clk := scheduler.SystemClock
	coll := scheduler.NewCollection("demo collection", clk)
	deck := scheduler.NewDeck("demo deck", clk)
	coll.AddDeck(deck)

	note := deck.NewNote()
	card := deck.AddNote(note)

	s, err := scheduler.NewScheduler(deck, clk, cfg)
	if err != nil {
		panic(err)
	}

	fmt.Println("=== New Card ===")
	fmt.Printf("Type: %s, Queue: %s, Due: %d\n\n", card.Type, card.Queue, card.Due)

	grades := []scheduler.Grade{scheduler.Good, scheduler.Good, scheduler.Easy}
	for i, grade := range grades {
		next, ok := s.NextCard()
		if !ok {
			fmt.Println("no card due")
			break
		}
		if err := s.Answer(next, grade); err != nil {
			panic(err)
		}
		fmt.Printf("Answer %d: rated %s\n", i+1, grade)
		fmt.Printf("  Type:   %s\n", next.Type)
		fmt.Printf("  Queue:  %s\n", next.Queue)
		fmt.Printf("  Ivl:    %d\n", next.Ivl)
		fmt.Printf("  Factor: %d\n", next.Factor)
		fmt.Printf("  Due:    %d\n\n", next.Due)
	}

	fmt.Println("=== Replaying a persisted answer history ===")
	replay := deck.AddNote(deck.NewNote())
	history := []scheduler.Grade{scheduler.Good, scheduler.Good, scheduler.Easy, scheduler.Hard}
	if err := s.ReplayAnswers(replay, history); err != nil {
		panic(err)
	}
	fmt.Printf("  Type: %s, Queue: %s, Ivl: %d, Factor: %d\n",
		replay.Type, replay.Queue, replay.Ivl, replay.Factor)
}
