package scheduler

import (
	"errors"
	"testing"
)

// TestTodayDetachedDeck exercises ErrDetachedDeck's actual surface: a
// deck never attached to a Collection reports day 0 and the sentinel,
// rather than silently pretending to be day 0 of a real collection.
func TestTodayDetachedDeck(t *testing.T) {
	clk := &fixedClock{s: 86400 * 5}
	deck := NewDeck("orphan", clk)
	sched, err := NewScheduler(deck, clk, SchedulerConfig{})
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	today, err := sched.Today()
	if !errors.Is(err, ErrDetachedDeck) {
		t.Fatalf("Today() err = %v, want ErrDetachedDeck", err)
	}
	if today != 0 {
		t.Errorf("Today() = %d, want 0 for a detached deck", today)
	}
}

// TestTodayAttachedDeck confirms the sentinel is absent once the deck
// is wired to a Collection, and that the day index tracks CRT.
func TestTodayAttachedDeck(t *testing.T) {
	clk := &fixedClock{s: 86400*3 + 10}
	coll := &Collection{ID: "c1", CRT: 0}
	deck := NewDeck("attached", clk)
	coll.AddDeck(deck)
	sched, err := NewScheduler(deck, clk, SchedulerConfig{})
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	today, err := sched.Today()
	if err != nil {
		t.Fatalf("Today() err = %v, want nil", err)
	}
	if today != 3 {
		t.Errorf("Today() = %d, want 3", today)
	}
}

// TestValidateConfigInvalidFields checks that every numeric bound
// ValidateConfig enforces actually rejects an out-of-range value, and
// that each rejection wraps ErrInvalidConfig.
func TestValidateConfigInvalidFields(t *testing.T) {
	base := SchedulerConfig{}.withDefaults()

	tests := []struct {
		name    string
		mutate  func(c SchedulerConfig) SchedulerConfig
	}{
		{"NewCardsPerDay negative", func(c SchedulerConfig) SchedulerConfig {
			c.NewCardsPerDay = -1
			return c
		}},
		{"ReviewCardsPerDay negative", func(c SchedulerConfig) SchedulerConfig {
			c.ReviewCardsPerDay = -1
			return c
		}},
		{"CollapseTime negative", func(c SchedulerConfig) SchedulerConfig {
			c.CollapseTime = -1
			return c
		}},
		{"LeechFails zero", func(c SchedulerConfig) SchedulerConfig {
			c.LeechFails = 0
			return c
		}},
		{"InitialFactor too low", func(c SchedulerConfig) SchedulerConfig {
			c.InitialFactor = 1299
			return c
		}},
		{"LapseMinIvl zero", func(c SchedulerConfig) SchedulerConfig {
			c.LapseMinIvl = 0
			return c
		}},
		{"GraduatingIvl zero", func(c SchedulerConfig) SchedulerConfig {
			c.GraduatingIvl = 0
			return c
		}},
		{"EasyIvl zero", func(c SchedulerConfig) SchedulerConfig {
			c.EasyIvl = 0
			return c
		}},
		{"NewSteps zero entry", func(c SchedulerConfig) SchedulerConfig {
			c.NewSteps = []int{1, 0}
			return c
		}},
		{"LapseSteps negative entry", func(c SchedulerConfig) SchedulerConfig {
			c.LapseSteps = []int{-5}
			return c
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.mutate(base)
			if err := ValidateConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ValidateConfig(%s) err = %v, want ErrInvalidConfig", tt.name, err)
			}
		})
	}
}

func TestValidateConfigDefaultsAreValid(t *testing.T) {
	cfg := SchedulerConfig{}.withDefaults()
	if err := ValidateConfig(cfg); err != nil {
		t.Errorf("ValidateConfig(defaults) = %v, want nil", err)
	}
}

func TestNewSchedulerRejectsInvalidConfigField(t *testing.T) {
	clk := &fixedClock{s: 0}
	deck := newTestDeck(clk)
	_, err := NewScheduler(deck, clk, SchedulerConfig{LeechFails: -3})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("NewScheduler err = %v, want ErrInvalidConfig", err)
	}
}

func TestAnswerErrorsAreDistinguishable(t *testing.T) {
	clk := &fixedClock{s: 0}
	deck := newTestDeck(clk)
	sched := mustScheduler(t, deck, clk, SchedulerConfig{})

	card := newRawCard(deck, 1, 1, TypeNew, QueueNew)
	gradeErr := sched.Answer(card, Grade(9))
	if !errors.Is(gradeErr, ErrInvalidGrade) {
		t.Errorf("bad grade err = %v, want ErrInvalidGrade", gradeErr)
	}
	if errors.Is(gradeErr, ErrUnexpectedQueue) {
		t.Error("invalid grade must not also report ErrUnexpectedQueue")
	}

	card.Queue = QueueSuspended
	queueErr := sched.Answer(card, Good)
	if !errors.Is(queueErr, ErrUnexpectedQueue) {
		t.Errorf("suspended queue err = %v, want ErrUnexpectedQueue", queueErr)
	}
}
