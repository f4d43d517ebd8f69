package scheduler

import (
	"fmt"
	"log/slog"
)

// NewCardSpread controls when NEW cards are interleaved among learning
// and review cards.
type NewCardSpread int

const (
	SpreadDistribute NewCardSpread = iota
	SpreadLast
	SpreadFirst
)

// String names the spread policy, for logging and debugging.
func (s NewCardSpread) String() string {
	switch s {
	case SpreadDistribute:
		return "distribute"
	case SpreadLast:
		return "last"
	case SpreadFirst:
		return "first"
	default:
		return fmt.Sprintf("NewCardSpread(%d)", int(s))
	}
}

// SchedulerConfig configures a Scheduler. Zero values produce the
// documented defaults; see field comments.
type SchedulerConfig struct {
	NewSpread NewCardSpread `json:"new_spread"`

	NewCardsPerDay    int `json:"new_cards_per_day"`    // zero -> 20
	ReviewCardsPerDay int `json:"review_cards_per_day"` // zero -> 200

	CollapseTime int64 `json:"collapse_time"` // seconds; zero -> 1200

	NewSteps   []int `json:"new_steps"`   // minutes; nil -> [1, 10]; empty -> no steps
	LapseSteps []int `json:"lapse_steps"` // minutes; nil -> [10]; empty -> no steps

	LapseMinIvl int     `json:"lapse_min_ivl"` // zero -> 1
	LapseMult   float64 `json:"lapse_mult"`    // default is 0, which is also the zero value

	LeechFails int `json:"leech_fails"` // zero -> 8

	InitialFactor int `json:"initial_factor"` // zero -> 2500
	GraduatingIvl int `json:"graduating_ivl"` // zero -> 1
	EasyIvl       int `json:"easy_ivl"`       // zero -> 4

	ReportLimit int `json:"report_limit"` // zero -> 1000; caps the learning queue refill

	// Logger receives Debug-level events on day rollover and
	// Info-level events when a card is suspended as a leech; queue
	// refills are not logged. Nil -> slog.Default().
	Logger *slog.Logger `json:"-"`
}

func (c SchedulerConfig) withDefaults() SchedulerConfig {
	if c.NewCardsPerDay == 0 {
		c.NewCardsPerDay = 20
	}
	if c.ReviewCardsPerDay == 0 {
		c.ReviewCardsPerDay = 200
	}
	if c.CollapseTime == 0 {
		c.CollapseTime = 1200
	}
	if c.NewSteps == nil {
		c.NewSteps = []int{1, 10}
	}
	if c.LapseSteps == nil {
		c.LapseSteps = []int{10}
	}
	if c.LapseMinIvl == 0 {
		c.LapseMinIvl = 1
	}
	if c.LeechFails == 0 {
		c.LeechFails = 8
	}
	if c.InitialFactor == 0 {
		c.InitialFactor = 2500
	}
	if c.GraduatingIvl == 0 {
		c.GraduatingIvl = 1
	}
	if c.EasyIvl == 0 {
		c.EasyIvl = 4
	}
	if c.ReportLimit == 0 {
		c.ReportLimit = 1000
	}
	return c
}

// ValidateConfig checks that cfg's numeric fields fall within sane
// bounds. Call after withDefaults so zero-value defaults have already
// been applied.
func ValidateConfig(cfg SchedulerConfig) error {
	if cfg.NewCardsPerDay < 0 {
		return fmt.Errorf("%w: new_cards_per_day %d must be >= 0", ErrInvalidConfig, cfg.NewCardsPerDay)
	}
	if cfg.ReviewCardsPerDay < 0 {
		return fmt.Errorf("%w: review_cards_per_day %d must be >= 0", ErrInvalidConfig, cfg.ReviewCardsPerDay)
	}
	if cfg.CollapseTime < 0 {
		return fmt.Errorf("%w: collapse_time %d must be >= 0", ErrInvalidConfig, cfg.CollapseTime)
	}
	if cfg.LeechFails < 1 {
		return fmt.Errorf("%w: leech_fails %d must be >= 1", ErrInvalidConfig, cfg.LeechFails)
	}
	if cfg.InitialFactor < 1300 {
		return fmt.Errorf("%w: initial_factor %d must be >= 1300", ErrInvalidConfig, cfg.InitialFactor)
	}
	if cfg.LapseMinIvl < 1 {
		return fmt.Errorf("%w: lapse_min_ivl %d must be >= 1", ErrInvalidConfig, cfg.LapseMinIvl)
	}
	if cfg.GraduatingIvl < 1 {
		return fmt.Errorf("%w: graduating_ivl %d must be >= 1", ErrInvalidConfig, cfg.GraduatingIvl)
	}
	if cfg.EasyIvl < 1 {
		return fmt.Errorf("%w: easy_ivl %d must be >= 1", ErrInvalidConfig, cfg.EasyIvl)
	}
	for _, m := range cfg.NewSteps {
		if m <= 0 {
			return fmt.Errorf("%w: new_steps entries must be > 0 minutes, got %d", ErrInvalidConfig, m)
		}
	}
	for _, m := range cfg.LapseSteps {
		if m <= 0 {
			return fmt.Errorf("%w: lapse_steps entries must be > 0 minutes, got %d", ErrInvalidConfig, m)
		}
	}
	return nil
}
