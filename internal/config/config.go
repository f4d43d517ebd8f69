// Package config loads a scheduler.SchedulerConfig from the environment,
// an optional .env file, and an optional YAML override file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	scheduler "github.com/kushvlshresthv/reflash-backend"
)

// fileConfig mirrors scheduler.SchedulerConfig's JSON-shaped fields for
// YAML decoding; NewSpread is decoded as a string and resolved separately
// since NewCardSpread has no YAML (un)marshaler of its own.
type fileConfig struct {
	NewSpread         string  `yaml:"new_spread"`
	NewCardsPerDay    int     `yaml:"new_cards_per_day"`
	ReviewCardsPerDay int     `yaml:"review_cards_per_day"`
	CollapseTime      int64   `yaml:"collapse_time"`
	NewSteps          []int   `yaml:"new_steps"`
	LapseSteps        []int   `yaml:"lapse_steps"`
	LapseMinIvl       int     `yaml:"lapse_min_ivl"`
	LapseMult         float64 `yaml:"lapse_mult"`
	LeechFails        int     `yaml:"leech_fails"`
	InitialFactor     int     `yaml:"initial_factor"`
	GraduatingIvl     int     `yaml:"graduating_ivl"`
	EasyIvl           int     `yaml:"easy_ivl"`
	ReportLimit       int     `yaml:"report_limit"`
}

// Load builds a scheduler.SchedulerConfig from, in increasing precedence:
// compiled-in zero values, a YAML file named by CONFIG_FILE (if set),
// and individual REFLASH_* environment variables. A .env file is loaded
// first if found in the working directory or one of its ancestors, up
// to four levels above it.
func Load() (scheduler.SchedulerConfig, error) {
	loadDotenv()

	var cfg scheduler.SchedulerConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		fc, err := loadYAML(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		cfg = fc
	}

	if err := overlayEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func loadDotenv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func loadYAML(path string) (scheduler.SchedulerConfig, error) {
	var cfg scheduler.SchedulerConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	spread, err := parseSpread(fc.NewSpread)
	if err != nil {
		return cfg, err
	}
	cfg = scheduler.SchedulerConfig{
		NewSpread:         spread,
		NewCardsPerDay:    fc.NewCardsPerDay,
		ReviewCardsPerDay: fc.ReviewCardsPerDay,
		CollapseTime:      fc.CollapseTime,
		NewSteps:          fc.NewSteps,
		LapseSteps:        fc.LapseSteps,
		LapseMinIvl:       fc.LapseMinIvl,
		LapseMult:         fc.LapseMult,
		LeechFails:        fc.LeechFails,
		InitialFactor:     fc.InitialFactor,
		GraduatingIvl:     fc.GraduatingIvl,
		EasyIvl:           fc.EasyIvl,
		ReportLimit:       fc.ReportLimit,
	}
	return cfg, nil
}

func parseSpread(s string) (scheduler.NewCardSpread, error) {
	switch s {
	case "", "distribute":
		return scheduler.SpreadDistribute, nil
	case "last":
		return scheduler.SpreadLast, nil
	case "first":
		return scheduler.SpreadFirst, nil
	default:
		return 0, fmt.Errorf("unknown new_spread %q", s)
	}
}

func overlayEnv(cfg *scheduler.SchedulerConfig) error {
	if v, ok := os.LookupEnv("REFLASH_NEW_SPREAD"); ok {
		spread, err := parseSpread(v)
		if err != nil {
			return err
		}
		cfg.NewSpread = spread
	}
	if err := overlayInt("REFLASH_NEW_CARDS_PER_DAY", &cfg.NewCardsPerDay); err != nil {
		return err
	}
	if err := overlayInt("REFLASH_REVIEW_CARDS_PER_DAY", &cfg.ReviewCardsPerDay); err != nil {
		return err
	}
	if err := overlayInt64("REFLASH_COLLAPSE_TIME", &cfg.CollapseTime); err != nil {
		return err
	}
	if err := overlayInt("REFLASH_LEECH_FAILS", &cfg.LeechFails); err != nil {
		return err
	}
	if err := overlayInt("REFLASH_INITIAL_FACTOR", &cfg.InitialFactor); err != nil {
		return err
	}
	if err := overlayInt("REFLASH_GRADUATING_IVL", &cfg.GraduatingIvl); err != nil {
		return err
	}
	if err := overlayInt("REFLASH_EASY_IVL", &cfg.EasyIvl); err != nil {
		return err
	}
	if err := overlayInt("REFLASH_REPORT_LIMIT", &cfg.ReportLimit); err != nil {
		return err
	}
	return nil
}

func overlayInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func overlayInt64(key string, dst *int64) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}
