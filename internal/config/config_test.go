package config

import (
	"os"
	"path/filepath"
	"testing"

	scheduler "github.com/kushvlshresthv/reflash-backend"
)

func withClean(t *testing.T, keys []string, fn func()) {
	t.Helper()
	original := make(map[string]string)
	for _, k := range keys {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	defer func() {
		for k, v := range original {
			if v != "" {
				os.Setenv(k, v)
			} else {
				os.Unsetenv(k)
			}
		}
	}()
	fn()
}

var envKeys = []string{
	"CONFIG_FILE",
	"REFLASH_NEW_SPREAD", "REFLASH_NEW_CARDS_PER_DAY", "REFLASH_REVIEW_CARDS_PER_DAY",
	"REFLASH_COLLAPSE_TIME", "REFLASH_LEECH_FAILS", "REFLASH_INITIAL_FACTOR",
	"REFLASH_GRADUATING_IVL", "REFLASH_EASY_IVL", "REFLASH_REPORT_LIMIT",
}

func TestLoadDefaults(t *testing.T) {
	withClean(t, envKeys, func() {
		tmp := t.TempDir()
		wd, _ := os.Getwd()
		os.Chdir(tmp)
		defer os.Chdir(wd)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.NewCardsPerDay != 0 || cfg.LeechFails != 0 || cfg.NewSpread != scheduler.SpreadDistribute || cfg.NewSteps != nil {
			t.Errorf("Load() with no overrides = %+v, want all zero values", cfg)
		}
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	withClean(t, envKeys, func() {
		tmp := t.TempDir()
		wd, _ := os.Getwd()
		os.Chdir(tmp)
		defer os.Chdir(wd)

		os.Setenv("REFLASH_NEW_CARDS_PER_DAY", "30")
		os.Setenv("REFLASH_LEECH_FAILS", "4")
		os.Setenv("REFLASH_NEW_SPREAD", "last")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.NewCardsPerDay != 30 {
			t.Errorf("NewCardsPerDay = %d, want 30", cfg.NewCardsPerDay)
		}
		if cfg.LeechFails != 4 {
			t.Errorf("LeechFails = %d, want 4", cfg.LeechFails)
		}
		if cfg.NewSpread != scheduler.SpreadLast {
			t.Errorf("NewSpread = %v, want SpreadLast", cfg.NewSpread)
		}
	})
}

func TestLoadInvalidEnvInt(t *testing.T) {
	withClean(t, envKeys, func() {
		tmp := t.TempDir()
		wd, _ := os.Getwd()
		os.Chdir(tmp)
		defer os.Chdir(wd)

		os.Setenv("REFLASH_NEW_CARDS_PER_DAY", "not-a-number")
		if _, err := Load(); err == nil {
			t.Error("Load() with a non-numeric override should return an error")
		}
	})
}

func TestLoadUnknownSpread(t *testing.T) {
	withClean(t, envKeys, func() {
		tmp := t.TempDir()
		wd, _ := os.Getwd()
		os.Chdir(tmp)
		defer os.Chdir(wd)

		os.Setenv("REFLASH_NEW_SPREAD", "sideways")
		if _, err := Load(); err == nil {
			t.Error("Load() with an unknown new_spread should return an error")
		}
	})
}

func TestLoadYAMLFile(t *testing.T) {
	withClean(t, envKeys, func() {
		tmp := t.TempDir()
		wd, _ := os.Getwd()
		os.Chdir(tmp)
		defer os.Chdir(wd)

		yamlPath := filepath.Join(tmp, "reflash.yaml")
		contents := "new_spread: first\nnew_cards_per_day: 15\nleech_fails: 6\nnew_steps: [1, 10, 20]\n"
		if err := os.WriteFile(yamlPath, []byte(contents), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		os.Setenv("CONFIG_FILE", yamlPath)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.NewSpread != scheduler.SpreadFirst {
			t.Errorf("NewSpread = %v, want SpreadFirst", cfg.NewSpread)
		}
		if cfg.NewCardsPerDay != 15 {
			t.Errorf("NewCardsPerDay = %d, want 15", cfg.NewCardsPerDay)
		}
		if cfg.LeechFails != 6 {
			t.Errorf("LeechFails = %d, want 6", cfg.LeechFails)
		}
		if len(cfg.NewSteps) != 3 || cfg.NewSteps[2] != 20 {
			t.Errorf("NewSteps = %v, want [1 10 20]", cfg.NewSteps)
		}
	})
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	withClean(t, envKeys, func() {
		tmp := t.TempDir()
		wd, _ := os.Getwd()
		os.Chdir(tmp)
		defer os.Chdir(wd)

		yamlPath := filepath.Join(tmp, "reflash.yaml")
		os.WriteFile(yamlPath, []byte("new_cards_per_day: 15\n"), 0o644)
		os.Setenv("CONFIG_FILE", yamlPath)
		os.Setenv("REFLASH_NEW_CARDS_PER_DAY", "99")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.NewCardsPerDay != 99 {
			t.Errorf("NewCardsPerDay = %d, want 99 (env should win over YAML)", cfg.NewCardsPerDay)
		}
	})
}

func TestLoadMissingYAMLFile(t *testing.T) {
	withClean(t, envKeys, func() {
		tmp := t.TempDir()
		wd, _ := os.Getwd()
		os.Chdir(tmp)
		defer os.Chdir(wd)

		os.Setenv("CONFIG_FILE", filepath.Join(tmp, "does-not-exist.yaml"))
		if _, err := Load(); err == nil {
			t.Error("Load() with a missing CONFIG_FILE should return an error")
		}
	})
}
