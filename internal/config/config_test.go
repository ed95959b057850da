package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(envProvider, "")
	t.Setenv(envLeagues, "")
	t.Setenv(envCacheDuration, "")
	t.Setenv(envBaseInterval, "")
	t.Setenv(envFastInterval, "")
	t.Setenv(envReferenceTZ, "")

	cfg := Load()

	if cfg.Provider != "fixture" {
		t.Fatalf("unexpected provider: %s", cfg.Provider)
	}
	if cfg.ReferenceTZ != "Europe/London" {
		t.Fatalf("unexpected reference tz: %s", cfg.ReferenceTZ)
	}
	if cfg.CacheDuration != 120*time.Second {
		t.Fatalf("unexpected cache duration: %v", cfg.CacheDuration)
	}
	if cfg.Scheduler.BaseInterval != 5*time.Minute || cfg.Scheduler.FastInterval != time.Minute {
		t.Fatalf("unexpected scheduler intervals: %+v", cfg.Scheduler)
	}
	if len(cfg.Leagues) == 0 {
		t.Fatal("expected default leagues")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envProvider, "footballdata")
	t.Setenv(envCacheDuration, "45s")
	t.Setenv(envBaseInterval, "2m")
	t.Setenv(envLeagues, "La Liga:PD, Serie A:SA")

	cfg := Load()

	if cfg.Provider != "footballdata" {
		t.Fatalf("unexpected provider: %s", cfg.Provider)
	}
	if cfg.CacheDuration != 45*time.Second {
		t.Fatalf("unexpected cache duration: %v", cfg.CacheDuration)
	}
	if cfg.Scheduler.BaseInterval != 2*time.Minute {
		t.Fatalf("unexpected base interval: %v", cfg.Scheduler.BaseInterval)
	}
	want := []League{{Name: "La Liga", Code: "PD"}, {Name: "Serie A", Code: "SA"}}
	if len(cfg.Leagues) != len(want) {
		t.Fatalf("unexpected leagues: %+v", cfg.Leagues)
	}
	for i, l := range want {
		if cfg.Leagues[i] != l {
			t.Fatalf("league %d: got %+v want %+v", i, cfg.Leagues[i], l)
		}
	}
}

func TestDurationEnvRejectsInvalid(t *testing.T) {
	t.Setenv(envCacheDuration, "not-a-duration")
	if got := durationEnvOrDefault(envCacheDuration, time.Minute); got != time.Minute {
		t.Fatalf("expected default for invalid duration, got %v", got)
	}

	t.Setenv(envCacheDuration, "-10s")
	if got := durationEnvOrDefault(envCacheDuration, time.Minute); got != time.Minute {
		t.Fatalf("expected default for non-positive duration, got %v", got)
	}
}

func TestValidateRequiresKeyForFootballData(t *testing.T) {
	cfg := Config{Provider: "footballdata"}
	if err := cfg.Validate(); err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}

	cfg.FootballData.APIKey = "token"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	if err := (Config{Provider: "fixture"}).Validate(); err != nil {
		t.Fatalf("fixture provider must not require a key, got %v", err)
	}
}
