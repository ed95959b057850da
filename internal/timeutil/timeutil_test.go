package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2025-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2025, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2025-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestResolveLocationFallsBack(t *testing.T) {
	if loc := ResolveLocation("Not/AZone"); loc == nil {
		t.Fatal("expected a non-nil location for an invalid name")
	}
	loc := ResolveLocation("UTC")
	if loc != time.UTC {
		t.Fatalf("expected UTC, got %v", loc)
	}
}
