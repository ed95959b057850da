package config

import "testing"

func TestParseLeagues(t *testing.T) {
	got := ParseLeagues("Premier League:PL,Championship:ELC")
	if len(got) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(got))
	}
	if got[0] != (League{Name: "Premier League", Code: "PL"}) {
		t.Fatalf("unexpected first league: %+v", got[0])
	}
}

func TestParseLeaguesDropsMalformedEntries(t *testing.T) {
	got := ParseLeagues("NoCode,:PL, , La Liga:PD")
	if len(got) != 1 || got[0].Code != "PD" {
		t.Fatalf("expected only the well-formed entry, got %+v", got)
	}
}

func TestParseLeaguesEmpty(t *testing.T) {
	if got := ParseLeagues(""); len(got) != 0 {
		t.Fatalf("expected no leagues, got %+v", got)
	}
}

func TestParseLeaguesDropsDuplicateCodes(t *testing.T) {
	got := ParseLeagues("Premier League:PL,Prem:PL,Championship:ELC")
	if len(got) != 2 {
		t.Fatalf("expected duplicate code dropped, got %+v", got)
	}
	if got[0].Name != "Premier League" || got[1].Code != "ELC" {
		t.Fatalf("expected first entry kept per code, got %+v", got)
	}
}
