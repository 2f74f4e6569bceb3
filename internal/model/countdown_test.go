package model

import (
	"testing"
	"time"
)

func fiveMinuteCycle() *Cycle {
	return &Cycle{
		ID:            "c-1",
		Task:          "Projeto 1",
		MinutesAmount: 5,
		StartTime:     time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		Status:        CycleStatusActive,
	}
}

func TestPresentScenario(t *testing.T) {
	c := fiveMinuteCycle()
	if got := Present(c, 0).String(); got != "05:00" {
		t.Fatalf("at T+0s expected 05:00, got %s", got)
	}
	got := Present(c, 65)
	if got.String() != "03:55" {
		t.Fatalf("at T+65s expected 03:55, got %s", got.String())
	}
	if got.MinutesDigits != [2]string{"0", "3"} || got.SecondsDigits != [2]string{"5", "5"} {
		t.Fatalf("unexpected digits: %+v %+v", got.MinutesDigits, got.SecondsDigits)
	}
}

func TestPresentWithoutActiveCycle(t *testing.T) {
	got := Present(nil, 120)
	if got.Active || got.String() != "00:00" {
		t.Fatalf("expected inactive 00:00, got %+v", got)
	}
	if got.Progress() != 0 {
		t.Fatalf("expected zero progress, got %f", got.Progress())
	}
}

func TestPresentIsIdempotent(t *testing.T) {
	c := fiveMinuteCycle()
	a := Present(c, 42)
	b := Present(c, 42)
	if a != b {
		t.Fatalf("expected identical output, got %+v and %+v", a, b)
	}
}

func TestPresentRemainingIsMonotonic(t *testing.T) {
	c := &Cycle{ID: "c", Task: "t", MinutesAmount: 60, StartTime: time.Now(), Status: CycleStatusActive}
	prev := Present(c, 0).RemainingSeconds
	for elapsed := 1; elapsed <= 3700; elapsed += 7 {
		cur := Present(c, elapsed).RemainingSeconds
		if cur > prev {
			t.Fatalf("remaining increased at elapsed=%d: %d > %d", elapsed, cur, prev)
		}
		prev = cur
	}
	if prev != 0 {
		t.Fatalf("expected clamp at zero, got %d", prev)
	}
}

func TestPresentClampsAndFinishes(t *testing.T) {
	c := fiveMinuteCycle()
	got := Present(c, 301)
	if got.String() != "00:00" || !got.Finished() {
		t.Fatalf("expected finished 00:00, got %+v", got)
	}
	if got.Progress() != 1 {
		t.Fatalf("expected full progress, got %f", got.Progress())
	}
	if Present(c, -10).String() != "05:00" {
		t.Fatal("negative elapsed must be treated as zero")
	}
	if got := Present(&Cycle{MinutesAmount: 60}, 0).String(); got != "60:00" {
		t.Fatalf("expected 60:00, got %s", got)
	}
}

func TestElapsedSinceTruncates(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if got := ElapsedSince(start, start.Add(65*time.Second+900*time.Millisecond)); got != 65 {
		t.Fatalf("expected 65, got %d", got)
	}
	if got := ElapsedSince(start, start.Add(-time.Second)); got != 0 {
		t.Fatalf("expected 0 for clock skew, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(1500); got != "25:00" {
		t.Fatalf("expected 25:00, got %s", got)
	}
	if got := FormatDuration(-3); got != "00:00" {
		t.Fatalf("expected 00:00, got %s", got)
	}
}
