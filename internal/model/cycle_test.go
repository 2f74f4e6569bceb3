package model

import (
	"errors"
	"testing"
	"time"
)

func TestCycleValidateSuccess(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	c := Cycle{
		ID:            "cycle-1",
		Task:          "Projeto 1",
		MinutesAmount: 25,
		StartTime:     start,
		Status:        CycleStatusActive,
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid cycle, got error: %v", err)
	}
	if c.TotalSeconds() != 1500 {
		t.Fatalf("expected 1500 total seconds, got %d", c.TotalSeconds())
	}
	if !c.EndsAt().Equal(start.Add(25 * time.Minute)) {
		t.Fatalf("unexpected end: %s", c.EndsAt())
	}
}

func TestCycleValidateTerminalTimestamps(t *testing.T) {
	start := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	c := Cycle{
		ID:            "cycle-1",
		Task:          "banana",
		MinutesAmount: 5,
		StartTime:     start,
		Status:        CycleStatusCompleted,
	}
	err := c.Validate()
	if err == nil || err.Error() != "model: finished_at is required when cycle is completed" {
		t.Fatalf("unexpected error: %v", err)
	}

	finished := start.Add(5 * time.Minute)
	c.FinishedAt = &finished
	if err := c.Validate(); err != nil {
		t.Fatalf("expected completed cycle to validate, got %v", err)
	}

	c.Status = CycleStatusInterrupted
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for interrupted cycle carrying finished_at")
	}
	c.FinishedAt = nil
	c.InterruptedAt = &finished
	if err := c.Validate(); err != nil {
		t.Fatalf("expected interrupted cycle to validate, got %v", err)
	}
}

func TestCycleValidateInvalidStatus(t *testing.T) {
	c := Cycle{
		ID:            "cycle-1",
		Task:          "x",
		MinutesAmount: 10,
		StartTime:     time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		Status:        CycleStatus("paused"),
	}
	if err := c.Validate(); err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}
