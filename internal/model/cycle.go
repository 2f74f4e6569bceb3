package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidStatus = errors.New("model: invalid cycle status")

type CycleStatus string

const (
	CycleStatusActive      CycleStatus = "active"
	CycleStatusCompleted   CycleStatus = "completed"
	CycleStatusInterrupted CycleStatus = "interrupted"
)

func (s CycleStatus) IsValid() bool {
	switch s {
	case CycleStatusActive, CycleStatusCompleted, CycleStatusInterrupted:
		return true
	default:
		return false
	}
}

// Cycle is one planned block of work on a task. ID, Task, MinutesAmount and
// StartTime are fixed at creation; only the status fields move.
type Cycle struct {
	ID            string
	Task          string
	MinutesAmount int
	StartTime     time.Time
	Status        CycleStatus
	FinishedAt    *time.Time
	InterruptedAt *time.Time
}

func (c Cycle) TotalSeconds() int {
	return c.MinutesAmount * 60
}

func (c Cycle) EndsAt() time.Time {
	return c.StartTime.Add(time.Duration(c.TotalSeconds()) * time.Second)
}

func (c Cycle) IsActive() bool {
	return c.Status == CycleStatusActive
}

func (c Cycle) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("model: cycle id is required")
	}
	if strings.TrimSpace(c.Task) == "" {
		return errors.New("model: cycle task is required")
	}
	if c.MinutesAmount < MinMinutes || c.MinutesAmount > MaxMinutes {
		return fmt.Errorf("model: cycle minutes %d outside [%d,%d]", c.MinutesAmount, MinMinutes, MaxMinutes)
	}
	if c.StartTime.IsZero() {
		return errors.New("model: cycle start_time is required")
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	if c.Status == CycleStatusCompleted && c.FinishedAt == nil {
		return errors.New("model: finished_at is required when cycle is completed")
	}
	if c.Status != CycleStatusCompleted && c.FinishedAt != nil {
		return errors.New("model: finished_at must be nil unless cycle is completed")
	}
	if c.Status == CycleStatusInterrupted && c.InterruptedAt == nil {
		return errors.New("model: interrupted_at is required when cycle is interrupted")
	}
	if c.Status != CycleStatusInterrupted && c.InterruptedAt != nil {
		return errors.New("model: interrupted_at must be nil unless cycle is interrupted")
	}
	return nil
}
