package storage

import (
	"time"

	"github.com/sandeepkv93/cycletimer/internal/model"
)

func FromCycle(c model.Cycle, createdAt time.Time) CycleRecord {
	return CycleRecord{
		ID:            c.ID,
		Task:          c.Task,
		MinutesAmount: c.MinutesAmount,
		StartTime:     c.StartTime,
		Status:        string(c.Status),
		FinishedAt:    c.FinishedAt,
		InterruptedAt: c.InterruptedAt,
		CreatedAt:     createdAt,
	}
}

// Cycle converts a journal row back to the domain type and validates it.
func (r CycleRecord) Cycle() (model.Cycle, error) {
	c := model.Cycle{
		ID:            r.ID,
		Task:          r.Task,
		MinutesAmount: r.MinutesAmount,
		StartTime:     r.StartTime,
		Status:        model.CycleStatus(r.Status),
		FinishedAt:    r.FinishedAt,
		InterruptedAt: r.InterruptedAt,
	}
	if err := c.Validate(); err != nil {
		return model.Cycle{}, err
	}
	return c, nil
}
