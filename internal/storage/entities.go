package storage

import "time"

type CycleRecord struct {
	ID            string
	Task          string
	MinutesAmount int
	StartTime     time.Time
	Status        string
	FinishedAt    *time.Time
	InterruptedAt *time.Time
	CreatedAt     time.Time
}

type CycleListFilter struct {
	Status string
	Since  *time.Time
	Limit  int
	Offset int
}
