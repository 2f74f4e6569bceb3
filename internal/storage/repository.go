package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Repository journals cycles. It is write-mostly: the running session never
// restores its state from it.
type Repository interface {
	CreateCycle(ctx context.Context, in CycleRecord) error
	GetCycle(ctx context.Context, id string) (CycleRecord, error)
	UpdateCycle(ctx context.Context, in CycleRecord) error
	ListCycles(ctx context.Context, filter CycleListFilter) ([]CycleRecord, error)
}
