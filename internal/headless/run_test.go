package headless

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/cycletimer/internal/model"
	"github.com/sandeepkv93/cycletimer/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances by step on every reading.
type steppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

type memJournal struct {
	mu      sync.Mutex
	created []storage.CycleRecord
	updated []storage.CycleRecord
}

func (j *memJournal) CreateCycle(_ context.Context, in storage.CycleRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.created = append(j.created, in)
	return nil
}

func (j *memJournal) GetCycle(context.Context, string) (storage.CycleRecord, error) {
	return storage.CycleRecord{}, storage.ErrNotFound
}

func (j *memJournal) UpdateCycle(_ context.Context, in storage.CycleRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.updated = append(j.updated, in)
	return nil
}

func (j *memJournal) ListCycles(context.Context, storage.CycleListFilter) ([]storage.CycleRecord, error) {
	return nil, nil
}

func TestRunCompletesCycle(t *testing.T) {
	clk := &steppingClock{now: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC), step: 30 * time.Second}
	journal := &memJournal{}
	var out bytes.Buffer

	c, err := Run(context.Background(), &out, "Projeto 1", "5", Options{
		Interval: time.Millisecond,
		Now:      clk.Now,
		Journal:  journal,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CycleStatusCompleted, c.Status)
	require.NotNil(t, c.FinishedAt)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "complete: Projeto 1", lines[len(lines)-1])
	assert.Equal(t, "00:00 Projeto 1", lines[len(lines)-2])

	require.Len(t, journal.created, 1)
	require.Len(t, journal.updated, 1)
	assert.Equal(t, "active", journal.created[0].Status)
	assert.Equal(t, "completed", journal.updated[0].Status)
}

func TestRunInterruptedByContext(t *testing.T) {
	clk := &steppingClock{now: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	c, err := Run(ctx, &out, "banana", "25", Options{Interval: time.Millisecond, Now: clk.Now, Interactive: true})
	require.NoError(t, err)
	assert.Equal(t, model.CycleStatusInterrupted, c.Status)
	assert.Contains(t, out.String(), "interrupted: banana")
}

func TestRunRejectsInvalidRequest(t *testing.T) {
	var out bytes.Buffer
	_, err := Run(context.Background(), &out, "", "3", Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidRequest))

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Empty(t, out.String())
}
