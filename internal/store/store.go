// Package store holds the cycles created during one process session and the
// pointer to the one currently counting down.
package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/cycletimer/internal/model"
)

type Option func(*Store)

// WithClock replaces time.Now for start and terminal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func(time.Time) string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

type Store struct {
	mu       sync.RWMutex
	cycles   []model.Cycle
	index    map[string]int
	activeID string
	now      func() time.Time
	newID    func(time.Time) string
}

func New(opts ...Option) *Store {
	s := &Store{
		index: make(map[string]int),
		now:   time.Now,
		newID: TimeOrderedID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TimeOrderedID returns a UUIDv7 string, falling back to the Unix
// millisecond timestamp when the random source fails.
func TimeOrderedID(at time.Time) string {
	id, err := uuid.NewV7()
	if err != nil {
		return strconv.FormatInt(at.UnixMilli(), 10)
	}
	return id.String()
}

// CreateCycle appends a cycle built from a validated request and makes it
// the active one. A cycle that was still active is marked interrupted.
func (s *Store) CreateCycle(req model.NewCycleRequest) model.Cycle {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.activeID != "" {
		s.finishActiveLocked(model.CycleStatusInterrupted, now)
	}

	id := s.newID(now)
	for suffix := 1; ; suffix++ {
		if _, taken := s.index[id]; !taken {
			break
		}
		id = s.newID(now) + "-" + strconv.Itoa(suffix)
	}

	c := model.Cycle{
		ID:            id,
		Task:          req.Task,
		MinutesAmount: req.MinutesAmount,
		StartTime:     now,
		Status:        model.CycleStatusActive,
	}
	s.index[c.ID] = len(s.cycles)
	s.cycles = append(s.cycles, c)
	s.activeID = c.ID
	return c
}

func (s *Store) ActiveCycle() (model.Cycle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return model.Cycle{}, false
	}
	i, ok := s.index[s.activeID]
	if !ok {
		return model.Cycle{}, false
	}
	return s.cycles[i], true
}

func (s *Store) ActiveCycleID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

func (s *Store) Get(id string) (model.Cycle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return model.Cycle{}, false
	}
	return s.cycles[i], true
}

// Cycles returns a copy of every cycle in creation order.
func (s *Store) Cycles() []model.Cycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Cycle, len(s.cycles))
	copy(out, s.cycles)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cycles)
}

func (s *Store) CompleteActive(at time.Time) (model.Cycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishActiveLocked(model.CycleStatusCompleted, at)
}

func (s *Store) InterruptActive(at time.Time) (model.Cycle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishActiveLocked(model.CycleStatusInterrupted, at)
}

func (s *Store) finishActiveLocked(status model.CycleStatus, at time.Time) (model.Cycle, bool) {
	if s.activeID == "" {
		return model.Cycle{}, false
	}
	i, ok := s.index[s.activeID]
	s.activeID = ""
	if !ok {
		return model.Cycle{}, false
	}
	if at.IsZero() {
		at = s.now()
	}
	c := s.cycles[i]
	c.Status = status
	switch status {
	case model.CycleStatusCompleted:
		c.FinishedAt = &at
	case model.CycleStatusInterrupted:
		c.InterruptedAt = &at
	}
	s.cycles[i] = c
	return c, true
}
