package poller

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTarget = errors.New("poller: invalid target")
	ErrClosed        = errors.New("poller: closed")
)

type State string

const (
	StateIdle    State = "idle"
	StateTicking State = "ticking"
)

// Target identifies the cycle whose elapsed time is being polled.
type Target struct {
	CycleID      string
	StartTime    time.Time
	TotalSeconds int
}

type Tick struct {
	CycleID        string
	ElapsedSeconds int
	Done           bool
}

type Config struct {
	Interval time.Duration
	Buffer   int
	Now      func() time.Time
}

// run is the handle for one acquired timer. It is released exactly once.
type run struct {
	target Target
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

func (r *run) cancel() {
	r.once.Do(func() { close(r.stopCh) })
	<-r.doneCh
}

func (r *run) finished() bool {
	select {
	case <-r.doneCh:
		return true
	default:
		return false
	}
}

type Poller struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	out      chan Tick
	current  *run
	closed   bool
	dropped  uint64
}

func New(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Poller{
		interval: cfg.Interval,
		now:      cfg.Now,
		out:      make(chan Tick, cfg.Buffer),
	}
}

func (p *Poller) C() <-chan Tick {
	return p.out
}

// Start releases any running timer and acquires a new one for target.
func (p *Poller) Start(target Target) error {
	if target.CycleID == "" || target.StartTime.IsZero() || target.TotalSeconds <= 0 {
		return ErrInvalidTarget
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.current != nil {
		p.current.cancel()
	}
	r := &run{
		target: target,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	p.current = r
	go p.loop(r)
	return nil
}

// Stop releases the running timer, if any, and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.current.cancel()
		p.current = nil
	}
}

// Close stops the poller for good and closes C.
func (p *Poller) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.current != nil {
		p.current.cancel()
		p.current = nil
	}
	p.closed = true
	close(p.out)
}

func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.finished() {
		return StateIdle
	}
	return StateTicking
}

// CycleID reports the cycle the running timer belongs to.
func (p *Poller) CycleID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.finished() {
		return ""
	}
	return p.current.target.CycleID
}

func (p *Poller) Dropped() uint64 {
	return atomic.LoadUint64(&p.dropped)
}

func (p *Poller) loop(r *run) {
	defer close(r.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if p.emit(r) {
			return
		}
		select {
		case <-ticker.C:
		case <-r.stopCh:
			return
		}
	}
}

// emit publishes the current elapsed time and reports whether the run ended.
func (p *Poller) emit(r *run) bool {
	elapsed := p.now().Sub(r.target.StartTime)
	secs := 0
	if elapsed > 0 {
		secs = int(elapsed / time.Second)
	}
	tick := Tick{CycleID: r.target.CycleID, ElapsedSeconds: secs}
	if secs >= r.target.TotalSeconds {
		tick.Done = true
		select {
		case p.out <- tick:
		case <-r.stopCh:
		}
		return true
	}
	select {
	case p.out <- tick:
	default:
		atomic.AddUint64(&p.dropped, 1)
	}
	return false
}
