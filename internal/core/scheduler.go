package core

import (
	"sync"
	"time"
)

// Scheduler is a cancellable periodic task source. Start arms it, C delivers
// one value per period while armed and Stop disarms it. Stop is idempotent and
// Start after Stop restarts the period from zero.
type Scheduler interface {
	Start(interval time.Duration)
	C() <-chan time.Time
	Stop()
}

// Ticker is the wall-clock Scheduler backed by time.Ticker.
type Ticker struct {
	mu     sync.Mutex
	ticker *time.Ticker
	c      chan time.Time
	done   chan struct{}
	exited chan struct{}
}

// NewTicker returns a disarmed Ticker.
func NewTicker() *Ticker {
	return &Ticker{c: make(chan time.Time)}
}

// Start arms the ticker, replacing any previous period.
func (t *Ticker) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.ticker = time.NewTicker(interval)
	t.done = make(chan struct{})
	t.exited = make(chan struct{})
	go forward(t.ticker.C, t.c, t.done, t.exited)
}

// C returns the tick channel. It stays valid across Start/Stop cycles.
func (t *Ticker) C() <-chan time.Time { return t.c }

// Stop disarms the ticker.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Ticker) stopLocked() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	close(t.done)
	<-t.exited
	t.ticker = nil
	t.done = nil
	t.exited = nil
}

func forward(src <-chan time.Time, dst chan<- time.Time, done <-chan struct{}, exited chan<- struct{}) {
	defer close(exited)
	for {
		select {
		case <-done:
			return
		case now := <-src:
			select {
			case dst <- now:
			case <-done:
				return
			}
		}
	}
}

// ManualScheduler is a Scheduler driven by explicit Fire calls.
type ManualScheduler struct {
	mu       sync.Mutex
	c        chan time.Time
	running  bool
	interval time.Duration
	starts   int
}

// NewManualScheduler returns a disarmed ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{c: make(chan time.Time)}
}

// Start arms the scheduler and records the interval.
func (m *ManualScheduler) Start(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = true
	m.interval = interval
	m.starts++
}

// C returns the tick channel.
func (m *ManualScheduler) C() <-chan time.Time { return m.c }

// Stop disarms the scheduler.
func (m *ManualScheduler) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
}

// Running reports whether the scheduler is armed.
func (m *ManualScheduler) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Starts returns how many times Start has been called.
func (m *ManualScheduler) Starts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.starts
}

// Interval returns the interval passed to the last Start.
func (m *ManualScheduler) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// Fire delivers one tick and blocks until the consumer receives it.
func (m *ManualScheduler) Fire() {
	m.c <- time.Now()
}
