// Package timeutil provides time-related utilities for testability and convenience.
package timeutil

import (
	"sync"
	"time"
)

// Clock provides an abstraction over time.Now() and time.NewTicker for testability.
// Use RealClock in production and MockClock in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// NewTicker returns a ticker that fires every d.
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on a channel until stopped.
type Ticker interface {
	// C returns the channel on which ticks are delivered.
	C() <-chan time.Time

	// Stop turns the ticker off. No more ticks are delivered afterwards.
	Stop()
}

// RealClock uses the actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock instance.
func NewRealClock() *RealClock {
	return &RealClock{}
}

// Now returns the current system time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker.
func (RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// MockClock returns a controllable time for testing.
// Tickers created from it fire only when the clock is advanced.
type MockClock struct {
	mu        sync.Mutex
	fixedTime time.Time
	tickers   []*MockTicker
}

// NewMockClock creates a mock clock with the given fixed time.
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{fixedTime: t}
}

// NewMockClockFromString creates a mock clock from an RFC3339 time string.
// Panics if the time string is invalid (for use in tests only).
func NewMockClockFromString(timeStr string) *MockClock {
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		panic("invalid time string: " + err.Error())
	}
	return NewMockClock(t)
}

// Now returns the fixed time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixedTime
}

// Set sets the mock clock to a specific time without firing tickers.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixedTime = t
}

// NewTicker creates a ticker driven by Advance.
func (m *MockClock) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("timeutil: non-positive interval for NewTicker")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := &MockTicker{
		c:        make(chan time.Time, 1),
		interval: d,
		next:     m.fixedTime.Add(d),
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Advance moves the mock clock forward by the given duration and fires every
// ticker whose deadline has passed. Like time.Ticker, a tick is dropped when
// the previous one has not been received yet.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fixedTime = m.fixedTime.Add(d)

	active := m.tickers[:0]
	for _, t := range m.tickers {
		if t.stopped() {
			continue
		}
		for !t.next.After(m.fixedTime) {
			select {
			case t.c <- t.next:
			default:
			}
			t.next = t.next.Add(t.interval)
		}
		active = append(active, t)
	}
	m.tickers = active
}

// ActiveTickers returns the number of tickers that have not been stopped.
func (m *MockClock) ActiveTickers() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.tickers {
		if !t.stopped() {
			n++
		}
	}
	return n
}

// MockTicker is a Ticker fired by MockClock.Advance.
type MockTicker struct {
	c        chan time.Time
	interval time.Duration
	next     time.Time

	mu   sync.Mutex
	done bool
}

// C returns the tick channel.
func (t *MockTicker) C() <-chan time.Time { return t.c }

// Stop turns the ticker off.
func (t *MockTicker) Stop() {
	t.mu.Lock()
	t.done = true
	t.mu.Unlock()
}

func (t *MockTicker) stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Ensure interfaces are implemented.
var (
	_ Clock  = (*RealClock)(nil)
	_ Clock  = (*MockClock)(nil)
	_ Ticker = (*realTicker)(nil)
	_ Ticker = (*MockTicker)(nil)
)
