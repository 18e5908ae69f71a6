package clock

import (
	"sync"
	"time"
)

// Clock abstracts time retrieval so timestamps and file names are
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// Real returns the actual current time.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Stub returns a settable time. Safe for concurrent use.
type Stub struct {
	mu  sync.Mutex
	now time.Time
}

func NewStub(t time.Time) *Stub {
	return &Stub{now: t}
}

// Fixed returns a Stub set to 2024-01-15 10:30:00 UTC.
func Fixed() *Stub {
	return NewStub(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

func (c *Stub) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Stub) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Ticking returns a Stub-backed clock that advances by step after every read.
func Ticking(start time.Time, step time.Duration) Clock {
	return &ticking{c: NewStub(start), step: step}
}

type ticking struct {
	c    *Stub
	step time.Duration
}

func (t *ticking) Now() time.Time {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	now := t.c.now
	t.c.now = now.Add(t.step)
	return now
}
