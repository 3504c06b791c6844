package timezone

import (
	"sync"
	"time"
)

// Clock returns the current time. Use cases and stores take one so tests
// can pin "now".
type Clock func() time.Time

// Now is the system clock in UTC. Day buckets and timestamps are UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// Fixed returns a clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// OrSystem returns c, or the system clock when c is nil.
func OrSystem(c Clock) Clock {
	if c == nil {
		return Now
	}
	return c
}

// Manual is a settable clock, safe for concurrent readers.
type Manual struct {
	mu sync.Mutex
	t  time.Time
}

func NewManual(t time.Time) *Manual {
	return &Manual{t: t}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.t = m.t.Add(d)
}
