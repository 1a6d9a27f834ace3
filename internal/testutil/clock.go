// Package testutil provides deterministic fixtures for tests: a movable
// fixed-date clock so renders and classifications are reproducible.
package testutil

import (
	"sync"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// Clock is a thread-safe fixed-date clock for tests.
//
// Unlike the wall clock, Clock only moves when told to, so the same
// scenario renders identically on every run. Advance simulates days
// passing, which is how tests drive classification drift (a task that
// was on-track on Monday may be overbooked by Wednesday).
type Clock struct {
	mu    sync.Mutex
	today time.Time
}

// NewClock creates a clock fixed at the given date, normalized to UTC
// midnight.
func NewClock(today time.Time) *Clock {
	return &Clock{today: plan.DateOf(today)}
}

// Now returns the clock's current date. Pass this method as the engine's
// today function.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.today
}

// Advance moves the clock forward (or backward, with a negative count)
// by whole days.
func (c *Clock) Advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = plan.AddDays(c.today, days)
}

// Set pins the clock to a specific date. Used for test reuse.
func (c *Clock) Set(today time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = plan.DateOf(today)
}
