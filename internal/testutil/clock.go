// Package testutil provides deterministic test doubles for the game's
// ambient inputs.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Clock is a settable calendar-day clock for tests.
//
// Unlike the wall clock it never moves on its own, so a test can hold a
// session on one day, advance across midnight explicitly, and assert the
// rollover behavior.
//
// Thread-safety: all methods are safe for concurrent use via an internal
// mutex, matching the production clock's freedom from data races.
type Clock struct {
	mu   sync.Mutex
	date string
}

// NewClock creates a clock pinned to the given "YYYY-MM-DD" date.
// Panics on a malformed date: that is a broken test, not a runtime case.
func NewClock(date string) *Clock {
	if _, err := time.Parse(dateLayout, date); err != nil {
		panic(fmt.Sprintf("testutil.NewClock: bad date %q: %v", date, err))
	}
	return &Clock{date: date}
}

// Today returns the pinned date.
func (c *Clock) Today() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.date
}

// Set pins the clock to a new date.
func (c *Clock) Set(date string) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		panic(fmt.Sprintf("testutil.(*Clock).Set: bad date %q: %v", date, err))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.date = date
}

// Advance moves the clock forward by n calendar days.
func (c *Clock) Advance(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, err := time.Parse(dateLayout, c.date)
	if err != nil {
		panic(fmt.Sprintf("testutil.(*Clock).Advance: bad stored date %q: %v", c.date, err))
	}
	c.date = t.AddDate(0, 0, n).Format(dateLayout)
}
