package game

import "time"

// DateLayout is the calendar-day key format used by every persisted
// record and by digit generation.
const DateLayout = "2006-01-02"

// Clock reports the current calendar day.
//
// The session re-reads the clock immediately before every write instead of
// caching the date: a process left idle over midnight must roll over to
// the new puzzle, not keep writing against a stale key.
type Clock interface {
	Today() string
}

// WallClock is the production clock: the machine's local calendar day.
type WallClock struct{}

// Today returns the current local date as "YYYY-MM-DD".
func (WallClock) Today() string {
	return time.Now().Format(DateLayout)
}
