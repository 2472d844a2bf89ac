// Package clock abstracts time so simulated latency can run on a fake clock.
package clock

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock provides the current time and blocking sleeps.
type Clock = clockwork.Clock

// Fake is a manually advanced clock. Sleep blocks until Advance moves the
// clock to or past the sleeper's deadline.
type Fake interface {
	Clock
	Advance(d time.Duration)
	BlockUntil(sleepers int)
}

// Real returns the wall clock.
func Real() Clock {
	return clockwork.NewRealClock()
}

// NewFake returns a fake clock starting at start.
func NewFake(start time.Time) Fake {
	return clockwork.NewFakeClockAt(start)
}
