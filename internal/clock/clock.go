// internal/clock/clock.go

// Package clock abstracts wall time and blocking waits so pacing can
// be simulated in tests.
package clock

import "time"

// Clock supplies timestamps and blocking waits.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real is the system clock.
type Real struct{}

func (Real) Now() time.Time        { return time.Now() }
func (Real) Sleep(d time.Duration) { time.Sleep(d) }
