// Package clock abstracts time for the scheduler so tests can drive timers
// deterministically.
package clock

import "time"

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. Reports whether the call
	// stopped the timer before it fired.
	Stop() bool
}

// Clock provides the current time and callback scheduling.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run in its own goroutine after d.
	AfterFunc(d time.Duration, fn func()) Timer
}

// System is the real clock backed by the time package.
type System struct{}

// NewSystem creates the real clock.
func NewSystem() System {
	return System{}
}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc delegates to time.AfterFunc.
func (System) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
