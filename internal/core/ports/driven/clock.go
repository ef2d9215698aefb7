package driven

import "time"

// Clock is the time source for timer-driven services.
// Production code uses the system clock; tests use a manually advanced fake.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f on its own goroutine once d has elapsed.
	// Fake implementations may call f synchronously while advancing.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from firing.
	// Returns false if the call already fired or was stopped.
	Stop() bool
}
