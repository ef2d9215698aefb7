// Package clock provides driven.Clock implementations: the system clock for
// production and a manually advanced fake for deterministic tests.
package clock

import (
	"time"

	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clock = System{}

// System is the wall clock.
type System struct{}

// New returns the system clock.
func New() System {
	return System{}
}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}

// AfterFunc wraps time.AfterFunc.
func (System) AfterFunc(d time.Duration, f func()) driven.Timer {
	return time.AfterFunc(d, f)
}
