// Package clock provides the monotonic time source and stopwatch that pace
// the simulation loop.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current time. Implementations must carry a monotonic
// reading so elapsed times are immune to wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

// System is the real clock. time.Now carries a monotonic reading, and
// Sub between two such values ignores wall-clock jumps.
type System struct{}

// Now returns the current time with monotonic clock reading.
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a controllable clock for tests and single-stepping.
type Manual struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewManual creates a manual clock starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{currentTime: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the clock forward by d. Negative durations are ignored so
// the clock never runs backwards.
func (m *Manual) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// AdvanceSeconds moves the clock forward by a fractional number of seconds.
func (m *Manual) AdvanceSeconds(s float64) {
	m.Advance(time.Duration(s * float64(time.Second)))
}
