package clock

import "time"

// Stopwatch measures elapsed seconds since its last restart.
type Stopwatch struct {
	clock Clock
	start time.Time
}

// NewStopwatch creates a stopwatch on the given clock, started now.
// A nil clock selects the system clock.
func NewStopwatch(c Clock) *Stopwatch {
	if c == nil {
		c = System{}
	}
	sw := &Stopwatch{clock: c}
	sw.Restart()
	return sw
}

// Restart resets the reference point to now.
func (s *Stopwatch) Restart() {
	s.start = s.clock.Now()
}

// Time returns the seconds elapsed since the last restart.
// The result is never negative.
func (s *Stopwatch) Time() float64 {
	elapsed := s.clock.Now().Sub(s.start).Seconds()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
