package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

var RealClockProvider = sync.OnceValue(func() Clock {
	return &RealClock{}
})

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always reports the same instant. Used by tests that assert on
// timestamps stamped by the application.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
