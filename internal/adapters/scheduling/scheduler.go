// Package scheduling provides the Scheduler implementations used to simulate
// analysis latency.
package scheduling

import (
	"time"

	"github.com/carecompass/backend/internal/domain/providers"
)

// TimerScheduler fires callbacks on the runtime timer.
type TimerScheduler struct{}

// NewTimerScheduler returns a scheduler backed by time.AfterFunc.
func NewTimerScheduler() providers.Scheduler {
	return TimerScheduler{}
}

// After runs fn on its own goroutine once d has elapsed. A non-positive d
// still runs fn asynchronously.
func (TimerScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	time.AfterFunc(d, fn)
}

// ImmediateScheduler runs callbacks synchronously, ignoring the delay.
type ImmediateScheduler struct{}

// NewImmediateScheduler returns a scheduler with no latency.
func NewImmediateScheduler() providers.Scheduler {
	return ImmediateScheduler{}
}

// After calls fn before returning.
func (ImmediateScheduler) After(_ time.Duration, fn func()) {
	fn()
}

// ForDelay picks the timer scheduler for a positive delay and the immediate
// one otherwise.
func ForDelay(d time.Duration) providers.Scheduler {
	if d > 0 {
		return NewTimerScheduler()
	}
	return NewImmediateScheduler()
}
