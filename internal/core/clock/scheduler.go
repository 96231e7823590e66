// Package clock provides the wall-clock source and the cancellable
// repeating and one-shot calls the timer engine runs on.
package clock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Clock reads wall-clock time.
type Clock interface {
	Now() time.Time
}

// Cancel stops a scheduled call. Calling it more than once is harmless.
type Cancel func()

// Scheduler runs callbacks later.
type Scheduler interface {
	// Every calls fn on each interval until cancelled.
	Every(interval time.Duration, fn func()) Cancel
	// After calls fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Cancel
}

// System returns the real wall clock.
func System() clockwork.Clock {
	return clockwork.NewRealClock()
}

// TickerScheduler schedules on a clockwork.Clock.
type TickerScheduler struct {
	clock clockwork.Clock
}

// NewScheduler creates a scheduler driven by clock.
func NewScheduler(clock clockwork.Clock) *TickerScheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TickerScheduler{clock: clock}
}

// Every starts a ticker goroutine for fn.
func (scheduler *TickerScheduler) Every(interval time.Duration, fn func()) Cancel {
	ticker := scheduler.clock.NewTicker(interval)
	stopCh := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.Chan():
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopCh) })
	}
}

// After arms a one-shot timer for fn.
func (scheduler *TickerScheduler) After(delay time.Duration, fn func()) Cancel {
	timer := scheduler.clock.AfterFunc(delay, fn)
	return func() {
		timer.Stop()
	}
}
