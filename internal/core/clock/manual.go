package clock

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler records scheduled calls and runs them only when asked.
// It lets tests drive the timer engine step by step.
type ManualScheduler struct {
	mu       sync.Mutex
	nextID   int
	repeats  map[int]func()
	deferred map[int]deferredCall
}

type deferredCall struct {
	delay time.Duration
	fn    func()
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		repeats:  make(map[int]func()),
		deferred: make(map[int]deferredCall),
	}
}

// Every registers fn as a repeating call.
func (scheduler *ManualScheduler) Every(_ time.Duration, fn func()) Cancel {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.nextID++
	id := scheduler.nextID
	scheduler.repeats[id] = fn
	return func() {
		scheduler.mu.Lock()
		delete(scheduler.repeats, id)
		scheduler.mu.Unlock()
	}
}

// After registers fn as a pending one-shot call.
func (scheduler *ManualScheduler) After(delay time.Duration, fn func()) Cancel {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.nextID++
	id := scheduler.nextID
	scheduler.deferred[id] = deferredCall{delay: delay, fn: fn}
	return func() {
		scheduler.mu.Lock()
		delete(scheduler.deferred, id)
		scheduler.mu.Unlock()
	}
}

// Repeating returns the number of active repeating calls.
func (scheduler *ManualScheduler) Repeating() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.repeats)
}

// Pending returns the delays of the one-shot calls not yet run or cancelled.
func (scheduler *ManualScheduler) Pending() []time.Duration {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	delays := make([]time.Duration, 0, len(scheduler.deferred))
	for _, call := range scheduler.deferred {
		delays = append(delays, call.delay)
	}
	sort.Slice(delays, func(i, j int) bool { return delays[i] < delays[j] })
	return delays
}

// FireRepeating runs every active repeating call once.
func (scheduler *ManualScheduler) FireRepeating() {
	for _, fn := range scheduler.snapshotRepeats() {
		fn()
	}
}

// FireDeferred runs and removes all pending one-shot calls.
func (scheduler *ManualScheduler) FireDeferred() {
	scheduler.mu.Lock()
	ids := make([]int, 0, len(scheduler.deferred))
	for id := range scheduler.deferred {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	calls := make([]func(), 0, len(ids))
	for _, id := range ids {
		calls = append(calls, scheduler.deferred[id].fn)
		delete(scheduler.deferred, id)
	}
	scheduler.mu.Unlock()

	for _, fn := range calls {
		fn()
	}
}

func (scheduler *ManualScheduler) snapshotRepeats() []func() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	ids := make([]int, 0, len(scheduler.repeats))
	for id := range scheduler.repeats {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	calls := make([]func(), 0, len(ids))
	for _, id := range ids {
		calls = append(calls, scheduler.repeats[id])
	}
	return calls
}
