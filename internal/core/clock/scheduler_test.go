package clock

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitCall(t *testing.T, calls <-chan struct{}) {
	t.Helper()
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled call did not run")
	}
}

func TestTickerSchedulerAfter(t *testing.T) {
	fake := clockwork.NewFakeClock()
	scheduler := NewScheduler(fake)
	calls := make(chan struct{}, 1)

	scheduler.After(time.Second, func() { calls <- struct{}{} })
	fake.Advance(time.Second)

	waitCall(t, calls)
}

func TestTickerSchedulerAfterCancelled(t *testing.T) {
	fake := clockwork.NewFakeClock()
	scheduler := NewScheduler(fake)
	calls := make(chan struct{}, 1)

	cancel := scheduler.After(time.Second, func() { calls <- struct{}{} })
	cancel()
	cancel()
	fake.Advance(2 * time.Second)

	select {
	case <-calls:
		t.Fatal("cancelled call ran")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTickerSchedulerEvery(t *testing.T) {
	fake := clockwork.NewFakeClock()
	scheduler := NewScheduler(fake)
	calls := make(chan struct{}, 4)

	cancel := scheduler.Every(100*time.Millisecond, func() { calls <- struct{}{} })
	defer cancel()

	fake.Advance(100 * time.Millisecond)
	waitCall(t, calls)
	fake.Advance(100 * time.Millisecond)
	waitCall(t, calls)
}

func TestManualScheduler(t *testing.T) {
	scheduler := NewManualScheduler()
	ticks := 0
	fired := 0

	stopTicks := scheduler.Every(time.Second, func() { ticks++ })
	scheduler.After(500*time.Millisecond, func() { fired++ })
	cancelled := scheduler.After(time.Second, func() { fired += 10 })

	require.Equal(t, 1, scheduler.Repeating())
	require.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, scheduler.Pending())

	cancelled()
	scheduler.FireRepeating()
	scheduler.FireDeferred()
	scheduler.FireDeferred()
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 1, fired)
	assert.Empty(t, scheduler.Pending())

	stopTicks()
	scheduler.FireRepeating()
	assert.Equal(t, 1, ticks)
	assert.Zero(t, scheduler.Repeating())
}
