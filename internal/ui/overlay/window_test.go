package overlay

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
	"pomodoro/internal/notify"
)

func TestBannerAutoHides(t *testing.T) {
	test.NewTempApp(t)
	fake := clockwork.NewFakeClock()
	banner := NewBanner(fake)
	assert.False(t, banner.Visible())

	banner.Show(notify.MessageFor(model.ModeFocus), true)
	assert.True(t, banner.Visible())
	assert.Equal(t, "Focus session complete!", banner.body.Text)
	assert.InDelta(t, 1, banner.Alpha(), 0.01)

	fake.Advance(AutoHide - time.Second)
	assert.True(t, banner.Visible())

	fake.Advance(time.Second)
	assert.Eventually(t, func() bool { return !banner.Visible() }, time.Second, 5*time.Millisecond)
}

func TestBannerReshowRestartsTimer(t *testing.T) {
	test.NewTempApp(t)
	fake := clockwork.NewFakeClock()
	banner := NewBanner(fake)

	banner.Show(notify.MessageFor(model.ModeFocus), true)
	fake.Advance(4 * time.Second)
	banner.Show(notify.MessageFor(model.ModeShortBreak), true)
	fake.Advance(4 * time.Second)

	assert.True(t, banner.Visible())
	assert.Equal(t, "Break time is over!", banner.body.Text)
}

func TestBannerPulses(t *testing.T) {
	test.NewTempApp(t)
	banner := NewBanner(clockwork.NewFakeClock())

	banner.Show(notify.MessageFor(model.ModeFocus), false)
	assert.True(t, banner.engine.Running())

	banner.Hide()
	assert.False(t, banner.engine.Running())
	assert.False(t, banner.Visible())
	assert.InDelta(t, 1, banner.Alpha(), 0.01)
}
