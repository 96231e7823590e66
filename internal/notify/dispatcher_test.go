package notify

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

type fakePlayer struct {
	played []string
	err    error
}

func (player *fakePlayer) Play(name string) error {
	player.played = append(player.played, name)
	return player.err
}

type fakeSender struct {
	sent []*fyne.Notification
}

func (sender *fakeSender) SendNotification(notification *fyne.Notification) {
	sender.sent = append(sender.sent, notification)
}

func TestNotifyChannels(t *testing.T) {
	tests := []struct {
		name          string
		sound         bool
		notifications bool
		wantPlayed    int
		wantSent      int
	}{
		{name: "defaults", sound: true, wantPlayed: 1},
		{name: "everything", sound: true, notifications: true, wantPlayed: 1, wantSent: 1},
		{name: "silent", notifications: true, wantSent: 1},
		{name: "banner only"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := model.DefaultSettings()
			settings.SoundEnabled = tt.sound
			settings.DesktopNotifications = tt.notifications
			settings.SelectedSound = "warm"

			player := &fakePlayer{}
			sender := &fakeSender{}
			var banners []Message
			dispatcher := NewDispatcher(Options{
				Settings: func() model.Settings { return settings },
				Player:   player,
				Sender:   sender,
				Banner:   func(message Message) { banners = append(banners, message) },
			})

			dispatcher.Notify(model.ModeFocus)

			assert.Len(t, player.played, tt.wantPlayed)
			if tt.wantPlayed > 0 {
				assert.Equal(t, "warm", player.played[0])
			}
			require.Len(t, sender.sent, tt.wantSent)
			if tt.wantSent > 0 {
				assert.Equal(t, "Focus session complete!", sender.sent[0].Title)
				assert.Equal(t, "Great job! Time for a break.", sender.sent[0].Content)
			}
			assert.Len(t, banners, 1)
		})
	}
}

func TestNotifySurvivesPlaybackFailure(t *testing.T) {
	player := &fakePlayer{err: errors.New("device busy")}
	var banners []Message
	dispatcher := NewDispatcher(Options{
		Player: player,
		Banner: func(message Message) { banners = append(banners, message) },
	})

	dispatcher.Notify(model.ModeShortBreak)

	assert.Len(t, player.played, 1)
	require.Len(t, banners, 1)
	assert.Equal(t, "Break time is over!", banners[0].Title)
}

func TestMessageFor(t *testing.T) {
	for _, mode := range []model.Mode{model.ModeShortBreak, model.ModeLongBreak, model.ModeManualBreak} {
		assert.Equal(t, "Ready for another focus session?", MessageFor(mode).Body)
	}
}
