// Package notify announces finished sessions through sound, desktop
// notifications and the in-app banner.
package notify

import (
	"log/slog"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/model"
)

// Sender delivers desktop notifications. fyne.App satisfies it.
type Sender interface {
	SendNotification(*fyne.Notification)
}

// Player plays a named chime.
type Player interface {
	Play(name string) error
}

// Message is the text announced when a session ends.
type Message struct {
	Mode  model.Mode
	Title string
	Body  string
}

// MessageFor returns the announcement for a finished session of mode.
func MessageFor(mode model.Mode) Message {
	if mode == model.ModeFocus {
		return Message{Mode: mode, Title: "Focus session complete!", Body: "Great job! Time for a break."}
	}
	return Message{Mode: mode, Title: "Break time is over!", Body: "Ready for another focus session?"}
}

// Dispatcher fans a completion out to every enabled channel.
type Dispatcher struct {
	settings func() model.Settings
	player   Player
	sender   Sender
	banner   func(Message)
	logger   *slog.Logger
}

// Options wires a Dispatcher. Nil channels are skipped.
type Options struct {
	Settings func() model.Settings
	Player   Player
	Sender   Sender
	Banner   func(Message)
	Logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(options Options) *Dispatcher {
	settings := options.Settings
	if settings == nil {
		settings = model.DefaultSettings
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		settings: settings,
		player:   options.Player,
		sender:   options.Sender,
		banner:   options.Banner,
		logger:   logger,
	}
}

// Notify announces that a session of mode finished. Failures are logged.
func (dispatcher *Dispatcher) Notify(mode model.Mode) {
	settings := dispatcher.settings()
	message := MessageFor(mode)

	if settings.SoundEnabled && dispatcher.player != nil {
		if err := dispatcher.player.Play(settings.SelectedSound); err != nil {
			dispatcher.logger.Warn("play chime", "sound", settings.SelectedSound, "error", err)
		}
	}
	if settings.DesktopNotifications && dispatcher.sender != nil {
		dispatcher.sender.SendNotification(fyne.NewNotification(message.Title, message.Body))
	}
	if dispatcher.banner != nil {
		dispatcher.banner(message)
	}
}
