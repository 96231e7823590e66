package timekeeper

import (
	"fmt"

	"pomodoro/internal/core/model"
)

// ModeLabel returns the heading shown for mode.
func ModeLabel(mode model.Mode) string {
	switch mode {
	case model.ModeShortBreak:
		return "Short Break"
	case model.ModeLongBreak:
		return "Long Break"
	case model.ModeManualBreak:
		return "Manual Break"
	default:
		return "Focus Time"
	}
}

// ModeIcon returns the glyph used in session history.
func ModeIcon(mode model.Mode) string {
	switch mode {
	case model.ModeFocus:
		return "🍅"
	case model.ModeShortBreak:
		return "☕"
	default:
		return "🏖️"
	}
}

// Display formats the remaining time as MM:SS.
func Display(state State) string {
	remaining := max(state.RemainingSeconds, 0)
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}

// RemainingLabel is the caption under the countdown.
func RemainingLabel(state State) string {
	if state.RemainingSeconds == 1 {
		return "second remaining"
	}
	return "remaining"
}

// Progress returns the elapsed fraction of the current interval in [0, 1].
func Progress(state State, settings model.Settings) float64 {
	total := settings.Duration(state.Mode)
	if total <= 0 {
		return 1
	}
	progress := 1 - float64(state.RemainingSeconds)/float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// StatusLine summarises state for the tray menu.
func StatusLine(state State) string {
	status := fmt.Sprintf("%s %s", ModeLabel(state.Mode), Display(state))
	if state.Paused {
		status += " (paused)"
	}
	return status
}
