package model

import "time"

// Theme names a colour palette.
type Theme string

const (
	ThemePurple Theme = "purple"
	ThemeBlue   Theme = "blue"
	ThemeGreen  Theme = "green"
	ThemeDark   Theme = "dark"
)

// Themes lists palettes in toggle order.
var Themes = []Theme{ThemePurple, ThemeBlue, ThemeGreen, ThemeDark}

// Sound presets understood by the sound package.
var SoundPresets = []string{
	"chime", "bell", "digital", "gentle", "bright",
	"deep", "crystal", "warm", "sharp", "melodic",
}

// FocusPresets are the quick focus durations offered next to the timer.
var FocusPresets = []time.Duration{15 * time.Minute, 25 * time.Minute, 45 * time.Minute}

// Settings contains user preferences. Durations are whole seconds.
// JSON keys match the persisted and exported document format.
type Settings struct {
	FocusSeconds         int    `json:"focusTime"`
	ShortBreakSeconds    int    `json:"shortBreak"`
	LongBreakSeconds     int    `json:"longBreak"`
	ManualBreakSeconds   int    `json:"manualBreakTime"`
	SoundEnabled         bool   `json:"soundEnabled"`
	DesktopNotifications bool   `json:"desktopNotifications"`
	AutoStartBreaks      bool   `json:"autoStartBreaks"`
	Theme                Theme  `json:"theme"`
	ReducedMotion        bool   `json:"reducedMotion"`
	SelectedSound        string `json:"selectedSound"`
}

// DefaultSettings returns the classic 25/5/15 cycle with a 10 minute manual break.
func DefaultSettings() Settings {
	return Settings{
		FocusSeconds:         25 * 60,
		ShortBreakSeconds:    5 * 60,
		LongBreakSeconds:     15 * 60,
		ManualBreakSeconds:   10 * 60,
		SoundEnabled:         true,
		DesktopNotifications: false,
		AutoStartBreaks:      true,
		Theme:                ThemePurple,
		ReducedMotion:        false,
		SelectedSound:        "chime",
	}
}

// Duration returns the configured length in seconds for mode.
func (settings Settings) Duration(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakSeconds
	case ModeLongBreak:
		return settings.LongBreakSeconds
	case ModeManualBreak:
		return settings.ManualBreakSeconds
	default:
		return settings.FocusSeconds
	}
}

// Normalize replaces unusable values with defaults.
func (settings Settings) Normalize() Settings {
	defaults := DefaultSettings()
	if settings.FocusSeconds <= 0 {
		settings.FocusSeconds = defaults.FocusSeconds
	}
	if settings.ShortBreakSeconds <= 0 {
		settings.ShortBreakSeconds = defaults.ShortBreakSeconds
	}
	if settings.LongBreakSeconds <= 0 {
		settings.LongBreakSeconds = defaults.LongBreakSeconds
	}
	if settings.ManualBreakSeconds <= 0 {
		settings.ManualBreakSeconds = defaults.ManualBreakSeconds
	}
	if !knownTheme(settings.Theme) {
		settings.Theme = defaults.Theme
	}
	if !knownSound(settings.SelectedSound) {
		settings.SelectedSound = defaults.SelectedSound
	}
	return settings
}

// NextTheme returns the palette after the current one, wrapping around.
func (settings Settings) NextTheme() Theme {
	for index, theme := range Themes {
		if theme == settings.Theme {
			return Themes[(index+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func knownTheme(theme Theme) bool {
	for _, candidate := range Themes {
		if candidate == theme {
			return true
		}
	}
	return false
}

func knownSound(name string) bool {
	for _, candidate := range SoundPresets {
		if candidate == name {
			return true
		}
	}
	return false
}
