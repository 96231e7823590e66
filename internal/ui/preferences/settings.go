package preferences

import (
	"math"
	"strconv"
	"strings"

	"pomodoro/internal/core/model"
)

// maxMinutes bounds every duration field.
const maxMinutes = 180

// durationField binds one minutes entry to a Settings field.
type durationField struct {
	label string
	get   func(model.Settings) int
	set   func(*model.Settings, int)
}

var durationFields = []durationField{
	{
		label: "Focus",
		get:   func(settings model.Settings) int { return settings.FocusSeconds },
		set:   func(settings *model.Settings, seconds int) { settings.FocusSeconds = seconds },
	},
	{
		label: "Short break",
		get:   func(settings model.Settings) int { return settings.ShortBreakSeconds },
		set:   func(settings *model.Settings, seconds int) { settings.ShortBreakSeconds = seconds },
	},
	{
		label: "Long break",
		get:   func(settings model.Settings) int { return settings.LongBreakSeconds },
		set:   func(settings *model.Settings, seconds int) { settings.LongBreakSeconds = seconds },
	},
	{
		label: "Manual break",
		get:   func(settings model.Settings) int { return settings.ManualBreakSeconds },
		set:   func(settings *model.Settings, seconds int) { settings.ManualBreakSeconds = seconds },
	},
}

// minutesText renders seconds as minutes, keeping fractions such as 1.5.
func minutesText(seconds int) string {
	return strconv.FormatFloat(float64(seconds)/60, 'f', -1, 64)
}

// parseMinutes converts a minutes entry to whole seconds.
func parseMinutes(value string) (int, bool) {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(minutes) || minutes <= 0 || minutes > maxMinutes {
		return 0, false
	}
	seconds := int(math.Round(minutes * 60))
	return seconds, seconds > 0
}
