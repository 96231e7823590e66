package animation

import "time"

// Config contains pulse timing values.
type Config struct {
	// Period is one full fade out and back in.
	Period time.Duration
	// Frames is the number of updates per period.
	Frames int
	// MinAlpha and MaxAlpha bound the opacity in [0, 1].
	MinAlpha float64
	MaxAlpha float64
}

// FrameInterval is the delay between two updates.
func (config Config) FrameInterval() time.Duration {
	if config.Frames <= 0 {
		return config.Period
	}
	return config.Period / time.Duration(config.Frames)
}
