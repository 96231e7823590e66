package animation

import "time"

// DefaultConfig returns a slow two second pulse between full and half opacity.
func DefaultConfig() Config {
	return Config{
		Period:   2 * time.Second,
		Frames:   40,
		MinAlpha: 0.5,
		MaxAlpha: 1,
	}
}
