// Package sound synthesizes the completion chimes and plays them through
// the system audio device.
package sound

import (
	"slices"
	"time"
)

// Waveform is the oscillator shape of a note.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
)

// Note is a single oscillator voice. Offset is measured from the start of
// the preset.
type Note struct {
	Frequency float64
	Wave      Waveform
	Gain      float64
	Duration  time.Duration
	Offset    time.Duration
}

// Preset is a named set of notes.
type Preset []Note

func sequence(wave Waveform, gain float64, duration, spacing time.Duration, frequencies ...float64) Preset {
	preset := make(Preset, 0, len(frequencies))
	for i, frequency := range frequencies {
		preset = append(preset, Note{
			Frequency: frequency,
			Wave:      wave,
			Gain:      gain,
			Duration:  duration,
			Offset:    time.Duration(i) * spacing,
		})
	}
	return preset
}

const ms = time.Millisecond

var presets = map[string]Preset{
	"chime":   sequence(Sine, 0.2, 300*ms, 100*ms, 523, 659, 784, 1047),
	"bell":    sequence(Sine, 0.3, 800*ms, 0, 800, 1200),
	"digital": sequence(Square, 0.15, 150*ms, 80*ms, 800, 1000, 800),
	"gentle":  sequence(Sine, 0.2, 1000*ms, 0, 528),
	"bright":  sequence(Triangle, 0.25, 200*ms, 50*ms, 1047, 1319, 1568),
	"deep":    sequence(Sawtooth, 0.3, 600*ms, 0, 220),
	"crystal": sequence(Sine, 0.18, 250*ms, 60*ms, 440, 554, 659, 440),
	"warm":    sequence(Sine, 0.22, 700*ms, 0, 330, 415),
	"sharp":   sequence(Square, 0.2, 100*ms, 40*ms, 1200, 800, 1200),
	"melodic": {
		{Frequency: 523, Wave: Sine, Gain: 0.2, Duration: 200 * ms},
		{Frequency: 659, Wave: Sine, Gain: 0.2, Duration: 200 * ms, Offset: 220 * ms},
		{Frequency: 784, Wave: Sine, Gain: 0.2, Duration: 200 * ms, Offset: 440 * ms},
		{Frequency: 1047, Wave: Sine, Gain: 0.2, Duration: 400 * ms, Offset: 660 * ms},
	},
}

// Lookup returns the preset for name, or the chime for unknown names.
func Lookup(name string) Preset {
	if preset, ok := presets[name]; ok {
		return preset
	}
	return presets["chime"]
}

// Names lists the preset names in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Length is the time from the first note to the end of the last.
func (preset Preset) Length() time.Duration {
	var length time.Duration
	for _, note := range preset {
		length = max(length, note.Offset+note.Duration)
	}
	return length
}
