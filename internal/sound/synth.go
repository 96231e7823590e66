package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// Output format of Synthesize.
const (
	SampleRate     = 44100
	ChannelCount   = 2
	bytesPerSample = 2
)

// floorGain is the level every note decays to by its end.
const floorGain = 0.01

// Synthesize renders preset as interleaved signed 16-bit little endian stereo PCM.
func Synthesize(preset Preset) []byte {
	frames := int(preset.Length().Seconds() * SampleRate)
	mix := make([]float64, frames)

	for _, note := range preset {
		start := frameAt(note.Offset)
		count := frameAt(note.Duration)
		if count <= 0 || note.Gain <= 0 {
			continue
		}
		for i := 0; i < count && start+i < frames; i++ {
			progress := float64(i) / float64(count)
			// Exponential ramp from the note gain to floorGain.
			gain := note.Gain * math.Pow(floorGain/note.Gain, progress)
			phase := math.Mod(note.Frequency*float64(i)/SampleRate, 1)
			mix[start+i] += gain * oscillate(note.Wave, phase)
		}
	}

	pcm := make([]byte, frames*ChannelCount*bytesPerSample)
	for i, value := range mix {
		sample := uint16(int16(math.Round(max(-1, min(1, value)) * math.MaxInt16)))
		offset := i * ChannelCount * bytesPerSample
		binary.LittleEndian.PutUint16(pcm[offset:], sample)
		binary.LittleEndian.PutUint16(pcm[offset+bytesPerSample:], sample)
	}
	return pcm
}

func frameAt(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}

// oscillate evaluates a waveform at phase in [0, 1).
func oscillate(wave Waveform, phase float64) float64 {
	switch wave {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	case Sawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
