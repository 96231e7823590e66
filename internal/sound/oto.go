package sound

import (
	"bytes"
	"time"

	"github.com/ebitengine/oto/v3"
)

const drainPoll = 20 * time.Millisecond

type otoOutput struct {
	context *oto.Context
}

// OpenDevice opens the system audio device. The underlying driver allows
// one device per process, so call it at most once.
func OpenDevice() (Output, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &otoOutput{context: context}, nil
}

func (output *otoOutput) Play(pcm []byte) error {
	player := output.context.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(drainPoll)
		}
		_ = player.Close()
	}()
	return nil
}

func (output *otoOutput) Suspend() error {
	return output.context.Suspend()
}

func (output *otoOutput) Resume() error {
	return output.context.Resume()
}

// Close suspends the device; the driver cannot be reopened in-process.
func (output *otoOutput) Close() error {
	return output.context.Suspend()
}
