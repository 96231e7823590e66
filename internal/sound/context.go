package sound

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrClosed indicates use of an AudioContext after Close.
var ErrClosed = errors.New("audio context closed")

// Output is an opened audio device.
type Output interface {
	Play(pcm []byte) error
	Suspend() error
	Resume() error
	Close() error
}

// Opener opens the audio device.
type Opener func() (Output, error)

// State of an AudioContext.
type State string

const (
	StateUnopened  State = "unopened"
	StateRunning   State = "running"
	StateSuspended State = "suspended"
	StateClosed    State = "closed"
)

// AudioContext owns the audio device. The device is opened lazily and a
// failed open is not retried.
type AudioContext struct {
	mu      sync.Mutex
	open    Opener
	output  Output
	state   State
	openErr error
	cache   map[string][]byte
	logger  *slog.Logger
}

// NewAudioContext creates a context that opens its device through open.
func NewAudioContext(open Opener, logger *slog.Logger) *AudioContext {
	if open == nil {
		open = OpenDevice
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioContext{
		open:   open,
		state:  StateUnopened,
		cache:  make(map[string][]byte),
		logger: logger,
	}
}

// State reports the lifecycle state.
func (audio *AudioContext) State() State {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	return audio.state
}

// Warm opens the device ahead of the first chime.
func (audio *AudioContext) Warm() error {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	return audio.ensureLocked()
}

// Play renders the named preset and starts playback without waiting for it.
func (audio *AudioContext) Play(name string) error {
	audio.mu.Lock()
	defer audio.mu.Unlock()

	if err := audio.ensureLocked(); err != nil {
		return err
	}
	if audio.state == StateSuspended {
		if err := audio.output.Resume(); err != nil {
			return fmt.Errorf("resume audio: %w", err)
		}
		audio.state = StateRunning
	}

	pcm, ok := audio.cache[name]
	if !ok {
		pcm = Synthesize(Lookup(name))
		audio.cache[name] = pcm
	}
	if err := audio.output.Play(pcm); err != nil {
		return fmt.Errorf("play %s: %w", name, err)
	}
	return nil
}

// Suspend pauses the device while the window is in the background.
func (audio *AudioContext) Suspend() {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	if audio.state != StateRunning {
		return
	}
	if err := audio.output.Suspend(); err != nil {
		audio.logger.Warn("suspend audio", "error", err)
		return
	}
	audio.state = StateSuspended
}

// Resume restarts a suspended device.
func (audio *AudioContext) Resume() {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	if audio.state != StateSuspended {
		return
	}
	if err := audio.output.Resume(); err != nil {
		audio.logger.Warn("resume audio", "error", err)
		return
	}
	audio.state = StateRunning
}

// Close releases the device. Further use returns ErrClosed.
func (audio *AudioContext) Close() error {
	audio.mu.Lock()
	defer audio.mu.Unlock()
	previous := audio.state
	audio.state = StateClosed
	if audio.output == nil || previous == StateClosed {
		return nil
	}
	if err := audio.output.Close(); err != nil {
		return fmt.Errorf("close audio: %w", err)
	}
	return nil
}

func (audio *AudioContext) ensureLocked() error {
	switch {
	case audio.state == StateClosed:
		return ErrClosed
	case audio.openErr != nil:
		return audio.openErr
	case audio.output != nil:
		return nil
	}
	output, err := audio.open()
	if err != nil {
		audio.openErr = fmt.Errorf("open audio: %w", err)
		audio.logger.Warn("audio unavailable", "error", err)
		return audio.openErr
	}
	audio.output = output
	audio.state = StateRunning
	return nil
}
