package animation

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Engine drives a looping opacity pulse.
type Engine struct {
	mu     sync.Mutex
	config Config
	clock  clockwork.Clock
	update func(alpha float64)
	cancel context.CancelFunc
	runID  uint64
}

// New creates a pulse engine calling update from its own goroutine.
func New(config Config, clock clockwork.Clock, update func(alpha float64)) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		config: config,
		clock:  clock,
		update: update,
	}
}

// Start restarts the pulse. With reducedMotion the target is shown at full
// opacity once and nothing animates.
func (engine *Engine) Start(ctx context.Context, reducedMotion bool) {
	if reducedMotion {
		engine.Stop()
		engine.update(engine.config.MaxAlpha)
		return
	}
	engine.start(ctx, func(runCtx context.Context) {
		interval := engine.config.FrameInterval()
		for frame := 0; runCtx.Err() == nil; frame++ {
			phase := float64(frame%max(engine.config.Frames, 1)) / float64(max(engine.config.Frames, 1))
			engine.update(Alpha(engine.config, phase))
			if !engine.sleepWithContext(runCtx, interval) {
				return
			}
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

// Running reports whether a pulse is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.runID++
	runID := engine.runID
	engine.mu.Unlock()

	go func() {
		run(runCtx)
		engine.mu.Lock()
		defer engine.mu.Unlock()
		if engine.runID == runID && engine.cancel != nil {
			engine.cancel()
			engine.cancel = nil
		}
	}()
}

func (engine *Engine) sleepWithContext(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-engine.clock.After(duration):
		return true
	}
}

// Alpha is the opacity at phase in [0, 1): full at 0, dimmest at 0.5.
func Alpha(config Config, phase float64) float64 {
	depth := (1 - math.Cos(2*math.Pi*phase)) / 2
	return config.MaxAlpha - (config.MaxAlpha-config.MinAlpha)*depth
}
