package timekeeper

import (
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
)

const (
	// TickInterval is how often the running countdown is reconciled.
	TickInterval = 100 * time.Millisecond
	// AutoStartDelay is the pause between a finished interval and the next
	// one when breaks start automatically.
	AutoStartDelay = time.Second
	// ManualBreakDelay is the pause before a manual break starts counting.
	ManualBreakDelay = 500 * time.Millisecond
	// LongBreakEvery is the number of focus sessions per long break.
	LongBreakEvery = 4
)

// TaskSource reports the task currently selected by the user.
type TaskSource interface {
	SelectedTask() (string, bool)
}

// Recorder stores finished sessions.
type Recorder interface {
	Record(SessionCompleted)
}

// Notifier announces finished sessions.
type Notifier interface {
	Notify(model.Mode)
}

// Dependencies are the collaborators of a TimeKeeper. Clock and Scheduler
// default to the system clock; the rest are optional.
type Dependencies struct {
	Clock     clock.Clock
	Scheduler clock.Scheduler
	Tasks     TaskSource
	Recorder  Recorder
	Notifier  Notifier
	Logger    *slog.Logger
}

// TimeKeeper is the focus/break state machine. All state changes happen
// under one mutex; collaborators are called after it is released.
type TimeKeeper struct {
	mu           sync.Mutex
	settings     model.Settings
	state        State
	clock        clock.Clock
	scheduler    clock.Scheduler
	tasks        TaskSource
	recorder     Recorder
	notifier     Notifier
	logger       *slog.Logger
	stopTicks    clock.Cancel
	stopDeferred clock.Cancel
	deferredGen  uint64
	events       []chan Event
	closed       bool
}

// New creates an idle TimeKeeper at the start of the first focus session.
func New(settings model.Settings, deps Dependencies) *TimeKeeper {
	if deps.Clock == nil || deps.Scheduler == nil {
		system := clock.System()
		if deps.Clock == nil {
			deps.Clock = system
		}
		if deps.Scheduler == nil {
			deps.Scheduler = clock.NewScheduler(system)
		}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	keeper := &TimeKeeper{
		settings:  settings.Normalize(),
		clock:     deps.Clock,
		scheduler: deps.Scheduler,
		tasks:     deps.Tasks,
		recorder:  deps.Recorder,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
	}
	keeper.resetStateLocked()
	keeper.state.LastTick = keeper.clock.Now()
	return keeper
}

// Subscribe registers a new observer channel. Slow observers miss events.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.closed {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current state.
func (keeper *TimeKeeper) Snapshot() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Settings returns the settings the durations are resolved from.
func (keeper *TimeKeeper) Settings() model.Settings {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.settings
}

// Start begins a fresh interval or resumes a paused one. It does nothing
// while already running.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.startLocked()
}

// Pause halts a running countdown. It does nothing unless running.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.pauseLocked()
}

// Toggle pauses when running and starts otherwise.
func (keeper *TimeKeeper) Toggle() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.Running {
		keeper.pauseLocked()
		return
	}
	keeper.startLocked()
}

func (keeper *TimeKeeper) pauseLocked() {
	if keeper.closed || !keeper.state.Running {
		return
	}
	keeper.cancelTicksLocked()
	keeper.cancelDeferredLocked()
	keeper.state.Running = false
	keeper.state.Paused = true
	keeper.state.HiddenSince = time.Time{}
	keeper.emitStateLocked()
}

// Reset returns to an idle first focus session.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.cancelTicksLocked()
	keeper.cancelDeferredLocked()
	keeper.resetStateLocked()
	keeper.emitStateLocked()
}

// StartManualBreak replaces whatever is being timed with a manual break
// that starts counting after ManualBreakDelay.
func (keeper *TimeKeeper) StartManualBreak() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	keeper.cancelTicksLocked()
	keeper.cancelDeferredLocked()
	keeper.state.Running = false
	keeper.state.Paused = false
	keeper.state.HiddenSince = time.Time{}
	keeper.state.Mode = model.ModeManualBreak
	keeper.beginIntervalLocked(keeper.settings.ManualBreakSeconds)
	keeper.state.ActiveTaskID = ""
	keeper.emitStateLocked()
	keeper.scheduleStartLocked(ManualBreakDelay)
}

// Tick reconciles the remaining time with the wall clock.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	completed, done := keeper.tickLocked(keeper.clock.Now())
	keeper.mu.Unlock()
	if done {
		keeper.dispatch(completed)
	}
}

// OnHostHidden marks the moment the window left the foreground.
func (keeper *TimeKeeper) OnHostHidden() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.state.Running || keeper.state.Paused {
		return
	}
	if keeper.state.HiddenSince.IsZero() {
		keeper.state.HiddenSince = keeper.clock.Now()
	}
}

// OnHostVisible charges the time spent in the background against the
// countdown, completing it if the interval ran out meanwhile.
func (keeper *TimeKeeper) OnHostVisible() {
	keeper.mu.Lock()
	completed, done := keeper.visibleLocked(keeper.clock.Now())
	keeper.mu.Unlock()
	if done {
		keeper.dispatch(completed)
	}
}

// UpdateSettings applies new durations. An idle interval that had not been
// started picks up its new length; remaining time never exceeds the
// configured length of the current mode.
func (keeper *TimeKeeper) UpdateSettings(settings model.Settings) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	settings = settings.Normalize()
	previous := keeper.settings
	keeper.settings = settings

	mode := keeper.state.Mode
	idle := !keeper.state.Running && !keeper.state.Paused
	if idle && keeper.state.RemainingSeconds == previous.Duration(mode) {
		keeper.beginIntervalLocked(settings.Duration(mode))
	}
	keeper.clampLocked(settings.Duration(mode))
	keeper.emitStateLocked()
}

// SetFocusDuration changes the focus length from the quick presets. A
// focus interval that is not counting down restarts at the new length.
func (keeper *TimeKeeper) SetFocusDuration(seconds int) model.Settings {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	settings := keeper.settings
	settings.FocusSeconds = seconds
	keeper.settings = settings.Normalize()

	if keeper.state.Mode == model.ModeFocus {
		if !keeper.state.Running {
			keeper.beginIntervalLocked(keeper.settings.FocusSeconds)
			keeper.state.Paused = false
		} else {
			keeper.clampLocked(keeper.settings.FocusSeconds)
		}
	}
	keeper.emitStateLocked()
	return keeper.settings
}

// DetachTask forgets the active task if it is taskID.
func (keeper *TimeKeeper) DetachTask(taskID string) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state.ActiveTaskID == taskID {
		keeper.state.ActiveTaskID = ""
		keeper.emitStateLocked()
	}
}

// Close stops all scheduled work and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.cancelTicksLocked()
	keeper.cancelDeferredLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) startLocked() {
	if keeper.closed || keeper.state.Running {
		return
	}
	keeper.cancelDeferredLocked()
	now := keeper.clock.Now()

	if keeper.state.Paused {
		keeper.state.Paused = false
	} else if keeper.state.Mode == model.ModeFocus && keeper.tasks != nil {
		if taskID, ok := keeper.tasks.SelectedTask(); ok {
			keeper.state.ActiveTaskID = taskID
		}
	}
	keeper.state.Running = true
	keeper.state.LastTick = now
	keeper.armTicksLocked()
	keeper.logger.Debug("timer started", "mode", keeper.state.Mode, "remaining", keeper.state.RemainingSeconds)
	keeper.emitStateLocked()
}

func (keeper *TimeKeeper) tickLocked(now time.Time) (SessionCompleted, bool) {
	if !keeper.state.Running {
		return SessionCompleted{}, false
	}
	if now.Before(keeper.state.LastTick) {
		keeper.state.LastTick = now
		return SessionCompleted{}, false
	}
	elapsed := int(now.Sub(keeper.state.LastTick) / time.Second)
	if elapsed <= 0 {
		return SessionCompleted{}, false
	}
	if elapsed < keeper.state.RemainingSeconds {
		keeper.state.RemainingSeconds -= elapsed
		keeper.state.LastTick = keeper.state.LastTick.Add(time.Duration(elapsed) * time.Second)
		keeper.emitLocked(Event{Type: EventTick, State: keeper.state, At: now})
		return SessionCompleted{}, false
	}
	keeper.state.RemainingSeconds = 0
	keeper.state.LastTick = now
	return keeper.completeLocked(now), true
}

func (keeper *TimeKeeper) visibleLocked(now time.Time) (SessionCompleted, bool) {
	hiddenSince := keeper.state.HiddenSince
	if hiddenSince.IsZero() {
		return SessionCompleted{}, false
	}
	keeper.state.HiddenSince = time.Time{}
	if !keeper.state.Running {
		return SessionCompleted{}, false
	}

	// Ticks that did fire in the background already charged their share.
	from := hiddenSince
	if keeper.state.LastTick.After(from) {
		from = keeper.state.LastTick
	}
	hidden := int(now.Sub(from) / time.Second)
	if hidden <= 0 {
		return SessionCompleted{}, false
	}
	if hidden >= keeper.state.RemainingSeconds {
		keeper.state.RemainingSeconds = 0
		keeper.state.LastTick = now
		return keeper.completeLocked(now), true
	}
	keeper.state.RemainingSeconds -= hidden
	keeper.state.LastTick = from.Add(time.Duration(hidden) * time.Second)
	keeper.emitLocked(Event{Type: EventTick, State: keeper.state, At: now})
	return SessionCompleted{}, false
}

func (keeper *TimeKeeper) completeLocked(now time.Time) SessionCompleted {
	keeper.cancelTicksLocked()
	keeper.state.Running = false
	keeper.state.Paused = false
	keeper.state.HiddenSince = time.Time{}

	finished := keeper.state.Mode
	completed := SessionCompleted{
		Mode:            finished,
		DurationSeconds: keeper.settings.Duration(finished),
		TaskID:          keeper.state.ActiveTaskID,
		At:              now,
	}
	if finished == model.ModeFocus {
		// Focus counts the time actually spent; breaks always count in full.
		completed.DurationSeconds = max(keeper.state.IntervalSeconds-keeper.state.RemainingSeconds, 0)
	}

	autoStart := keeper.settings.AutoStartBreaks
	switch finished {
	case model.ModeFocus:
		next := model.ModeShortBreak
		if keeper.state.SessionCount%LongBreakEvery == 0 {
			next = model.ModeLongBreak
		}
		keeper.state.Mode = next
	case model.ModeShortBreak, model.ModeLongBreak:
		keeper.state.SessionCount++
		keeper.state.Mode = model.ModeFocus
	default:
		// Manual breaks sit outside the cycle: back to focus, no count, no auto-start.
		keeper.state.Mode = model.ModeFocus
		autoStart = false
	}
	keeper.beginIntervalLocked(keeper.settings.Duration(keeper.state.Mode))

	keeper.logger.Info("session completed",
		"mode", finished,
		"duration_seconds", completed.DurationSeconds,
		"next", keeper.state.Mode,
		"session_count", keeper.state.SessionCount,
	)
	keeper.emitLocked(Event{Type: EventCompleted, State: keeper.state, Session: completed, At: now})
	keeper.emitStateLocked()

	if autoStart {
		keeper.scheduleStartLocked(AutoStartDelay)
	}
	return completed
}

func (keeper *TimeKeeper) dispatch(completed SessionCompleted) {
	if keeper.recorder != nil {
		keeper.recorder.Record(completed)
	}
	if keeper.notifier != nil {
		keeper.notifier.Notify(completed.Mode)
	}
}

// scheduleStartLocked arms a deferred start that only fires if nothing
// else changed the state in the meantime and the timer is still idle.
func (keeper *TimeKeeper) scheduleStartLocked(delay time.Duration) {
	keeper.cancelDeferredLocked()
	generation := keeper.deferredGen
	keeper.stopDeferred = keeper.scheduler.After(delay, func() {
		keeper.mu.Lock()
		defer keeper.mu.Unlock()
		if keeper.deferredGen != generation {
			return
		}
		keeper.stopDeferred = nil
		if keeper.state.Running || keeper.state.Paused {
			return
		}
		keeper.startLocked()
	})
}

func (keeper *TimeKeeper) cancelDeferredLocked() {
	keeper.deferredGen++
	if keeper.stopDeferred != nil {
		keeper.stopDeferred()
		keeper.stopDeferred = nil
	}
}

func (keeper *TimeKeeper) armTicksLocked() {
	keeper.cancelTicksLocked()
	keeper.stopTicks = keeper.scheduler.Every(TickInterval, keeper.Tick)
}

func (keeper *TimeKeeper) cancelTicksLocked() {
	if keeper.stopTicks != nil {
		keeper.stopTicks()
		keeper.stopTicks = nil
	}
}

func (keeper *TimeKeeper) resetStateLocked() {
	keeper.state = State{
		Mode:             model.ModeFocus,
		RemainingSeconds: keeper.settings.FocusSeconds,
		IntervalSeconds:  keeper.settings.FocusSeconds,
		SessionCount:     1,
		LastTick:         keeper.state.LastTick,
	}
}

// beginIntervalLocked resolves a fresh interval of seconds.
func (keeper *TimeKeeper) beginIntervalLocked(seconds int) {
	keeper.state.RemainingSeconds = seconds
	keeper.state.IntervalSeconds = seconds
}

// clampLocked caps the remaining time at limit. The cut is taken off the
// interval too, so the time already spent stays the same.
func (keeper *TimeKeeper) clampLocked(limit int) {
	if cut := keeper.state.RemainingSeconds - limit; cut > 0 {
		keeper.state.RemainingSeconds = limit
		keeper.state.IntervalSeconds -= cut
	}
}

func (keeper *TimeKeeper) emitStateLocked() {
	keeper.emitLocked(Event{Type: EventStateChange, State: keeper.state, At: keeper.clock.Now()})
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
