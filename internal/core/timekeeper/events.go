package timekeeper

import (
	"time"

	"pomodoro/internal/core/model"
)

// RunState is the run status derived from the running and paused flags.
type RunState string

const (
	RunIdle    RunState = "idle"
	RunRunning RunState = "running"
	RunPaused  RunState = "paused"
)

// State is a copy of the countdown state. Running and Paused are never both true.
// IntervalSeconds is the length the current interval started with, less
// any time cut off when a shorter duration clamped it.
type State struct {
	Mode             model.Mode
	RemainingSeconds int
	IntervalSeconds  int
	Running          bool
	Paused           bool
	SessionCount     int
	LastTick         time.Time
	HiddenSince      time.Time
	ActiveTaskID     string
}

// RunState reports whether the countdown is idle, running or paused.
func (state State) RunState() RunState {
	switch {
	case state.Running:
		return RunRunning
	case state.Paused:
		return RunPaused
	default:
		return RunIdle
	}
}

// SessionCompleted describes one finished interval.
type SessionCompleted struct {
	Mode            model.Mode
	DurationSeconds int
	TaskID          string
	At              time.Time
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventStateChange EventType = "state_change"
	EventCompleted   EventType = "completed"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type    EventType
	State   State
	Session SessionCompleted
	At      time.Time
}
