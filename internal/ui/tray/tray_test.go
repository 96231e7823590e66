package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

func TestUpdateLabels(t *testing.T) {
	manager := New(nil, Callbacks{})

	manager.Update(timekeeper.State{Mode: model.ModeFocus, RemainingSeconds: 1500})
	assert.Equal(t, "🍅 Focus Time 25:00", manager.statusItem.Label)
	assert.Equal(t, "Start", manager.toggleItem.Label)

	manager.Update(timekeeper.State{Mode: model.ModeFocus, RemainingSeconds: 1499, Running: true})
	assert.Equal(t, "Pause", manager.toggleItem.Label)

	manager.Update(timekeeper.State{Mode: model.ModeShortBreak, RemainingSeconds: 42, Paused: true})
	assert.Equal(t, "☕ Short Break 00:42 (paused)", manager.statusItem.Label)
	assert.Equal(t, "Resume", manager.toggleItem.Label)

	manager.Update(timekeeper.State{Mode: model.ModeManualBreak, RemainingSeconds: 600, Running: true})
	assert.True(t, manager.breakItem.Disabled)
}

func TestMenuInvokesCallbacks(t *testing.T) {
	var toggles, quits int
	manager := New(nil, Callbacks{
		OnToggle: func() { toggles++ },
		OnQuit:   func() { quits++ },
	})

	menu := manager.Menu()
	require.NotEmpty(t, menu.Items)
	for _, item := range menu.Items {
		if item.Action != nil {
			item.Action()
		}
	}
	assert.Equal(t, 1, toggles)
	assert.Equal(t, 1, quits)
}
