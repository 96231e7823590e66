package gui

import (
	"bytes"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/config"
	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/sound"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/palette"
)

type silentOutput struct {
	played    int
	suspended int
}

func (output *silentOutput) Play([]byte) error { output.played++; return nil }
func (output *silentOutput) Suspend() error    { output.suspended++; return nil }
func (output *silentOutput) Resume() error     { return nil }
func (output *silentOutput) Close() error      { return nil }

type harness struct {
	shell     *Shell
	store     *storage.MemoryStore
	clock     *clockwork.FakeClock
	scheduler *clock.ManualScheduler
	output    *silentOutput
}

func newHarness(t *testing.T, store *storage.MemoryStore) *harness {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	cfg := config.Default()
	cfg.Quotes.Offline = true
	h := &harness{
		store:     store,
		clock:     clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)),
		scheduler: clock.NewManualScheduler(),
		output:    &silentOutput{},
	}
	shell, err := New(Options{
		Config:      cfg,
		App:         test.NewTempApp(t),
		Store:       store,
		Clock:       h.clock,
		Scheduler:   h.scheduler,
		AudioOpener: func() (sound.Output, error) { return h.output, nil },
	})
	require.NoError(t, err)
	t.Cleanup(shell.Close)
	h.shell = shell
	return h
}

// runFor advances the clock one second per tick.
func (h *harness) runFor(seconds int) {
	for range seconds {
		h.clock.Advance(time.Second)
		h.scheduler.FireRepeating()
	}
}

func TestNewLoadsPersistedDocuments(t *testing.T) {
	store := storage.NewMemoryStore()
	settings := model.DefaultSettings()
	settings.FocusSeconds = 45 * 60
	settings.Theme = model.ThemeBlue
	require.NoError(t, storage.SaveSettings(store, settings))
	require.NoError(t, storage.SaveTasks(store, []model.Task{{ID: "t1", Text: "write", Selected: true}}))

	h := newHarness(t, store)

	assert.Equal(t, 2700, h.shell.keeper.Snapshot().RemainingSeconds)
	assert.Equal(t, []model.Task{{ID: "t1", Text: "write", Selected: true}}, h.shell.registry.Tasks())
	current, ok := h.shell.app.Settings().Theme().(*palette.Theme)
	require.True(t, ok)
	assert.Equal(t, model.ThemeBlue, current.Name())
}

func TestFocusSessionEndToEnd(t *testing.T) {
	store := storage.NewMemoryStore()
	settings := model.DefaultSettings()
	settings.FocusSeconds = 60
	settings.AutoStartBreaks = false
	require.NoError(t, storage.SaveSettings(store, settings))
	h := newHarness(t, store)

	task, err := h.shell.registry.Add("write report")
	require.NoError(t, err)
	require.NoError(t, h.shell.registry.Select(task.ID))

	h.shell.keeper.Start()
	h.runFor(60)

	state := h.shell.keeper.Snapshot()
	assert.Equal(t, model.ModeShortBreak, state.Mode)

	persisted, err := storage.LoadStatistics(store, h.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, persisted.Today.Sessions)
	assert.Equal(t, 1, persisted.Today.FocusMinutes)
	require.Len(t, persisted.History, 1)
	assert.Equal(t, task.ID, persisted.History[0].TaskID)

	assert.Equal(t, 1, h.output.played, "chime played")
	assert.True(t, h.shell.banner.Visible())
}

func TestBackgroundingSuspendsAudio(t *testing.T) {
	h := newHarness(t, nil)
	h.shell.preview("bell")
	assert.Equal(t, 1, h.output.played)

	h.shell.keeper.Start()
	h.shell.hostHidden()
	assert.Equal(t, 1, h.output.suspended)
	assert.False(t, h.shell.keeper.Snapshot().HiddenSince.IsZero())

	h.clock.Advance(90 * time.Second)
	h.shell.hostVisible()
	assert.Equal(t, 1500-90, h.shell.keeper.Snapshot().RemainingSeconds)
}

func TestSettingsChangesPersist(t *testing.T) {
	h := newHarness(t, nil)

	h.shell.toggleTheme()
	saved, err := storage.LoadSettings(h.store)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeBlue, saved.Theme)

	settings := h.shell.keeper.SetFocusDuration(15 * 60)
	h.shell.saveSettings(settings)
	saved, err = storage.LoadSettings(h.store)
	require.NoError(t, err)
	assert.Equal(t, 900, saved.FocusSeconds)
	assert.Equal(t, 900, h.shell.prefs.Settings().FocusSeconds)
}

func TestImportExportAndClear(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.shell.registry.Add("keep me")
	require.NoError(t, err)

	var exported bytes.Buffer
	require.NoError(t, h.shell.export(&exported))
	require.NoError(t, storage.Validate(exported.Bytes()))

	require.NoError(t, h.shell.importData([]byte(`{"settings":{"focusTime":600},"tasks":[]}`)))
	assert.Equal(t, 600, h.shell.keeper.Snapshot().RemainingSeconds)
	assert.Empty(t, h.shell.registry.Tasks())

	require.NoError(t, h.shell.importData(exported.Bytes()))
	assert.Len(t, h.shell.registry.Tasks(), 1)
	assert.Equal(t, 1500, h.shell.keeper.Settings().FocusSeconds)

	require.NoError(t, h.shell.clearData())
	assert.Empty(t, h.shell.registry.Tasks())
	_, ok, err := h.store.Get(storage.KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, h.shell.importData([]byte("nope")), storage.ErrInvalidBundle)
}
