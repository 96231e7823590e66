package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

var exportTime = time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()

	settings := model.DefaultSettings()
	settings.FocusSeconds = 45 * 60
	settings.Theme = model.ThemeGreen
	settings.SelectedSound = "melodic"
	require.NoError(t, SaveSettings(store, settings))

	statistics := model.Statistics{
		Today:  model.DailyStats{Sessions: 2, FocusMinutes: 50, Breaks: 1, Date: exportTime.Format(model.DateLayout)},
		Weekly: model.WeeklyStats{Sessions: 9, FocusMinutes: 225, Breaks: 7},
		History: []model.SessionRecord{
			{Mode: model.ModeShortBreak, DurationSeconds: 300, Timestamp: exportTime.Add(-time.Hour)},
			{Mode: model.ModeFocus, DurationSeconds: 1500, Timestamp: exportTime.Add(-2 * time.Hour), TaskID: "t1"},
		},
	}
	require.NoError(t, SaveStatistics(store, statistics))

	tasks := []model.Task{
		{ID: "t1", Text: "write report", CreatedAt: exportTime.Add(-24 * time.Hour), Selected: true},
		{ID: "t2", Text: "inbox zero", Completed: true, CreatedAt: exportTime.Add(-48 * time.Hour)},
	}
	require.NoError(t, SaveTasks(store, tasks))
	return store
}

func documents(t *testing.T, store Store) map[string]string {
	t.Helper()
	result := make(map[string]string)
	for _, key := range []string{KeySettings, KeyStatistics, KeyTasks} {
		value, ok, err := store.Get(key)
		require.NoError(t, err)
		require.True(t, ok, key)
		result[key] = string(value)
	}
	return result
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	store := NewMemoryStore()

	settings, err := LoadSettings(store)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)

	require.NoError(t, store.Set(KeySettings, []byte("{not json")))
	settings, err = LoadSettings(store)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)

	require.NoError(t, store.Set(KeyStatistics, []byte("[1,2]")))
	statistics, err := LoadStatistics(store, exportTime)
	assert.Error(t, err)
	assert.Equal(t, model.NewStatistics(exportTime), statistics)

	tasks, err := LoadTasks(store)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestLoadSettingsMergesOverDefaults(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(KeySettings, []byte(`{"focusTime":900,"theme":"dark"}`)))

	settings, err := LoadSettings(store)
	require.NoError(t, err)
	assert.Equal(t, 900, settings.FocusSeconds)
	assert.Equal(t, model.ThemeDark, settings.Theme)
	assert.Equal(t, 300, settings.ShortBreakSeconds)
	assert.True(t, settings.AutoStartBreaks)
}

func TestExportShape(t *testing.T) {
	data, err := Export(seededStore(t), exportTime)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "settings")
	assert.Contains(t, fields, "statistics")
	assert.Contains(t, fields, "tasks")
	assert.JSONEq(t, `"2026-10-14T18:30:00Z"`, string(fields["exportedAt"]))
	assert.Equal(t, "pomodoro-data-2026-10-14.json", ExportFileName(exportTime))
}

func TestExportImportRoundTrip(t *testing.T) {
	source := seededStore(t)
	before := documents(t, source)

	data, err := Export(source, exportTime)
	require.NoError(t, err)
	require.NoError(t, Validate(data))

	require.NoError(t, Import(source, data, exportTime, func() bool { return true }))
	assert.Equal(t, before, documents(t, source))

	fresh := NewMemoryStore()
	require.NoError(t, Import(fresh, data, exportTime, nil))
	assert.Equal(t, before, documents(t, fresh))
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	store := seededStore(t)
	before := documents(t, store)

	for _, input := range []string{"", "null", "{oops", `[1,2,3]`, `{"settings":[]}`, `{"tasks":{"id":1}}`} {
		err := Import(store, []byte(input), exportTime, func() bool { return true })
		assert.ErrorIs(t, err, ErrInvalidBundle, "input %q", input)
		assert.ErrorIs(t, Validate([]byte(input)), ErrInvalidBundle, "input %q", input)
	}
	assert.Equal(t, before, documents(t, store))
}

func TestImportCancelled(t *testing.T) {
	store := seededStore(t)
	before := documents(t, store)

	err := Import(store, []byte(`{"settings":{"focusTime":60},"tasks":[]}`), exportTime, func() bool { return false })
	assert.ErrorIs(t, err, ErrImportCancelled)
	assert.Equal(t, before, documents(t, store))
}

func TestImportShallowMerge(t *testing.T) {
	store := seededStore(t)
	bundle := `{"settings":{"focusTime":60},"statistics":{"weekly":{"sessions":3}}}`
	require.NoError(t, Import(store, []byte(bundle), exportTime, nil))

	settings, err := LoadSettings(store)
	require.NoError(t, err)
	assert.Equal(t, 60, settings.FocusSeconds)
	assert.Equal(t, model.ThemeGreen, settings.Theme)

	statistics, err := LoadStatistics(store, exportTime)
	require.NoError(t, err)
	assert.Equal(t, model.WeeklyStats{Sessions: 3}, statistics.Weekly)
	assert.Equal(t, 2, statistics.Today.Sessions)
	assert.Len(t, statistics.History, 2)

	tasks, err := LoadTasks(store)
	require.NoError(t, err)
	assert.Len(t, tasks, 2, "tasks untouched when absent")

	require.NoError(t, Import(store, []byte(`{"tasks":[]}`), exportTime, nil))
	tasks, err = LoadTasks(store)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClear(t *testing.T) {
	store := seededStore(t)
	require.NoError(t, Clear(store))
	for _, key := range []string{KeySettings, KeyStatistics, KeyTasks} {
		_, ok, err := store.Get(key)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}
