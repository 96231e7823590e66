package tasks

import (
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
)

var created = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

func newRegistry(t *testing.T) (*Registry, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	registry := NewRegistry(store, clockwork.NewFakeClockAt(created), nil)
	sequence := 0
	registry.newID = func() string {
		sequence++
		return fmt.Sprintf("task-%d", sequence)
	}
	registry.Load()
	return registry, store
}

func persisted(t *testing.T, store storage.Store) []model.Task {
	t.Helper()
	tasks, err := storage.LoadTasks(store)
	require.NoError(t, err)
	return tasks
}

func TestAddTrimsAndPrepends(t *testing.T) {
	registry, store := newRegistry(t)

	first, err := registry.Add("  write report ")
	require.NoError(t, err)
	assert.Equal(t, model.Task{ID: "task-1", Text: "write report", CreatedAt: created}, first)

	_, err = registry.Add("review PR")
	require.NoError(t, err)

	_, err = registry.Add("   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	tasks := registry.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "review PR", tasks[0].Text)
	assert.Equal(t, tasks, persisted(t, store))
}

func TestNewRegistryUsesUUIDs(t *testing.T) {
	registry := NewRegistry(storage.NewMemoryStore(), nil, nil)
	first, err := registry.Add("a")
	require.NoError(t, err)
	second, err := registry.Add("b")
	require.NoError(t, err)
	assert.Len(t, first.ID, 36)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestToggleAndCounts(t *testing.T) {
	registry, store := newRegistry(t)
	task, err := registry.Add("a")
	require.NoError(t, err)
	_, err = registry.Add("b")
	require.NoError(t, err)

	require.NoError(t, registry.Toggle(task.ID))
	assert.Equal(t, Counts{Total: 2, Completed: 1}, registry.Counts())
	assert.True(t, persisted(t, store)[1].Completed)

	require.NoError(t, registry.Toggle(task.ID))
	assert.Equal(t, Counts{Total: 2}, registry.Counts())

	assert.ErrorIs(t, registry.Toggle("nope"), ErrTaskNotFound)
}

func TestSelectIsExclusive(t *testing.T) {
	registry, _ := newRegistry(t)
	first, _ := registry.Add("a")
	second, _ := registry.Add("b")

	_, ok := registry.SelectedTask()
	assert.False(t, ok)

	require.NoError(t, registry.Select(first.ID))
	require.NoError(t, registry.Select(second.ID))

	id, ok := registry.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, second.ID, id)

	selected := 0
	for _, task := range registry.Tasks() {
		if task.Selected {
			selected++
		}
	}
	assert.Equal(t, 1, selected)
	assert.ErrorIs(t, registry.Select("nope"), ErrTaskNotFound)
}

func TestDeleteNotifies(t *testing.T) {
	registry, store := newRegistry(t)
	task, _ := registry.Add("a")
	require.NoError(t, registry.Select(task.ID))

	var deleted []string
	registry.SetOnDelete(func(id string) { deleted = append(deleted, id) })

	require.NoError(t, registry.Delete(task.ID))
	assert.Equal(t, []string{task.ID}, deleted)
	assert.Empty(t, registry.Tasks())
	assert.Empty(t, persisted(t, store))

	_, ok := registry.SelectedTask()
	assert.False(t, ok)
	assert.ErrorIs(t, registry.Delete(task.ID), ErrTaskNotFound)
}

func TestLoadAndOnChange(t *testing.T) {
	store := storage.NewMemoryStore()
	saved := []model.Task{{ID: "x", Text: "from disk", CreatedAt: created, Selected: true}}
	require.NoError(t, storage.SaveTasks(store, saved))

	registry := NewRegistry(store, clockwork.NewFakeClockAt(created), nil)
	var seen [][]model.Task
	registry.SetOnChange(func(tasks []model.Task) { seen = append(seen, tasks) })
	registry.Load()

	assert.Equal(t, saved, registry.Tasks())
	require.Len(t, seen, 1)

	id, ok := registry.SelectedTask()
	assert.True(t, ok)
	assert.Equal(t, "x", id)
}
