// Package tasks keeps the user's task list and the task focus time is
// attributed to.
package tasks

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/storage"
)

var (
	// ErrEmptyText indicates a task without any visible text.
	ErrEmptyText = errors.New("task text is empty")
	// ErrTaskNotFound indicates an unknown task id.
	ErrTaskNotFound = errors.New("task not found")
)

// Counts summarises the list for the task header.
type Counts struct {
	Total     int
	Completed int
}

// Registry owns the task list. Every mutation is persisted immediately.
type Registry struct {
	mu       sync.Mutex
	store    storage.Store
	clock    clock.Clock
	logger   *slog.Logger
	tasks    []model.Task
	onChange func([]model.Task)
	onDelete func(id string)
	newID    func() string
}

// NewRegistry creates an empty registry backed by store.
func NewRegistry(store storage.Store, clk clock.Clock, logger *slog.Logger) *Registry {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		store:  store,
		clock:  clk,
		logger: logger,
		tasks:  []model.Task{},
		newID:  uuid.NewString,
	}
}

// SetOnChange registers a callback receiving the list after each change.
func (registry *Registry) SetOnChange(handler func([]model.Task)) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.onChange = handler
}

// SetOnDelete registers a callback receiving the id of each deleted task.
func (registry *Registry) SetOnDelete(handler func(id string)) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.onDelete = handler
}

// Load replaces the list with the persisted one.
func (registry *Registry) Load() {
	tasks, err := storage.LoadTasks(registry.store)
	if err != nil {
		registry.logger.Warn("tasks unavailable, starting empty", "error", err)
	}
	registry.mu.Lock()
	registry.tasks = tasks
	registry.mu.Unlock()
	registry.changed(false)
}

// Add prepends a task. Text is trimmed before use.
func (registry *Registry) Add(text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	task := model.Task{
		ID:        registry.newID(),
		Text:      text,
		CreatedAt: registry.clock.Now().UTC(),
	}

	registry.mu.Lock()
	registry.tasks = append([]model.Task{task}, registry.tasks...)
	registry.mu.Unlock()

	registry.changed(true)
	return task, nil
}

// Toggle flips the completed flag of a task.
func (registry *Registry) Toggle(id string) error {
	registry.mu.Lock()
	index := registry.indexLocked(id)
	if index < 0 {
		registry.mu.Unlock()
		return ErrTaskNotFound
	}
	registry.tasks[index].Completed = !registry.tasks[index].Completed
	registry.mu.Unlock()

	registry.changed(true)
	return nil
}

// Select marks one task as the focus target and clears every other.
func (registry *Registry) Select(id string) error {
	registry.mu.Lock()
	if registry.indexLocked(id) < 0 {
		registry.mu.Unlock()
		return ErrTaskNotFound
	}
	for i := range registry.tasks {
		registry.tasks[i].Selected = registry.tasks[i].ID == id
	}
	registry.mu.Unlock()

	registry.changed(true)
	return nil
}

// Delete removes a task.
func (registry *Registry) Delete(id string) error {
	registry.mu.Lock()
	index := registry.indexLocked(id)
	if index < 0 {
		registry.mu.Unlock()
		return ErrTaskNotFound
	}
	registry.tasks = append(registry.tasks[:index], registry.tasks[index+1:]...)
	handler := registry.onDelete
	registry.mu.Unlock()

	registry.changed(true)
	if handler != nil {
		handler(id)
	}
	return nil
}

// SelectedTask returns the id of the selected task, if any.
func (registry *Registry) SelectedTask() (string, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for _, task := range registry.tasks {
		if task.Selected {
			return task.ID, true
		}
	}
	return "", false
}

// Tasks returns a copy of the list, newest first.
func (registry *Registry) Tasks() []model.Task {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.copyLocked()
}

// Counts returns the total and completed counts.
func (registry *Registry) Counts() Counts {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return CountOf(registry.tasks)
}

// CountOf counts a task list.
func CountOf(list []model.Task) Counts {
	counts := Counts{Total: len(list)}
	for _, task := range list {
		if task.Completed {
			counts.Completed++
		}
	}
	return counts
}

func (registry *Registry) indexLocked(id string) int {
	for i, task := range registry.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (registry *Registry) copyLocked() []model.Task {
	tasks := make([]model.Task, len(registry.tasks))
	copy(tasks, registry.tasks)
	return tasks
}

func (registry *Registry) changed(persist bool) {
	registry.mu.Lock()
	tasks := registry.copyLocked()
	handler := registry.onChange
	registry.mu.Unlock()

	if persist {
		if err := storage.SaveTasks(registry.store, tasks); err != nil {
			registry.logger.Error("persist tasks", "error", err)
		}
	}
	if handler != nil {
		handler(tasks)
	}
}
