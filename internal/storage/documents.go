package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

// Document keys. Each concern is stored independently.
const (
	KeySettings   = "pomodoro-settings"
	KeyStatistics = "pomodoro-statistics"
	KeyTasks      = "pomodoro-tasks"
)

// LoadSettings reads settings, merging saved values over the defaults.
// On any failure the defaults are returned together with the error.
func LoadSettings(store Store) (model.Settings, error) {
	settings := model.DefaultSettings()
	raw, ok, err := store.Get(KeySettings)
	if err != nil {
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if !ok {
		return settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return model.DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}
	return settings.Normalize(), nil
}

// SaveSettings writes settings.
func SaveSettings(store Store, settings model.Settings) error {
	return saveDocument(store, KeySettings, settings)
}

// LoadStatistics reads statistics, merging saved values over empty
// statistics for the day containing now.
func LoadStatistics(store Store, now time.Time) (model.Statistics, error) {
	statistics := model.NewStatistics(now)
	raw, ok, err := store.Get(KeyStatistics)
	if err != nil {
		return statistics, fmt.Errorf("read statistics: %w", err)
	}
	if !ok {
		return statistics, nil
	}
	if err := json.Unmarshal(raw, &statistics); err != nil {
		return model.NewStatistics(now), fmt.Errorf("parse statistics: %w", err)
	}
	if statistics.History == nil {
		statistics.History = []model.SessionRecord{}
	}
	return statistics, nil
}

// SaveStatistics writes statistics.
func SaveStatistics(store Store, statistics model.Statistics) error {
	return saveDocument(store, KeyStatistics, statistics)
}

// LoadTasks reads the task list.
func LoadTasks(store Store) ([]model.Task, error) {
	tasks := []model.Task{}
	raw, ok, err := store.Get(KeyTasks)
	if err != nil {
		return tasks, fmt.Errorf("read tasks: %w", err)
	}
	if !ok {
		return tasks, nil
	}
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return []model.Task{}, fmt.Errorf("parse tasks: %w", err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// SaveTasks writes the task list.
func SaveTasks(store Store, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return saveDocument(store, KeyTasks, tasks)
}

func saveDocument(store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Set(key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
