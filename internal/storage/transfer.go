package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

var (
	// ErrInvalidBundle indicates an import document that could not be parsed.
	ErrInvalidBundle = errors.New("invalid file format")
	// ErrImportCancelled indicates the user declined to overwrite their data.
	ErrImportCancelled = errors.New("import cancelled")
)

// Bundle is the export document holding every persisted concern.
type Bundle struct {
	Settings   model.Settings   `json:"settings"`
	Statistics model.Statistics `json:"statistics"`
	Tasks      []model.Task     `json:"tasks"`
	ExportedAt time.Time        `json:"exportedAt"`
}

// incomingBundle mirrors Bundle with optional sections so that an import
// only touches what it carries.
type incomingBundle struct {
	Settings   json.RawMessage  `json:"settings"`
	Statistics *statisticsPatch `json:"statistics"`
	Tasks      *[]model.Task    `json:"tasks"`
}

type statisticsPatch struct {
	Today   *model.DailyStats      `json:"today"`
	Weekly  *model.WeeklyStats     `json:"weekly"`
	History *[]model.SessionRecord `json:"history"`
}

// ExportFileName is the suggested file name for an export made at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("pomodoro-data-%s.json", now.UTC().Format("2006-01-02"))
}

// Export serializes all documents in store as an indented bundle.
func Export(store Store, now time.Time) ([]byte, error) {
	settings, err := LoadSettings(store)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	statistics, err := LoadStatistics(store, now)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	tasks, err := LoadTasks(store)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	bundle := Bundle{
		Settings:   settings,
		Statistics: statistics,
		Tasks:      tasks,
		ExportedAt: now.UTC(),
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// Validate reports whether data is an importable bundle without touching
// any store.
func Validate(data []byte) error {
	incoming, err := parseBundle(data)
	if err != nil {
		return err
	}
	settings := model.DefaultSettings()
	return incoming.mergeSettings(&settings)
}

// Import merges a bundle into store. Settings and statistics are merged
// key by key over the current documents; tasks are replaced when present.
// Nothing is written unless the whole bundle parses and confirm, when
// non-nil, returns true.
func Import(store Store, data []byte, now time.Time, confirm func() bool) error {
	incoming, err := parseBundle(data)
	if err != nil {
		return err
	}

	// A corrupt current document is treated as empty; the import replaces it.
	settings, _ := LoadSettings(store)
	if err := incoming.mergeSettings(&settings); err != nil {
		return err
	}

	statistics, _ := LoadStatistics(store, now)
	if patch := incoming.Statistics; patch != nil {
		if patch.Today != nil {
			statistics.Today = *patch.Today
		}
		if patch.Weekly != nil {
			statistics.Weekly = *patch.Weekly
		}
		if patch.History != nil {
			statistics.History = *patch.History
		}
	}

	if confirm != nil && !confirm() {
		return ErrImportCancelled
	}

	if err := SaveSettings(store, settings); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := SaveStatistics(store, statistics); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if incoming.Tasks != nil {
		if err := SaveTasks(store, *incoming.Tasks); err != nil {
			return fmt.Errorf("import: %w", err)
		}
	}
	return nil
}

func parseBundle(data []byte) (incomingBundle, error) {
	var incoming incomingBundle
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return incoming, ErrInvalidBundle
	}
	if err := json.Unmarshal(trimmed, &incoming); err != nil {
		return incoming, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	return incoming, nil
}

func (incoming incomingBundle) mergeSettings(settings *model.Settings) error {
	if len(incoming.Settings) == 0 {
		return nil
	}
	if err := json.Unmarshal(incoming.Settings, settings); err != nil {
		return fmt.Errorf("%w: settings: %v", ErrInvalidBundle, err)
	}
	*settings = settings.Normalize()
	return nil
}

// Clear deletes every document.
func Clear(store Store) error {
	for _, key := range []string{KeySettings, KeyStatistics, KeyTasks} {
		if err := store.Delete(key); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
	}
	return nil
}
