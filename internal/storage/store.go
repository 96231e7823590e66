// Package storage keeps the settings, statistics and task documents in a
// key-value store and moves them in and out as one export bundle.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownBackend indicates an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrInvalidKey indicates a key that cannot be stored.
var ErrInvalidKey = errors.New("invalid storage key")

// Store is a durable key-value store of JSON documents.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)
	// Set replaces the value for key.
	Set(key string, value []byte) error
	// Delete removes key; missing keys are not an error.
	Delete(key string) error
}

// Backend names accepted by Open.
const (
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendPreferences = "preferences"
	BackendMemory      = "memory"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	DataDir string
}

// Open creates the store described by options. The preferences backend
// needs a running Fyne app and is built with NewPreferencesStore instead.
func Open(options Options) (Store, error) {
	switch strings.ToLower(options.Backend) {
	case "", BackendFile:
		return NewFileStore(options.DataDir)
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(options.DataDir, "pomodoro.db"))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, options.Backend)
	}
}

// Close releases store resources when the backend holds any.
func Close(store Store) error {
	if closer, ok := store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
