package storage

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "pomodoro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory":      NewMemoryStore(),
		"file":        fileStore,
		"sqlite":      sqliteStore,
		"preferences": NewPreferencesStore(test.NewTempApp(t).Preferences()),
	}
}

func TestStoreContract(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set("doc", []byte(`{"a":1}`)))
			value, ok, err := store.Get("doc")
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"a":1}`, string(value))

			require.NoError(t, store.Set("doc", []byte(`{"a":2}`)))
			value, _, err = store.Get("doc")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(value))

			require.NoError(t, store.Delete("doc"))
			require.NoError(t, store.Delete("doc"))
			_, ok, err = store.Get("doc")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.ErrorIs(t, store.Set("../escape", []byte("{}")), ErrInvalidKey)
		})
	}
}

func TestFileStoreWritesOneFilePerKey(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeySettings, []byte(`{}`)))
	data, err := os.ReadFile(filepath.Join(dir, KeySettings+".json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pomodoro.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyTasks, []byte(`[]`)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()
	value, ok, err := reopened.Get(KeyTasks)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(value))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(Options{Backend: BackendFile, DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = Open(Options{Backend: "SQLite", DataDir: dir})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, Close(store))

	store, err = Open(Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.NoError(t, Close(store))

	_, err = Open(Options{Backend: "cloud"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
