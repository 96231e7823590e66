package storage

import "fyne.io/fyne/v2"

// PreferencesStore keeps documents in the Fyne application preferences.
type PreferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore wraps prefs, usually fyne.App.Preferences().
func NewPreferencesStore(prefs fyne.Preferences) *PreferencesStore {
	return &PreferencesStore{prefs: prefs}
}

// Get reads the document for key. Empty strings count as missing.
func (store *PreferencesStore) Get(key string) ([]byte, bool, error) {
	value := store.prefs.String(key)
	if value == "" {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set stores the document for key.
func (store *PreferencesStore) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	store.prefs.SetString(key, string(value))
	return nil
}

// Delete removes the document for key.
func (store *PreferencesStore) Delete(key string) error {
	store.prefs.RemoveValue(key)
	return nil
}
