package session

import (
	"path/filepath"
	"testing"

	"tablenest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadEmptyStore(t *testing.T) {
	store := openTestStore(t)

	_, _, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	creds := model.Credentials{UserID: 42, AuthToken: "token-abc"}

	require.NoError(t, store.Save(creds, "amy@example.com"))

	got, email, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, creds, got)
	assert.Equal(t, "amy@example.com", email)
}

func TestSaveReplacesExistingSession(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Save(model.Credentials{UserID: 1, AuthToken: "old"}, "old@example.com"))
	require.NoError(t, store.Save(model.Credentials{UserID: 2, AuthToken: "new"}, "new@example.com"))

	got, email, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), got.UserID)
	assert.Equal(t, "new", got.AuthToken)
	assert.Equal(t, "new@example.com", email)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Save(model.Credentials{UserID: 5, AuthToken: "t"}, ""))

	require.NoError(t, store.Clear())

	_, _, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing again is harmless.
	require.NoError(t, store.Clear())
}
