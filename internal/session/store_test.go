package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	user := User{ID: 1, Email: "a@b.com", Name: "A", Picture: strPtr("https://example.com/a.png")}
	require.NoError(t, store.Save("abc", user))

	token, loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "abc", token)
	assert.Equal(t, user, loaded)
}

func TestFileStore_NilPictureRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	user := User{ID: 1, Email: "a@b.com", Name: "A", Picture: nil}
	require.NoError(t, store.Save("abc", user))

	_, loaded, ok := store.Load()
	require.True(t, ok)
	assert.Nil(t, loaded.Picture)
}

func TestFileStore_EmptyDirIsAbsent(t *testing.T) {
	store := NewFileStore(t.TempDir())

	token, user, ok := store.Load()
	assert.False(t, ok)
	assert.Empty(t, token)
	assert.Empty(t, user.Email)
}

func TestFileStore_CorruptEntriesAreAbsent(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, dir string)
	}{
		{
			name: "missing token",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "crm_auth_token")))
			},
		},
		{
			name: "missing user profile",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "crm_auth_user.json")))
			},
		},
		{
			name: "malformed user profile",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "crm_auth_user.json"), []byte("{not json"), 0o600))
			},
		},
		{
			name: "checksum mismatch",
			corrupt: func(t *testing.T, dir string) {
				// Valid JSON, but it no longer matches the recorded checksum.
				require.NoError(t, os.WriteFile(
					filepath.Join(dir, "crm_auth_user.json"),
					[]byte(`{"id":9,"email":"evil@b.com","name":"E","picture":null}`), 0o600))
			},
		},
		{
			name: "missing checksum",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.Remove(filepath.Join(dir, "crm_auth_user.sum")))
			},
		},
		{
			name: "empty token file",
			corrupt: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "crm_auth_token"), nil, 0o600))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store := NewFileStore(dir)
			require.NoError(t, store.Save("abc", User{ID: 1, Email: "a@b.com", Name: "A"}))

			tt.corrupt(t, dir)

			_, _, ok := store.Load()
			assert.False(t, ok, "corrupt storage must load as absent")
		})
	}
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save("abc", User{ID: 1, Email: "a@b.com", Name: "A"}))

	require.NoError(t, store.Clear())
	_, _, ok := store.Load()
	assert.False(t, ok)

	// Clearing an already-empty store is not an error.
	require.NoError(t, store.Clear())
}

func TestFileStore_SaveReplacesExisting(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save("old", User{ID: 1, Email: "a@b.com", Name: "A"}))
	require.NoError(t, store.Save("new", User{ID: 2, Email: "c@d.com", Name: "C"}))

	token, user, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "new", token)
	assert.Equal(t, "c@d.com", user.Email)
}
