package session

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/crmvibe/crmdash/internal/errors"
)

// Storage keys. These are stable names; changing them logs every user out.
const (
	tokenKey = "crm_auth_token"
	userKey  = "crm_auth_user"
)

// Store persists a session across process restarts.
//
// Implementations fail closed: a missing or unreadable entry loads as
// absent, never as an error. The session Manager is the only cache on
// top of a Store.
type Store interface {
	// Save writes the credential and user profile under fixed keys.
	// If an entry already exists it is replaced.
	Save(token string, user User) error

	// Load reads the persisted session. ok is false when either key is
	// missing or its contents cannot be deserialized.
	Load() (token string, user User, ok bool)

	// Clear removes both keys. Clearing an empty store is not an error.
	Clear() error
}

// FileStore implements Store on top of a directory, one file per key.
// The user profile carries a BLAKE3 checksum sidecar so a torn or
// hand-edited file reads as absent rather than as a half-valid session.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
// The directory must already exist.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) tokenPath() string {
	return filepath.Join(s.dir, tokenKey)
}

func (s *FileStore) userPath() string {
	return filepath.Join(s.dir, userKey+".json")
}

func (s *FileStore) sumPath() string {
	return filepath.Join(s.dir, userKey+".sum")
}

func checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Save writes the credential and user profile.
func (s *FileStore) Save(token string, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to serialize user profile", err)
	}

	if err := os.WriteFile(s.userPath(), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to persist user profile", err)
	}
	if err := os.WriteFile(s.sumPath(), []byte(checksum(data)), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to persist profile checksum", err)
	}
	if err := os.WriteFile(s.tokenPath(), []byte(token), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWriteFailed, "failed to persist credential", err)
	}

	return nil
}

// Load reads the persisted session, failing closed to absent on any
// missing or corrupt entry.
func (s *FileStore) Load() (string, User, bool) {
	tokenData, err := os.ReadFile(s.tokenPath())
	if err != nil || len(tokenData) == 0 {
		return "", User{}, false
	}

	userData, err := os.ReadFile(s.userPath())
	if err != nil {
		return "", User{}, false
	}

	sumData, err := os.ReadFile(s.sumPath())
	if err != nil || string(sumData) != checksum(userData) {
		return "", User{}, false
	}

	var user User
	if err := json.Unmarshal(userData, &user); err != nil {
		return "", User{}, false
	}
	if user.Email == "" {
		return "", User{}, false
	}

	return string(tokenData), user, true
}

// Clear removes both keys and the checksum sidecar. Idempotent.
func (s *FileStore) Clear() error {
	for _, path := range []string{s.tokenPath(), s.userPath(), s.sumPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeStoreClearFailed, "failed to remove stored session", err)
		}
	}
	return nil
}
