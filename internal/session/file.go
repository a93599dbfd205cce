// ABOUTME: File-backed token storage under the user config directory
// ABOUTME: Persists the bearer token in auth.json with 0600 permissions

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TokenKey is the fixed key the token is stored under.
const TokenKey = "taskflow_token"

const authFile = "auth.json"

// FileStorage persists the token at <dir>/auth.json.
type FileStorage struct {
	dir string
}

// NewFileStorage creates storage rooted at dir. The directory must exist.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (f *FileStorage) path() string {
	return filepath.Join(f.dir, authFile)
}

// Get reads the token from auth.json. Any read or decode failure is
// reported as absent; the store never surfaces storage errors on reads.
func (f *FileStorage) Get() (string, bool) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		return "", false
	}
	var contents map[string]string
	if err := json.Unmarshal(data, &contents); err != nil {
		return "", false
	}
	token, ok := contents[TokenKey]
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Set writes the token to auth.json, overwriting any prior value.
func (f *FileStorage) Set(value string) error {
	data, err := json.MarshalIndent(map[string]string{TokenKey: value}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(), data, 0600)
}

// Clear removes auth.json. Removing an already-absent file is a success.
func (f *FileStorage) Clear() error {
	err := os.Remove(f.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
