package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileTokenStore persists the single-user credentials on disk, the server
// side analog of the app's local key-value storage.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore binds the store to a file path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Read returns the stored credentials, or nil when none exist yet.
func (f *FileTokenStore) Read() (*Credentials, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(b, &creds); err != nil {
		return nil, err
	}
	if creds.AccessToken == "" {
		return nil, nil
	}
	return &creds, nil
}

// Write persists credentials with restrictive permissions, replacing the
// file atomically.
func (f *FileTokenStore) Write(creds *Credentials) error {
	if creds == nil || creds.AccessToken == "" {
		return fmt.Errorf("invalid credentials")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Clear forgets the stored credentials.
func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
