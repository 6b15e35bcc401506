// Package store provides the durable credential store implementations: a
// JSON-file-backed store, the Go analog of the mobile platform's async
// key-value storage, and a Redis-backed store for shared deployments.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/localkonnect/mobile-core/internal/core/domain"
)

// FileStore keeps credentials in a single JSON file. Values are held in
// memory and every mutation is flushed via write-to-temp-then-rename, so a
// crash mid-write never leaves a torn file.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// OpenFile loads the store at path, creating an empty store when the file
// does not exist yet.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("decode credential store: %w", err)
		}
	}
	return s, nil
}

// Get returns the stored value and whether the key was present. A missing
// key is "absent", never an error.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set persists value under key, overwriting any prior value.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

// Remove deletes key if present; removing an absent key is a no-op.
func (s *FileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// Clear removes every known session key. The access token goes first in its
// own flush: token absence is the source of truth for "logged out", so an
// interrupted clear still reads as no session.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, domain.KeyAccessToken)
	if err := s.flush(); err != nil {
		return err
	}
	for _, key := range domain.KnownKeys {
		delete(s.values, key)
	}
	return s.flush()
}

func (s *FileStore) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("credential store dir: %w", err)
	}

	data, err := json.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("encode credential store: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("credential store write: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("credential store write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("credential store write: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("credential store write: %w", err)
	}
	return nil
}
