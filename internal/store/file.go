package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per key under a data directory. It is the
// default backend and stands in for the per-profile durable storage of the
// original app. Writes go through a temp file and rename so a crashed write
// never leaves a half-written record behind.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string, v any) bool {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		// corrupt record reads as absent
		return false
	}
	return true
}

func (s *FileStore) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
