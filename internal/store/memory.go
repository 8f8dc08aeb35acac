package store

import (
	"encoding/json"
	"sync"
)

// MemStore is a map-backed RecordStore for tests and ephemeral runs. Values
// are held as marshaled JSON so Get/Set round-trip exactly like the durable
// backends.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (s *MemStore) Get(key string, v any) bool {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func (s *MemStore) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Remove(key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// SetRaw stores raw bytes under key, bypassing marshaling. Tests use it to
// plant corrupt records.
func (s *MemStore) SetRaw(key string, data []byte) {
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
}
