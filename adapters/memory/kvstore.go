// Package memory provides in-memory implementations of storage ports,
// used in tests and as the ephemeral store before a durable one is
// configured.
package memory

import (
	"context"
	"sync"
)

// KVStore is a mutex-guarded in-memory implementation of ports.KVStore.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore creates an empty in-memory store.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get retrieves the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// MultiGet retrieves several keys at once.
func (s *KVStore) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Delete removes key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len reports the number of stored keys. Test helper.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
