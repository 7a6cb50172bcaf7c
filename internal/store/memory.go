package store

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps partitions in nested maps. Used by tests and as a
// throwaway backend for local runs.
type MemoryStore struct {
	mu         sync.RWMutex
	partitions map[string]map[string]map[string][]byte // owner -> kind -> key -> value
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partitions: make(map[string]map[string]map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, ownerID, kind, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.partitions[ownerID][kind][key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(ctx context.Context, ownerID, kind, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds, ok := s.partitions[ownerID]
	if !ok {
		kinds = make(map[string]map[string][]byte)
		s.partitions[ownerID] = kinds
	}
	keys, ok := kinds[kind]
	if !ok {
		keys = make(map[string][]byte)
		kinds[kind] = keys
	}
	v := make([]byte, len(value))
	copy(v, value)
	keys[key] = v
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, ownerID, kind, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.partitions[ownerID][kind], key)
	return nil
}

func (s *MemoryStore) ListKeys(ctx context.Context, ownerID, kind, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []string
	for k := range s.partitions[ownerID][kind] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *MemoryStore) ListPartitions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var owners []string
	for owner := range s.partitions {
		if owner != SharedPartition {
			owners = append(owners, owner)
		}
	}
	return owners, nil
}

func (s *MemoryStore) ReadPartition(ctx context.Context, ownerID, kind string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte)
	for k, v := range s.partitions[ownerID][kind] {
		val := make([]byte, len(v))
		copy(val, v)
		out[k] = val
	}
	return out, nil
}
