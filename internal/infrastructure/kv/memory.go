// Package kv provides KeyValueStore backends for the document, asset and
// preference stores.
package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/garyjia/bizdoc/internal/application/port"
	"github.com/garyjia/bizdoc/internal/domain/entity"
)

// MemoryStore keeps values in process memory. A positive quota caps the
// total size of all stored values, in bytes.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int64
}

// NewMemoryStore creates an empty store. quota <= 0 means unlimited.
func NewMemoryStore(quota int64) *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
		quota:  quota,
	}
}

// Read returns a copy of the stored value.
func (s *MemoryStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Write replaces the value for key unless it would exceed the quota.
func (s *MemoryStore) Write(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		used := int64(len(value))
		for k, v := range s.values {
			if k != key {
				used += int64(len(v))
			}
		}
		if used > s.quota {
			return fmt.Errorf("%w: %d of %d bytes", entity.ErrStorageQuotaExceeded, used, s.quota)
		}
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Set stores raw bytes without quota checks. Used to seed fixtures.
func (s *MemoryStore) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
}

var _ port.KeyValueStore = (*MemoryStore)(nil)
