// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"sync"
)

// MemoryCacheStore keeps values in process memory. It backs session-scoped
// keys and the "memory" DSN.
type MemoryCacheStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	closed bool
}

// NewMemoryCacheStore returns an empty [MemoryCacheStore].
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{values: make(map[string][]byte)}
}

func (s *MemoryCacheStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil, ErrCacheEntryNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryCacheStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryCacheStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	delete(s.values, key)
	return nil
}

func (s *MemoryCacheStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.values = nil
	return nil
}
