package client

import (
	"context"
	"sync"
)

type memStore struct {
	mu        sync.Mutex
	data      map[string][]byte
	getErr    error
	deleteErr error
	deleted   [][]string
}

func newMemStore(kv ...string) *memStore {
	s := &memStore{data: map[string][]byte{}}
	for i := 0; i+1 < len(kv); i += 2 {
		s.data[kv[i]] = []byte(kv[i+1])
	}
	return s
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.data[key], nil
}

func (s *memStore) DeleteMany(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, keys)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}
