package memory

import (
	"context"
	"sync"
)

// BlobStore is an in-memory implementation of app.BlobStore. Contents are
// lost with the process.
type BlobStore struct {
	mu     sync.RWMutex
	blobs  map[string][]byte
	writes int
}

func NewBlobStore() *BlobStore {
	return &BlobStore{
		blobs: make(map[string][]byte),
	}
}

func (s *BlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (s *BlobStore) PutAll(_ context.Context, blobs map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, data := range blobs {
		s.blobs[key] = append([]byte(nil), data...)
	}
	s.writes++
	return nil
}

// Writes counts PutAll calls.
func (s *BlobStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *BlobStore) Close() error { return nil }
