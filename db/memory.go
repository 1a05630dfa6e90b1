package db

import (
	"context"
	"sync"

	"github.com/EO-DataHub/eodhp-resource-services/models"
)

// MemoryStore holds encoded collections in memory. Every Load decodes a fresh
// copy so callers never share records with each other or with the store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, name string) ([]models.Record, error) {
	s.mu.RLock()
	data, ok := s.docs[name]
	s.mu.RUnlock()

	if !ok {
		return nil, loadFailure(name, ErrCollectionNotFound)
	}
	records, err := decodeCollection(data)
	if err != nil {
		return nil, loadFailure(name, err)
	}
	return records, nil
}

func (s *MemoryStore) Save(_ context.Context, name string, records []models.Record) error {
	data, err := encodeCollection(records)
	if err != nil {
		return saveFailure(name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = data
	return nil
}

// PutRaw stores an undecoded document, which lets tests plant corrupt data.
func (s *MemoryStore) PutRaw(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = data
}

func (s *MemoryStore) Close() error { return nil }
