package memory

import (
	"context"
	"sync"

	"github.com/bizdesk/go-business-records/internal/domains/orders/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore keeps key-to-order mappings in memory.
type IdempotencyStore struct {
	mu      sync.RWMutex
	records map[string]ports.IdempotencyRecord
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: map[string]ports.IdempotencyRecord{}}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[key]
	if !ok {
		return nil, ports.ErrIdempotencyNotFound
	}
	return &record, nil
}

func (s *IdempotencyStore) Put(_ context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.Key]; ok && existing.RequestHash != record.RequestHash {
		return ports.ErrIdempotencyConflict
	}
	s.records[record.Key] = record
	return nil
}
