package cartstore

import (
	"context"
	"sync"
)

// MemoryStore is the in-process backend used in tests and single-node dev.
type MemoryStore struct {
	mu       sync.RWMutex
	carts    map[string][]CartItem
	compares map[string][]ProductSnapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:    make(map[string][]CartItem),
		compares: make(map[string][]ProductSnapshot),
	}
}

func (s *MemoryStore) GetCart(_ context.Context, clientID string) ([]CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CartItem(nil), s.carts[clientID]...), nil
}

func (s *MemoryStore) SetCart(_ context.Context, clientID string, items []CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[clientID] = append([]CartItem(nil), items...)
	return nil
}

func (s *MemoryStore) ClearCart(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, clientID)
	return nil
}

func (s *MemoryStore) GetCompare(_ context.Context, clientID string) ([]ProductSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ProductSnapshot(nil), s.compares[clientID]...), nil
}

func (s *MemoryStore) AddCompare(_ context.Context, clientID string, snapshot ProductSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.compares[clientID] {
		if existing.ProductID == snapshot.ProductID {
			return nil
		}
	}
	s.compares[clientID] = append(s.compares[clientID], snapshot)
	return nil
}

func (s *MemoryStore) RemoveCompare(_ context.Context, clientID string, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshots := s.compares[clientID]
	out := snapshots[:0]
	for _, snapshot := range snapshots {
		if snapshot.ProductID != productID {
			out = append(out, snapshot)
		}
	}
	s.compares[clientID] = out
	return nil
}

func (s *MemoryStore) ClearCompare(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.compares, clientID)
	return nil
}
